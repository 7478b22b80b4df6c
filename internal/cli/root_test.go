package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()

	for _, name := range []string{"save", "show", "design", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "workers", "no-cache", "cache-url"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion bash: %v", err)
	}
	if !strings.Contains(out.String(), "plotgrid") {
		t.Error("bash completion should mention the program name")
	}

	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestNewRunnerRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*CLI)
	}{
		{"zero workers", func(c *CLI) { c.workers = 0 }},
		{"bad cache url", func(c *CLI) { c.noCache, c.cacheURL = false, "http://localhost" }},
		{"missing config", func(c *CLI) { c.configPath = "/nonexistent/plotgrid.toml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, log.InfoLevel)
			c.noCache = true
			tt.setup(c)
			if _, err := c.newRunner(t.Context()); err == nil {
				t.Error("newRunner should fail")
			}
		})
	}
}
