package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotgrid/pkg/cache"
)

// useTempCache points the per-user cache directory at a temp dir.
func useTempCache(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME only moves the cache on linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	return filepath.Join(base, "plotgrid", "fragments")
}

func TestCachePath(t *testing.T) {
	want := useTempCache(t)
	root := New(io.Discard, log.InfoLevel).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClear(t *testing.T) {
	dir := useTempCache(t)
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b"} {
		if err := fc.Set(ctx, key, []byte("x"), cache.TTLFigure); err != nil {
			t.Fatal(err)
		}
	}

	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	n, _, err := fc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("%d entries left after clear", n)
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	dir := useTempCache(t)
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("clearing a missing cache should not create it")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
