package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotgrid/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level, set up by main
//
// The logger is attached to the command context and reachable from every
// command via loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "plotgrid composes plots into sized multi-panel figures",
		Long:         `plotgrid arranges plots on a grid described by a design, adds titles, captions and panel tags, and negotiates a figure size at which every panel renders at exactly its assigned region.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "sizing config file (TOML)")
	flags.IntVar(&c.workers, "workers", 1, "leaves rendered concurrently")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the fragment and figure cache")
	flags.StringVar(&c.cacheURL, "cache-url", "", "shared redis cache (redis://host:port/db)")

	// Register all subcommands
	root.AddCommand(c.saveCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.designCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
