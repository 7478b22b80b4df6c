package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotgrid/pkg/compose"
	"github.com/matzehuels/plotgrid/pkg/figure"
	"github.com/matzehuels/plotgrid/pkg/observability"
	"github.com/matzehuels/plotgrid/pkg/pipeline"
	"github.com/matzehuels/plotgrid/pkg/units"
)

// sizeFlags are the size options shared by save and show. Lengths accept
// unit suffixes (in, cm, mm, pt); bare numbers are inches.
type sizeFlags struct {
	width  string
	height string
	dpi    float64
}

func (f *sizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.width, "width", "", "figure width (e.g. 6in, 15cm); default from the figure file or its minimum size")
	cmd.Flags().StringVar(&f.height, "height", "", "figure height (e.g. 4in, 10cm)")
	cmd.Flags().Float64Var(&f.dpi, "dpi", 0, "pixel density for raster output (default 96)")
}

// resolve applies the flags over the figure file's own settings.
func (f *sizeFlags) resolve(fig *figure.Figure) (width, height *float64, dpi float64, err error) {
	width, height, dpi = fig.Width, fig.Height, fig.DPI
	if f.width != "" {
		w, err := units.ParseLength(f.width)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("--width: %w", err)
		}
		width = &w
	}
	if f.height != "" {
		h, err := units.ParseLength(f.height)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("--height: %w", err)
		}
		height = &h
	}
	if f.dpi != 0 {
		dpi = f.dpi
	}
	return width, height, dpi, nil
}

// saveCommand creates the save command.
func (c *CLI) saveCommand() *cobra.Command {
	var (
		size    sizeFlags
		output  string
		format  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "save <figure.yaml>",
		Short: "Size, compose and write a figure",
		Long: `Save loads a figure file, negotiates a size at which every panel renders
exactly in its region, and writes the result.

The format is taken from --format, then the output extension, then the
figure file, and defaults to SVG. PNG, PDF, PS, EPS and JPEG output require
rsvg-convert (librsvg).`,
		Example: `  plotgrid save figure.yaml -o figure.pdf
  plotgrid save figure.yaml -o figure.png --width 17cm --dpi 300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			fig, err := figure.Load(args[0])
			if err != nil {
				return err
			}
			width, height, dpi, err := size.resolve(fig)
			if err != nil {
				return err
			}
			path, f, err := outputTarget(args[0], output, format, fig.Format)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			spin := newSpinner(os.Stderr, "Sizing figure")
			observability.SetSizingHooks(spin)
			defer observability.SetSizingHooks(observability.NoopSizingHooks{})
			spin.Start(ctx)

			res, err := runner.Save(ctx, fig.Root, path, pipeline.SaveOptions{
				Width:   width,
				Height:  height,
				DPI:     dpi,
				Format:  f,
				Refresh: refresh,
			})
			spin.Stop()
			if err != nil {
				return err
			}

			prog.done("Saved " + path)
			printSaved(path, res)
			return nil
		},
	}

	size.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: figure name with the format's extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg, png, pdf, ps, eps, jpg")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore a cached figure")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(compose.Formats))
		for i, f := range compose.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// outputTarget picks the output path and format. An explicit format wins,
// then the output extension, then the figure file's format, then SVG.
func outputTarget(input, output, flagFormat, fileFormat string) (string, compose.Format, error) {
	var format compose.Format
	switch {
	case flagFormat != "":
		f, err := compose.ParseFormat(flagFormat)
		if err != nil {
			return "", "", err
		}
		format = f
	case output != "" && filepath.Ext(output) != "":
		f, err := compose.FormatFromPath(output)
		if err != nil {
			return "", "", err
		}
		format = f
	case fileFormat != "":
		f, err := compose.ParseFormat(fileFormat)
		if err != nil {
			return "", "", err
		}
		format = f
	default:
		format = compose.FormatSVG
	}

	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		ext := string(format)
		if format == compose.FormatJPEG {
			ext = "jpg"
		}
		output = base + "." + ext
	}
	return output, format, nil
}

func printSaved(path string, res *pipeline.Result) {
	printSuccess("Saved %s", StyleHighlight.Render(path))
	printStats(res)
}
