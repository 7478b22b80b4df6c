package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotgrid/pkg/design"
	"github.com/matzehuels/plotgrid/pkg/errors"
	"github.com/matzehuels/plotgrid/pkg/layout"
)

// designCommand creates the design inspection command.
func (c *CLI) designCommand() *cobra.Command {
	var (
		n           int
		ncol, nrow  int
		byColumn    bool
		widths      []float64
		heights     []float64
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "design [text]",
		Short: "Print a design grid and its reading order",
		Long: `Design parses a layout and prints its grid, the footprint of every item and
the order in which items are tagged.

The layout is either design text (rows separated by newlines or "/", letters
for items, '#' or '.' for gaps) or a grid built from --ncol/--nrow for -n
items.`,
		Example: `  plotgrid design "AAB/CCB"
  plotgrid design -n 5 --ncol 2 --by-column
  plotgrid design "AB/CC" --widths 2,1 -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []design.Option
			if len(widths) > 0 {
				opts = append(opts, design.WithRelWidths(widths...))
			}
			if len(heights) > 0 {
				opts = append(opts, design.WithRelHeights(heights...))
			}
			if byColumn {
				opts = append(opts, design.ByColumn())
			}

			var text string
			if len(args) == 1 {
				text = args[0]
			}
			spec, err := buildDesign(text, n, ncol, nrow, opts)
			if err != nil {
				return err
			}
			view, err := newDesignView(spec)
			if err != nil {
				return err
			}

			if interactive {
				_, err := tea.NewProgram(view).Run()
				return err
			}
			fmt.Println(view.grid(-1))
			fmt.Println()
			fmt.Println(view.table(-1))
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "items", "n", 0, "number of items for a grid layout")
	cmd.Flags().IntVar(&ncol, "ncol", 0, "grid columns")
	cmd.Flags().IntVar(&nrow, "nrow", 0, "grid rows")
	cmd.Flags().BoolVar(&byColumn, "by-column", false, "fill the grid column by column")
	cmd.Flags().Float64SliceVar(&widths, "widths", nil, "relative column widths")
	cmd.Flags().Float64SliceVar(&heights, "heights", nil, "relative row heights")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse items in reading order")

	return cmd
}

// buildDesign parses text when given, otherwise resolves a grid for n items.
func buildDesign(text string, n, ncol, nrow int, opts []design.Option) (design.Spec, error) {
	if text != "" {
		if n != 0 || ncol != 0 || nrow != 0 {
			return design.Spec{}, errors.New(errors.ErrCodeInvalidInput, "design text cannot be combined with -n, --ncol or --nrow")
		}
		text = strings.ReplaceAll(text, "/", "\n")
		text = strings.ReplaceAll(text, `\n`, "\n")
		return design.Parse(text, opts...)
	}
	if n < 1 {
		return design.Spec{}, errors.New(errors.ErrCodeInvalidInput, "give design text or an item count with -n")
	}
	g, err := design.Grid(ncol, nrow, opts...)
	if err != nil {
		return design.Spec{}, err
	}
	return g.Resolve(n)
}

// =============================================================================
// designView - grid and reading order of a resolved design
// =============================================================================

// designView renders a resolved design. As a bubbletea model it steps
// through items in reading order, highlighting the current one.
type designView struct {
	spec   design.Spec
	order  []int // item indices in reading order
	rank   []int // rank[item] = position in order
	cursor int
}

func newDesignView(spec design.Spec) (designView, error) {
	order, err := layout.Yokogaki(spec)
	if err != nil {
		return designView{}, err
	}
	rank := make([]int, len(order))
	for pos, item := range order {
		rank[item] = pos
	}
	return designView{spec: spec, order: order, rank: rank}, nil
}

// label names item i: letters while they last, numbers beyond.
func label(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}

// cells returns the grid as labels, "." for gaps.
func (v designView) cells() [][]string {
	out := make([][]string, v.spec.NRow())
	for r := range out {
		out[r] = make([]string, v.spec.NCol())
		for c := range out[r] {
			if i, ok := v.spec.Cell(r, c).Get(); ok {
				out[r][c] = label(i)
			} else {
				out[r][c] = "."
			}
		}
	}
	return out
}

// grid draws the cells colored by item; selected (or -1) is drawn reversed.
func (v designView) grid(selected int) string {
	width := 1
	for i := range v.spec.NumItems() {
		width = max(width, len(label(i)))
	}
	cell := lipgloss.NewStyle().Width(width + 2).Align(lipgloss.Center)

	rows := make([]string, v.spec.NRow())
	for r := range rows {
		parts := make([]string, v.spec.NCol())
		for c := range parts {
			i, ok := v.spec.Cell(r, c).Get()
			if !ok {
				parts[c] = cell.Inherit(styleGap).Render(".")
				continue
			}
			st := cell.Foreground(panelColors[i%len(panelColors)])
			if i == selected {
				st = st.Reverse(true).Bold(true)
			}
			parts[c] = st.Render(label(i))
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// rows lists items in reading order with their footprint and relative area.
func (v designView) rows() ([][]string, error) {
	fps, err := layout.Footprints(v.spec)
	if err != nil {
		return nil, err
	}
	rel, err := layout.Relative(v.spec)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(v.order))
	for pos, item := range v.order {
		x, y, w, h := fps[item].Cells()
		a := rel[item]
		out[pos] = []string{
			strconv.Itoa(pos + 1),
			label(item),
			fmt.Sprintf("r%d c%d", y+1, x+1),
			fmt.Sprintf("%dx%d", w, h),
			fmt.Sprintf("%.3f, %.3f", a.X(), a.Y()),
			fmt.Sprintf("%.3f x %.3f", a.Width(), a.Height()),
		}
	}
	return out, nil
}

func (v designView) table(selected int) string {
	rows, err := v.rows()
	if err != nil {
		return styleError.Render(err.Error())
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Item", "Origin", "Span", "Position", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= 0 && row < len(v.order) && v.order[row] == selected {
				return base.Foreground(colorCyan).Bold(true)
			}
			if col == 1 && row >= 0 && row < len(v.order) {
				return base.Foreground(panelColors[v.order[row]%len(panelColors)])
			}
			return base.Foreground(colorGray)
		}).
		Render()
}

func (v designView) Init() tea.Cmd {
	return nil
}

func (v designView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case "right", "down", "l", "j", "tab":
			v.cursor = (v.cursor + 1) % len(v.order)
		case "left", "up", "h", "k", "shift+tab":
			v.cursor = (v.cursor + len(v.order) - 1) % len(v.order)
		case "home", "g":
			v.cursor = 0
		case "end", "G":
			v.cursor = len(v.order) - 1
		}
	}
	return v, nil
}

func (v designView) View() string {
	selected := v.order[v.cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Design"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ reading order  q quit"))
	b.WriteString("\n\n")
	b.WriteString(v.grid(selected))
	b.WriteString("\n\n")
	b.WriteString(v.table(selected))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  item %s  [%d/%d]", label(selected), v.cursor+1, len(v.order))))
	b.WriteString("\n")
	return b.String()
}
