// Tabledump lays out a synthetic table at a given viewport and prints
// what a renderer would see: the clamped scroll state, the visible and
// prefetch ranges, and the visible cells. It exists to poke at layout
// behavior from the command line.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/table"
)

type dumpOptions struct {
	rows      int64
	width     float32
	height    float32
	scrollX   float64
	scrollY   float64
	rowHeight float32
	expand    []int64
	regions   bool
	verbose   bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts dumpOptions

	cmd := &cobra.Command{
		Use:   "tabledump",
		Short: "Lay out a synthetic table and print the visible window",
		Long: `Tabledump builds a vehicle registry with the requested number of rows,
lays it out at the given viewport, and prints the resulting frame: scroll
clamping, visible and prefetch ranges, and the visible cells as a grid.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table.SetVerbose(opts.verbose)
			return runDump(cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.rows, "rows", 1_000_000, "row count of the synthetic table")
	flags.Float32Var(&opts.width, "width", 640, "viewport width in pixels")
	flags.Float32Var(&opts.height, "height", 480, "viewport height in pixels")
	flags.Float64Var(&opts.scrollX, "scroll-x", 0, "horizontal scroll offset")
	flags.Float64Var(&opts.scrollY, "scroll-y", 0, "vertical scroll offset")
	flags.Float32Var(&opts.rowHeight, "row-height", table.DefaultRowHeight, "baseline row height")
	flags.Int64SliceVar(&opts.expand, "expand", nil, "rows to expand by one extra row height")
	flags.BoolVar(&opts.regions, "regions", false, "also print the four region rectangles")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func runDump(w io.Writer, opts dumpOptions) error {
	tbl, err := table.New([]table.Column{
		{Label: "ID", InitWidth: 80, MinWidth: 80, MaxWidth: 80, Sticky: true},
		{Label: "Model", MinWidth: 120, MaxWidth: 260, Resizable: true},
		{Label: "Class", MinWidth: 90, MaxWidth: 160, Resizable: true},
		{Label: "Top Speed", MinWidth: 90, MaxWidth: 130},
		{Label: "Price", MinWidth: 90, MaxWidth: 150},
		{Label: "Last Seen", MinWidth: 140, Resizable: true},
	}, opts.rows,
		table.WithRowHeight(opts.rowHeight),
		table.WithHeader(
			table.Leaf(0),
			table.Group("Vehicle", table.Leaf(1), table.Leaf(2)),
			table.Group("Performance", table.Leaf(3), table.Leaf(4)),
			table.Leaf(5),
		),
	)
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}

	for _, row := range opts.expand {
		if err := tbl.ExpandRow(row, opts.rowHeight); err != nil {
			return fmt.Errorf("expand row %d: %w", row, err)
		}
	}

	f, err := tbl.Layout(table.Viewport{
		ScrollX: opts.scrollX,
		ScrollY: opts.scrollY,
		Width:   opts.width,
		Height:  opts.height,
	})
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	defer table.ReleaseFrame(f)

	fmt.Fprintf(w, "content  %.0f x %.1f px, %d rows\n", f.ContentWidth, f.ContentHeight, tbl.RowCount())
	fmt.Fprintf(w, "scroll   x=%.1f y=%.1f (clamped from x=%.1f y=%.1f)\n",
		f.ScrollX, f.ScrollY, opts.scrollX, opts.scrollY)
	if !f.Visible.Rows.Empty() {
		fmt.Fprintf(w, "visible  rows %d..%d, cols %d..%d\n",
			f.Visible.Rows.First, f.Visible.Rows.Last,
			f.Visible.Cols.First, f.Visible.Cols.Last)
	}
	if !f.Prefetch.Empty() {
		fmt.Fprintf(w, "prefetch rows %d..%d\n", f.Prefetch.First, f.Prefetch.Last)
	}

	if opts.regions {
		for r := table.RegionRightBottom; r <= table.RegionLeftTop; r++ {
			rect := f.RegionRects[r]
			fmt.Fprintf(w, "region   %-12s x=%-6.1f y=%-6.1f w=%-6.1f h=%.1f\n",
				r, rect.X, rect.Y, rect.W, rect.H)
		}
	}
	fmt.Fprintln(w)

	printWindow(w, tbl, f)
	return nil
}

// printWindow renders the visible cells as a text grid, sticky columns
// first the way a painter would pin them.
func printWindow(w io.Writer, tbl *table.Table, f *table.Frame) {
	if f.Visible.Rows.Empty() || f.Visible.Cols.Empty() {
		fmt.Fprintln(w, "nothing visible")
		return
	}

	var cols []int
	for c := 0; c < tbl.NumSticky(); c++ {
		cols = append(cols, c)
	}
	for c := f.Visible.Cols.First; c <= f.Visible.Cols.Last; c++ {
		if c >= tbl.NumSticky() {
			cols = append(cols, c)
		}
	}

	labels := []string{"ID", "Model", "Class", "Top Speed", "Price", "Last Seen"}
	header := make([]string, 0, len(cols))
	for _, c := range cols {
		header = append(header, labels[c])
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for row := f.Visible.Rows.First; row <= f.Visible.Rows.Last; row++ {
		line := make([]string, 0, len(cols))
		for _, c := range cols {
			line = append(line, vehicleCell(row, c))
		}
		tw.Append(line)
	}
	tw.Render()
}

func vehicleCell(row int64, col int) string {
	models := []string{
		"Banshee", "Infernus", "Cheetah", "Sentinel", "Patriot",
		"Sabre Turbo", "Stinger", "Phoenix", "Comet", "Esperanto",
	}
	classes := []string{"Sports", "Sedan", "Offroad", "Classic"}
	locations := []string{
		"Ocean Beach", "Downtown", "Vice Point", "Little Havana",
		"Starfish Island", "Escobar Intl", "Leaf Links",
	}

	switch col {
	case 0:
		return fmt.Sprintf("%07d", row)
	case 1:
		return models[row%int64(len(models))]
	case 2:
		return classes[(row/3)%int64(len(classes))]
	case 3:
		return fmt.Sprintf("%d mph", 90+(row*7)%140)
	case 4:
		return fmt.Sprintf("$%d", 10_000+(row*137)%90_000)
	case 5:
		return locations[(row/7)%int64(len(locations))]
	default:
		return ""
	}
}
