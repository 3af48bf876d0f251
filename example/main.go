// Example renders a million-row vehicle registry in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Scroll with the wheel or PageUp/PageDown/Home/End, drag a column border
// to resize it, and click a row to expand it. The first column stays
// pinned while the rest scroll horizontally.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/table"
	"github.com/go-theft-auto/table/backend/opengl"
)

const (
	windowWidth  = 960
	windowHeight = 600
	windowTitle  = "table example"

	rowCount    = 1_000_000
	detailExtra = 72 // extra height of an expanded row
)

var models = []string{
	"Banshee", "Infernus", "Cheetah", "Sentinel", "Patriot",
	"Sabre Turbo", "Stinger", "Phoenix", "Comet", "Esperanto",
}

var classes = []string{"Sports", "Sedan", "Offroad", "Classic"}

var locations = []string{
	"Ocean Beach", "Downtown", "Vice Point", "Little Havana",
	"Starfish Island", "Escobar Intl", "Leaf Links",
}

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	tbl, err := table.New([]table.Column{
		{Label: "ID", InitWidth: 80, MinWidth: 80, MaxWidth: 80, Sticky: true},
		{Label: "Model", MinWidth: 120, MaxWidth: 260, Resizable: true},
		{Label: "Class", MinWidth: 90, MaxWidth: 160, Resizable: true},
		{Label: "Top Speed", MinWidth: 90, MaxWidth: 130},
		{Label: "Price", MinWidth: 90, MaxWidth: 150},
		{Label: "Last Seen", MinWidth: 80, Resizable: true},
	}, rowCount,
		table.WithHeader(
			table.Leaf(0),
			table.Group("Vehicle", table.Leaf(1), table.Leaf(2)),
			table.Group("Performance", table.Leaf(3), table.Leaf(4)),
			table.Leaf(5),
		),
		table.WithPrefetchRows(16),
	)
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}

	painter, err := opengl.NewPainter(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("table painter: %w", err)
	}
	defer painter.Delete()

	ctl := opengl.NewController(window, tbl)
	ctl.OnRowClick = func(row int64) {
		if tbl.RowExpanded(row) {
			_ = tbl.CollapseRow(row)
		} else {
			_ = tbl.ExpandRow(row, detailExtra)
		}
	}

	style := opengl.DarkStyle()

	for !window.ShouldClose() {
		glfw.PollEvents()

		fbW, fbH := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fbW), int32(fbH))
		gl.ClearColor(0.08, 0.08, 0.08, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		w, h := window.GetSize()
		painter.Resize(w, h)

		frame, err := tbl.Layout(ctl.Viewport())
		if err != nil {
			return fmt.Errorf("table layout: %w", err)
		}
		ctl.Observe(frame)

		if err := painter.Paint(frame, cellText(tbl), style); err != nil {
			table.ReleaseFrame(frame)
			return fmt.Errorf("table paint: %w", err)
		}
		table.ReleaseFrame(frame)

		window.SwapBuffers()
	}

	return nil
}

// cellText derives deterministic registry data from the row index, so the
// million rows need no backing storage. Auto columns report the width of
// what they draw, letting the layout adopt the widest value seen.
func cellText(tbl *table.Table) opengl.TextFunc {
	return func(row int64, col int) string {
		switch col {
		case 0:
			return fmt.Sprintf("%07d", row)
		case 1:
			name := models[row%int64(len(models))]
			if tbl.RowExpanded(row) {
				return name + " *"
			}
			return name
		case 2:
			return classes[(row/3)%int64(len(classes))]
		case 3:
			return fmt.Sprintf("%d mph", 90+(row*7)%140)
		case 4:
			return fmt.Sprintf("$%d", 10_000+(row*137)%90_000)
		case 5:
			loc := locations[(row/7)%int64(len(locations))]
			_ = tbl.ReportContentWidth(5, opengl.TextWidth(loc))
			return loc
		default:
			return ""
		}
	}
}
