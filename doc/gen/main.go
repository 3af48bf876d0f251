// Command gen renders the table at a few representative states, captures
// framebuffer pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/table"
	"github.com/go-theft-auto/table/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single table state to capture.
type screenshot struct {
	name   string
	width  int
	height int
	state  func(tbl *table.Table) (table.Viewport, error)
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
	glfw.WindowHint(glfw.Visible, glfw.False)

	// The hidden window stays at 800x600, larger than every screenshot;
	// GLFW processes resizes asynchronously, so per-shot SetSize calls
	// would race the framebuffer.
	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	painter, err := opengl.NewPainter(800, 600)
	if err != nil {
		return fmt.Errorf("table painter: %w", err)
	}
	defer painter.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(painter, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(painter *opengl.Painter, s screenshot, outDir string) error {
	// Fresh table per screenshot so state never leaks between captures.
	tbl, err := newRegistry()
	if err != nil {
		return err
	}
	vp, err := s.state(tbl)
	if err != nil {
		return err
	}

	painter.Resize(s.width, s.height)
	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.08, 0.08, 0.08, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	f, err := tbl.Layout(vp)
	if err != nil {
		return err
	}
	err = painter.Paint(f, vehicleCell, opengl.DarkStyle())
	table.ReleaseFrame(f)
	if err != nil {
		return err
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left).
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return jpeg.Encode(out, img, &jpeg.Options{Quality: 90})
}

func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "table", width: 720, height: 400,
			state: func(_ *table.Table) (table.Viewport, error) {
				return table.Viewport{Width: 720, Height: 400}, nil
			},
		},
		{
			name: "table-scrolled", width: 720, height: 400,
			state: func(_ *table.Table) (table.Viewport, error) {
				// Deep enough that the sticky ID column visibly pins.
				return table.Viewport{
					ScrollX: 160, ScrollY: 30_000,
					Width: 720, Height: 400,
				}, nil
			},
		},
		{
			name: "table-expanded", width: 720, height: 400,
			state: func(tbl *table.Table) (table.Viewport, error) {
				for _, row := range []int64{2, 5} {
					if err := tbl.ExpandRow(row, 72); err != nil {
						return table.Viewport{}, err
					}
				}
				return table.Viewport{Width: 720, Height: 400}, nil
			},
		},
		{
			name: "table-resized", width: 720, height: 400,
			state: func(tbl *table.Table) (table.Viewport, error) {
				if err := tbl.ResizeColumn(1, 240); err != nil {
					return table.Viewport{}, err
				}
				return table.Viewport{Width: 720, Height: 400}, nil
			},
		},
	}
}

func newRegistry() (*table.Table, error) {
	return table.New([]table.Column{
		{Label: "ID", InitWidth: 80, MinWidth: 80, MaxWidth: 80, Sticky: true},
		{Label: "Model", MinWidth: 120, MaxWidth: 260, Resizable: true},
		{Label: "Class", MinWidth: 90, MaxWidth: 160, Resizable: true},
		{Label: "Top Speed", MinWidth: 90, MaxWidth: 130},
		{Label: "Price", MinWidth: 90, MaxWidth: 150},
		{Label: "Last Seen", MinWidth: 140, Resizable: true},
	}, 1_000_000,
		table.WithHeader(
			table.Leaf(0),
			table.Group("Vehicle", table.Leaf(1), table.Leaf(2)),
			table.Group("Performance", table.Leaf(3), table.Leaf(4)),
			table.Leaf(5),
		),
	)
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
