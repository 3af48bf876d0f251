// Package opengl provides an OpenGL 4.1 painter for table frames.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/table"
)

// Vertex is the GPU vertex layout: position, texture coordinate, and a
// packed RGBA color.
type Vertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    uint32 // packed as 0xAABBGGRR
}

// Style holds the painter's colors, packed as 0xAABBGGRR.
type Style struct {
	Background uint32
	RowBgEven  uint32
	RowBgOdd   uint32
	StickyBg   uint32
	HeaderBg   uint32
	GridLine   uint32
	Text       uint32
	HeaderText uint32
}

// DarkStyle returns the default dark color scheme.
func DarkStyle() Style {
	return Style{
		Background: 0xFF141414,
		RowBgEven:  0xFF1B1B1B,
		RowBgOdd:   0xFF202020,
		StickyBg:   0x30000000,
		HeaderBg:   0xFF2A2A2A,
		GridLine:   0xFF353535,
		Text:       0xFFD8D8D8,
		HeaderText: 0xFFFFFFFF,
	}
}

// TextFunc supplies the text for one body cell. The painter calls it only
// for visible cells.
type TextFunc func(row int64, col int) string

// drawCmd is one batched draw call: a run of indices sharing a scissor
// rectangle and texture mode.
type drawCmd struct {
	clip     table.Rect
	textured bool
	vtxBase  int32 // base vertex of this command's index space
	idxStart int   // offset into the index buffer
	count    int   // number of indices
}

// Painter draws table frames with OpenGL. One draw command is issued per
// (region, texture mode) pair, scissored to the region's clip rectangle,
// so pinned content never bleeds into scrolling regions.
type Painter struct {
	shader    uint32
	vao, vbo  uint32
	ebo       uint32
	fontTex   uint32
	projLoc   int32
	texLoc    int32
	useTexLoc int32
	width     int
	height    int

	vtx  []Vertex
	idx  []uint16
	cmds []drawCmd
	cur  int // index of the open command, -1 when none
}

const (
	glyphW = 8
	glyphH = 8
	// Indices are 16-bit; a command splits before its local vertex space
	// overflows.
	maxCmdVerts = 65532
)

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

// The font atlas is alpha-only: the R channel carries coverage and the
// vertex color supplies RGB.
const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D fontTexture;
uniform bool useTexture;

void main() {
    if (useTexture) {
        FragColor = vec4(Color.rgb, Color.a * texture(fontTexture, TexCoord).r);
    } else {
        FragColor = Color;
    }
}
` + "\x00"

// NewPainter creates a painter for a window of the given pixel size.
func NewPainter(width, height int) (*Painter, error) {
	p := &Painter{width: width, height: height, cur: -1}

	var err error
	p.shader, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	p.projLoc = gl.GetUniformLocation(p.shader, gl.Str("projection\x00"))
	p.texLoc = gl.GetUniformLocation(p.shader, gl.Str("fontTexture\x00"))
	p.useTexLoc = gl.GetUniformLocation(p.shader, gl.Str("useTexture\x00"))

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)

	gl.GenBuffers(1, &p.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.ebo)

	stride := int32(unsafe.Sizeof(Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(Vertex{}.Color))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	p.fontTex = createFontTexture()
	return p, nil
}

// Resize updates the window size used for the projection and scissor math.
func (p *Painter) Resize(width, height int) {
	p.width = width
	p.height = height
}

// TextWidth returns the pixel width a cell needs to show s without
// truncation, including the label padding.
func TextWidth(s string) float32 {
	return float32(len(s)*glyphW) + 8
}

// Paint draws one frame at the window origin. Cell text is pulled through
// text; headers use the titles on the frame.
func (p *Painter) Paint(f *table.Frame, text TextFunc, style Style) error {
	if f == nil {
		return nil
	}
	p.vtx = p.vtx[:0]
	p.idx = p.idx[:0]
	p.cmds = p.cmds[:0]
	p.cur = -1

	p.buildGeometry(f, text, style)
	return p.flush()
}

// buildGeometry turns frame instructions into batched quads, back to
// front: row backgrounds, scrolling cells, sticky cells, then the header
// band.
func (p *Painter) buildGeometry(f *table.Frame, text TextFunc, style Style) {
	lb := f.RegionRects[table.RegionLeftBottom]
	rb := f.RegionRects[table.RegionRightBottom]
	bodyClip := table.Rect{X: 0, Y: rb.Y, W: lb.W + rb.W, H: rb.H}

	// Row background stripes span both bottom regions.
	p.begin(bodyClip, false)
	for _, r := range f.Rows {
		bg := style.RowBgEven
		if r.Row%2 != 0 {
			bg = style.RowBgOdd
		}
		p.rect(r.Rect, bg)
	}

	for _, c := range f.Cells {
		if c.Region != table.RegionRightBottom {
			continue
		}
		p.begin(rb, false)
		p.cellChrome(c.Rect, style)
		p.begin(rb, true)
		p.label(c.Rect, text(c.Row, c.Col), style.Text, false)
	}

	for _, c := range f.Cells {
		if c.Region != table.RegionLeftBottom {
			continue
		}
		p.begin(lb, false)
		p.rect(c.Rect, style.StickyBg)
		p.cellChrome(c.Rect, style)
		p.begin(lb, true)
		p.label(c.Rect, text(c.Row, c.Col), style.Text, false)
	}

	for _, h := range f.Headers {
		clip := f.RegionRects[h.Region]
		p.begin(clip, false)
		p.rect(h.Rect, style.HeaderBg)
		p.cellChrome(h.Rect, style)
		p.begin(clip, true)
		p.label(h.Rect, h.Title, style.HeaderText, true)
	}
}

// begin opens a command for the given clip and texture mode, reusing the
// current one when it matches.
func (p *Painter) begin(clip table.Rect, textured bool) {
	if p.cur >= 0 {
		c := &p.cmds[p.cur]
		if c.clip == clip && c.textured == textured {
			return
		}
	}
	p.cmds = append(p.cmds, drawCmd{
		clip:     clip,
		textured: textured,
		vtxBase:  int32(len(p.vtx)),
		idxStart: len(p.idx),
	})
	p.cur = len(p.cmds) - 1
}

// quad appends one quad to the open command, splitting the command when
// its 16-bit index space would overflow.
func (p *Painter) quad(x0, y0, x1, y1, u0, v0, u1, v1 float32, color uint32) {
	c := &p.cmds[p.cur]
	local := len(p.vtx) - int(c.vtxBase)
	if local+4 > maxCmdVerts {
		p.cmds = append(p.cmds, drawCmd{
			clip:     c.clip,
			textured: c.textured,
			vtxBase:  int32(len(p.vtx)),
			idxStart: len(p.idx),
		})
		p.cur = len(p.cmds) - 1
		c = &p.cmds[p.cur]
		local = 0
	}

	base := uint16(local)
	p.vtx = append(p.vtx,
		Vertex{Pos: [2]float32{x0, y0}, TexCoord: [2]float32{u0, v0}, Color: color},
		Vertex{Pos: [2]float32{x1, y0}, TexCoord: [2]float32{u1, v0}, Color: color},
		Vertex{Pos: [2]float32{x1, y1}, TexCoord: [2]float32{u1, v1}, Color: color},
		Vertex{Pos: [2]float32{x0, y1}, TexCoord: [2]float32{u0, v1}, Color: color},
	)
	p.idx = append(p.idx, base, base+1, base+2, base, base+2, base+3)
	c.count += 6
}

func (p *Painter) rect(r table.Rect, color uint32) {
	p.quad(r.X, r.Y, r.X+r.W, r.Y+r.H, 0, 0, 0, 0, color)
}

// cellChrome draws the right and bottom grid lines of a cell.
func (p *Painter) cellChrome(r table.Rect, style Style) {
	p.quad(r.X+r.W-1, r.Y, r.X+r.W, r.Y+r.H, 0, 0, 0, 0, style.GridLine)
	p.quad(r.X, r.Y+r.H-1, r.X+r.W, r.Y+r.H, 0, 0, 0, 0, style.GridLine)
}

// label draws single-line text inside a cell, vertically centered, left
// aligned with padding (or centered for headers), truncated to fit.
func (p *Painter) label(r table.Rect, s string, color uint32, centered bool) {
	if s == "" || r.W < glyphW+4 {
		return
	}
	maxChars := int((r.W - 4) / glyphW)
	if len(s) > maxChars {
		if maxChars < 1 {
			return
		}
		s = s[:maxChars]
	}

	x := r.X + 4
	if centered {
		x = r.X + (r.W-float32(len(s)*glyphW))/2
	}
	y := r.Y + (r.H-glyphH)/2

	for i := 0; i < len(s); i++ {
		u0, v0, u1, v1, ok := glyphUV(s[i])
		if !ok {
			x += glyphW
			continue
		}
		p.quad(x, y, x+glyphW, y+glyphH, u0, v0, u1, v1, color)
		x += glyphW
	}
}

// flush uploads the buffers and issues the draw commands.
func (p *Painter) flush() error {
	if len(p.idx) == 0 {
		return nil
	}

	var lastProgram int32
	var lastScissorBox [4]int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])
	blendEnabled := gl.IsEnabled(gl.BLEND)
	depthEnabled := gl.IsEnabled(gl.DEPTH_TEST)
	cullEnabled := gl.IsEnabled(gl.CULL_FACE)
	scissorEnabled := gl.IsEnabled(gl.SCISSOR_TEST)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(p.shader)
	proj := orthoMatrix(0, float32(p.width), float32(p.height), 0, -1, 1)
	gl.UniformMatrix4fv(p.projLoc, 1, false, &proj[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.fontTex)
	gl.Uniform1i(p.texLoc, 0)

	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(p.vtx)*int(unsafe.Sizeof(Vertex{})),
		gl.Ptr(p.vtx), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(p.idx)*2,
		gl.Ptr(p.idx), gl.STREAM_DRAW)

	for _, cmd := range p.cmds {
		if cmd.count == 0 {
			continue
		}

		// Scissor in OpenGL coordinates (Y up).
		clipX := int32(cmd.clip.X)
		clipY := int32(float32(p.height) - cmd.clip.Y - cmd.clip.H)
		clipW := int32(cmd.clip.W)
		clipH := int32(cmd.clip.H)
		if clipX < 0 {
			clipW += clipX
			clipX = 0
		}
		if clipY < 0 {
			clipH += clipY
			clipY = 0
		}
		if clipW <= 0 || clipH <= 0 {
			continue
		}
		gl.Scissor(clipX, clipY, clipW, clipH)

		if cmd.textured {
			gl.Uniform1i(p.useTexLoc, 1)
		} else {
			gl.Uniform1i(p.useTexLoc, 0)
		}

		gl.DrawElementsBaseVertexWithOffset(
			gl.TRIANGLES,
			int32(cmd.count),
			gl.UNSIGNED_SHORT,
			uintptr(cmd.idxStart)*2,
			cmd.vtxBase,
		)
	}

	gl.UseProgram(uint32(lastProgram))
	if blendEnabled {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}
	if depthEnabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if cullEnabled {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	if scissorEnabled {
		gl.Enable(gl.SCISSOR_TEST)
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])
	gl.BindVertexArray(0)

	return nil
}

// Delete releases the painter's OpenGL resources.
func (p *Painter) Delete() {
	if p.fontTex != 0 {
		gl.DeleteTextures(1, &p.fontTex)
	}
	if p.ebo != 0 {
		gl.DeleteBuffers(1, &p.ebo)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.shader != 0 {
		gl.DeleteProgram(p.shader)
	}
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader := gl.CreateShader(gl.VERTEX_SHADER)
	csource, free := gl.Strs(vertexSource)
	gl.ShaderSource(vertexShader, 1, csource, nil)
	free()
	gl.CompileShader(vertexShader)

	var status int32
	gl.GetShaderiv(vertexShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(vertexShader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(vertexShader, logLength, nil, &log[0])
		return 0, fmt.Errorf("vertex shader compilation failed: %s", string(log))
	}

	fragmentShader := gl.CreateShader(gl.FRAGMENT_SHADER)
	csource, free = gl.Strs(fragmentSource)
	gl.ShaderSource(fragmentShader, 1, csource, nil)
	free()
	gl.CompileShader(fragmentShader)

	gl.GetShaderiv(fragmentShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(fragmentShader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(fragmentShader, logLength, nil, &log[0])
		return 0, fmt.Errorf("fragment shader compilation failed: %s", string(log))
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
