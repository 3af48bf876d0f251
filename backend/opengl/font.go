package opengl

import "github.com/go-gl/gl/v4.1-core/gl"

// The atlas holds ASCII 32..95 as 8x8 glyphs in a 16x4 grid. Lowercase
// input folds to uppercase before lookup.
const (
	atlasW     = 128
	atlasH     = 32
	atlasCols  = 16
	firstGlyph = 32
	lastGlyph  = 95
)

// fontBitmaps maps a character to its 8x8 bitmap, one byte per row with
// the high bit leftmost. Characters absent from the map render blank.
var fontBitmaps = map[byte][8]uint8{
	'!':  {0x10, 0x10, 0x10, 0x10, 0x10, 0x00, 0x10, 0x00},
	'"':  {0x28, 0x28, 0x28, 0x00, 0x00, 0x00, 0x00, 0x00},
	'#':  {0x28, 0x28, 0x7C, 0x28, 0x7C, 0x28, 0x28, 0x00},
	'$':  {0x10, 0x3C, 0x50, 0x38, 0x14, 0x78, 0x10, 0x00},
	'%':  {0x60, 0x64, 0x08, 0x10, 0x20, 0x4C, 0x0C, 0x00},
	'&':  {0x30, 0x48, 0x50, 0x20, 0x54, 0x48, 0x34, 0x00},
	'\'': {0x10, 0x10, 0x20, 0x00, 0x00, 0x00, 0x00, 0x00},
	'(':  {0x08, 0x10, 0x20, 0x20, 0x20, 0x10, 0x08, 0x00},
	')':  {0x20, 0x10, 0x08, 0x08, 0x08, 0x10, 0x20, 0x00},
	'*':  {0x00, 0x10, 0x54, 0x38, 0x54, 0x10, 0x00, 0x00},
	'+':  {0x00, 0x10, 0x10, 0x7C, 0x10, 0x10, 0x00, 0x00},
	',':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x18, 0x08, 0x10},
	'-':  {0x00, 0x00, 0x00, 0x7C, 0x00, 0x00, 0x00, 0x00},
	'.':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x00},
	'/':  {0x04, 0x08, 0x08, 0x10, 0x20, 0x20, 0x40, 0x00},
	'0':  {0x38, 0x44, 0x4C, 0x54, 0x64, 0x44, 0x38, 0x00},
	'1':  {0x10, 0x30, 0x10, 0x10, 0x10, 0x10, 0x38, 0x00},
	'2':  {0x38, 0x44, 0x04, 0x08, 0x10, 0x20, 0x7C, 0x00},
	'3':  {0x7C, 0x08, 0x10, 0x08, 0x04, 0x44, 0x38, 0x00},
	'4':  {0x08, 0x18, 0x28, 0x48, 0x7C, 0x08, 0x08, 0x00},
	'5':  {0x7C, 0x40, 0x78, 0x04, 0x04, 0x44, 0x38, 0x00},
	'6':  {0x18, 0x20, 0x40, 0x78, 0x44, 0x44, 0x38, 0x00},
	'7':  {0x7C, 0x04, 0x08, 0x10, 0x20, 0x20, 0x20, 0x00},
	'8':  {0x38, 0x44, 0x44, 0x38, 0x44, 0x44, 0x38, 0x00},
	'9':  {0x38, 0x44, 0x44, 0x3C, 0x04, 0x08, 0x30, 0x00},
	':':  {0x00, 0x18, 0x18, 0x00, 0x18, 0x18, 0x00, 0x00},
	';':  {0x00, 0x18, 0x18, 0x00, 0x18, 0x08, 0x10, 0x00},
	'<':  {0x08, 0x10, 0x20, 0x40, 0x20, 0x10, 0x08, 0x00},
	'=':  {0x00, 0x00, 0x7C, 0x00, 0x7C, 0x00, 0x00, 0x00},
	'>':  {0x20, 0x10, 0x08, 0x04, 0x08, 0x10, 0x20, 0x00},
	'?':  {0x38, 0x44, 0x04, 0x08, 0x10, 0x00, 0x10, 0x00},
	'@':  {0x38, 0x44, 0x5C, 0x54, 0x5C, 0x40, 0x38, 0x00},
	'A':  {0x38, 0x44, 0x44, 0x7C, 0x44, 0x44, 0x44, 0x00},
	'B':  {0x78, 0x44, 0x44, 0x78, 0x44, 0x44, 0x78, 0x00},
	'C':  {0x38, 0x44, 0x40, 0x40, 0x40, 0x44, 0x38, 0x00},
	'D':  {0x70, 0x48, 0x44, 0x44, 0x44, 0x48, 0x70, 0x00},
	'E':  {0x7C, 0x40, 0x40, 0x78, 0x40, 0x40, 0x7C, 0x00},
	'F':  {0x7C, 0x40, 0x40, 0x78, 0x40, 0x40, 0x40, 0x00},
	'G':  {0x38, 0x44, 0x40, 0x5C, 0x44, 0x44, 0x3C, 0x00},
	'H':  {0x44, 0x44, 0x44, 0x7C, 0x44, 0x44, 0x44, 0x00},
	'I':  {0x38, 0x10, 0x10, 0x10, 0x10, 0x10, 0x38, 0x00},
	'J':  {0x1C, 0x08, 0x08, 0x08, 0x08, 0x48, 0x30, 0x00},
	'K':  {0x44, 0x48, 0x50, 0x60, 0x50, 0x48, 0x44, 0x00},
	'L':  {0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x7C, 0x00},
	'M':  {0x44, 0x6C, 0x54, 0x54, 0x44, 0x44, 0x44, 0x00},
	'N':  {0x44, 0x44, 0x64, 0x54, 0x4C, 0x44, 0x44, 0x00},
	'O':  {0x38, 0x44, 0x44, 0x44, 0x44, 0x44, 0x38, 0x00},
	'P':  {0x78, 0x44, 0x44, 0x78, 0x40, 0x40, 0x40, 0x00},
	'Q':  {0x38, 0x44, 0x44, 0x44, 0x54, 0x48, 0x34, 0x00},
	'R':  {0x78, 0x44, 0x44, 0x78, 0x50, 0x48, 0x44, 0x00},
	'S':  {0x3C, 0x40, 0x40, 0x38, 0x04, 0x04, 0x78, 0x00},
	'T':  {0x7C, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x00},
	'U':  {0x44, 0x44, 0x44, 0x44, 0x44, 0x44, 0x38, 0x00},
	'V':  {0x44, 0x44, 0x44, 0x44, 0x44, 0x28, 0x10, 0x00},
	'W':  {0x44, 0x44, 0x44, 0x54, 0x54, 0x54, 0x28, 0x00},
	'X':  {0x44, 0x44, 0x28, 0x10, 0x28, 0x44, 0x44, 0x00},
	'Y':  {0x44, 0x44, 0x44, 0x28, 0x10, 0x10, 0x10, 0x00},
	'Z':  {0x7C, 0x04, 0x08, 0x10, 0x20, 0x40, 0x7C, 0x00},
	'[':  {0x38, 0x20, 0x20, 0x20, 0x20, 0x20, 0x38, 0x00},
	'\\': {0x40, 0x20, 0x20, 0x10, 0x08, 0x08, 0x04, 0x00},
	']':  {0x38, 0x08, 0x08, 0x08, 0x08, 0x08, 0x38, 0x00},
	'^':  {0x10, 0x28, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00},
	'_':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7C},
}

// glyphUV returns the atlas texture coordinates for c, folding lowercase
// letters to uppercase. ok is false for characters outside the atlas.
func glyphUV(c byte) (u0, v0, u1, v1 float32, ok bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < firstGlyph || c > lastGlyph {
		return 0, 0, 0, 0, false
	}
	col := int(c-firstGlyph) % atlasCols
	row := int(c-firstGlyph) / atlasCols
	u0 = float32(col*glyphW) / atlasW
	v0 = float32(row*glyphH) / atlasH
	u1 = u0 + float32(glyphW)/atlasW
	v1 = v0 + float32(glyphH)/atlasH
	return u0, v0, u1, v1, true
}

// createFontTexture rasterizes the bitmap table into a single-channel
// texture.
func createFontTexture() uint32 {
	pixels := make([]uint8, atlasW*atlasH)
	for c, bitmap := range fontBitmaps {
		col := int(c-firstGlyph) % atlasCols
		row := int(c-firstGlyph) / atlasCols
		for y := 0; y < glyphH; y++ {
			bits := bitmap[y]
			for x := 0; x < glyphW; x++ {
				if bits&(0x80>>x) != 0 {
					pixels[(row*glyphH+y)*atlasW+col*glyphW+x] = 0xFF
				}
			}
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, atlasW, atlasH, 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
