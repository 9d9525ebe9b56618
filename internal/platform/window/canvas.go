package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/niftybird/internal/core"
)

// basicfont glyphs are 13 pixels tall; text is scaled from there.
const faceHeight = 13

var (
	skyColor    = color.RGBA{0x70, 0xc5, 0xce, 0xff}
	birdColor   = color.RGBA{0xf8, 0xd8, 0x20, 0xff}
	beakColor   = color.RGBA{0xf0, 0x80, 0x30, 0xff}
	pipeColor   = color.RGBA{0x58, 0xb0, 0x38, 0xff}
	capColor    = color.RGBA{0x78, 0xd0, 0x50, 0xff}
	groundColor = color.RGBA{0xde, 0xd8, 0x95, 0xff}
	grassColor  = color.RGBA{0x5e, 0xe2, 0x70, 0xff}
	dimColor    = color.RGBA{0x00, 0x00, 0x00, 0x80}
	textColor   = color.White
	shadowColor = color.Black
)

// ImageCanvas draws the game's primitives onto an ebiten image whose
// pixels are world pixels.
type ImageCanvas struct {
	dst  *ebiten.Image
	face text.Face
}

// NewImageCanvas creates a canvas with the built-in bitmap font.
func NewImageCanvas() *ImageCanvas {
	return &ImageCanvas{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Target sets the image the next frame is drawn to.
func (c *ImageCanvas) Target(dst *ebiten.Image) {
	c.dst = dst
}

func (c *ImageCanvas) rect(x, y, w, h float64, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// ClearRect implements core.Canvas.
func (c *ImageCanvas) ClearRect(x, y, w, h float64) {
	c.rect(x, y, w, h, color.Black)
}

// DrawImage implements core.Canvas with flat-colored shapes per sprite.
func (c *ImageCanvas) DrawImage(img core.Sprite, x, y, w, h float64) {
	switch img {
	case core.SpriteBackground:
		c.rect(x, y, w, h, skyColor)
	case core.SpriteBird:
		c.rect(x, y, w, h, birdColor)
		c.rect(x+w*0.75, y+h*0.4, w*0.35, h*0.25, beakColor)
		c.rect(x+w*0.6, y+h*0.15, 4, 4, color.Black)
	case core.SpritePipeTop:
		c.rect(x, y, w, h, pipeColor)
		c.rect(x-3, y+h-12, w+6, 12, capColor)
	case core.SpritePipeBottom:
		c.rect(x, y, w, h, pipeColor)
		c.rect(x-3, y, w+6, 12, capColor)
	case core.SpriteGround:
		c.rect(x, y, w, h, groundColor)
		c.rect(x, y, w, 8, grassColor)
	}
}

// FillRect implements core.Canvas.
func (c *ImageCanvas) FillRect(x, y, w, h float64, shade core.Shade) {
	if shade == core.ShadeDim {
		c.rect(x, y, w, h, dimColor)
	}
}

// FillText implements core.Canvas. Text is centered on x with its baseline
// at y, drawn with a one-pixel shadow.
func (c *ImageCanvas) FillText(s string, x, y, size float64) {
	scale := size / faceHeight
	for _, pass := range []struct {
		off float64
		clr color.Color
	}{{1, shadowColor}, {0, textColor}} {
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignEnd
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+pass.off, y+pass.off)
		op.ColorScale.ScaleWithColor(pass.clr)
		text.Draw(c.dst, s, c.face, op)
	}
}
