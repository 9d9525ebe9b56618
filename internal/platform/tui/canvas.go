package tui

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/niftybird/internal/core"
)

// Sprite glyphs for the terminal.
var spriteCells = map[core.Sprite]core.Cell{
	core.SpriteBackground: {Rune: ' ', Color: core.ColorCyan},
	core.SpriteBird:       {Rune: '●', Color: core.ColorYellow},
	core.SpritePipeTop:    {Rune: '█', Color: core.ColorGreen},
	core.SpritePipeBottom: {Rune: '█', Color: core.ColorGreen},
	core.SpriteGround:     {Rune: '▓', Color: core.ColorOrange},
}

// ScreenCanvas draws world-pixel primitives onto a character Screen,
// scaling the world to fit the screen.
type ScreenCanvas struct {
	screen *core.Screen
	sx, sy float64 // Cells per world pixel
}

// NewScreenCanvas creates a canvas that maps a worldW x worldH world onto
// the whole screen.
func NewScreenCanvas(screen *core.Screen, worldW, worldH float64) *ScreenCanvas {
	c := &ScreenCanvas{screen: screen}
	c.Fit(worldW, worldH)
	return c
}

// Fit recomputes the scale after the screen was resized.
func (c *ScreenCanvas) Fit(worldW, worldH float64) {
	c.sx, c.sy = 0, 0
	if worldW > 0 {
		c.sx = float64(c.screen.Width()) / worldW
	}
	if worldH > 0 {
		c.sy = float64(c.screen.Height()) / worldH
	}
}

// Screen returns the underlying buffer.
func (c *ScreenCanvas) Screen() *core.Screen {
	return c.screen
}

// cellRect converts a world rectangle to the cells it covers. Anything with
// a positive size covers at least one cell.
func (c *ScreenCanvas) cellRect(x, y, w, h float64) core.Rect {
	x0 := int(math.Floor(x * c.sx))
	y0 := int(math.Floor(y * c.sy))
	x1 := int(math.Floor((x + w) * c.sx))
	y1 := int(math.Floor((y + h) * c.sy))
	if w > 0 && x1 == x0 {
		x1++
	}
	if h > 0 && y1 == y0 {
		y1++
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// ClearRect blanks the cells under a world rectangle.
func (c *ScreenCanvas) ClearRect(x, y, w, h float64) {
	c.screen.DrawRect(c.cellRect(x, y, w, h), core.Cell{Rune: ' '})
}

// DrawImage fills the cells under a world rectangle with the sprite's glyph.
func (c *ScreenCanvas) DrawImage(img core.Sprite, x, y, w, h float64) {
	cell, ok := spriteCells[img]
	if !ok {
		return
	}
	r := c.cellRect(x, y, w, h)
	c.screen.DrawRect(r, cell)

	switch img {
	case core.SpriteGround:
		// Grass on the first row of the ground band.
		c.screen.DrawRect(core.NewRect(r.X, r.Y, r.W, 1), core.Cell{Rune: '▀', Color: core.ColorBrightGreen})
	case core.SpritePipeTop:
		c.screen.DrawRect(core.NewRect(r.X, r.Bottom()-1, r.W, 1), core.Cell{Rune: '▄', Color: core.ColorBrightGreen})
	case core.SpritePipeBottom:
		c.screen.DrawRect(core.NewRect(r.X, r.Y, r.W, 1), core.Cell{Rune: '▀', Color: core.ColorBrightGreen})
	case core.SpriteBird:
		c.screen.SetCell(r.Right()-1, r.Y, core.Cell{Rune: '▶', Color: core.ColorOrange})
	}
}

// FillRect dims the cells under a world rectangle.
func (c *ScreenCanvas) FillRect(x, y, w, h float64, shade core.Shade) {
	if shade == core.ShadeDim {
		c.screen.Tint(c.cellRect(x, y, w, h), core.ColorGray)
	}
}

// FillText writes text centered on world x. Terminal text has one size.
func (c *ScreenCanvas) FillText(text string, x, y, _ float64) {
	n := len([]rune(text))
	col := int(math.Round(x*c.sx)) - n/2
	row := int(math.Floor(y * c.sy))
	c.screen.DrawText(col, row, text, core.ColorWhite)
}

// Speaker shows the last played cue in the status line and logs it.
// Playing a cue again restarts its display time.
type Speaker struct {
	logger *log.Logger
	last   core.Cue
	seq    int
	active bool
}

// NewSpeaker creates a speaker. A nil logger disables logging.
func NewSpeaker(logger *log.Logger) *Speaker {
	return &Speaker{logger: logger}
}

// Play implements core.Speaker.
func (s *Speaker) Play(c core.Cue) {
	s.last = c
	s.seq++
	s.active = true
	if s.logger != nil {
		s.logger.Debug("cue", "name", c.String())
	}
}

// Current returns the cue being shown, if any.
func (s *Speaker) Current() (core.Cue, bool) {
	return s.last, s.active
}

// expire hides the cue if no newer one was played since seq.
func (s *Speaker) expire(seq int) {
	if seq == s.seq {
		s.active = false
	}
}
