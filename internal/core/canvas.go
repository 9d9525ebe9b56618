package core

// Sprite names an image the rendering collaborator knows how to draw.
// Asset decoding belongs to the platform; the game only names what to draw.
type Sprite int

const (
	SpriteBackground Sprite = iota
	SpriteBird
	SpritePipeTop    // Hangs from the ceiling down to the gap
	SpritePipeBottom // Rises from the ground up to the gap
	SpriteGround
)

// String returns a human-readable name for the sprite.
func (s Sprite) String() string {
	switch s {
	case SpriteBackground:
		return "Background"
	case SpriteBird:
		return "Bird"
	case SpritePipeTop:
		return "PipeTop"
	case SpritePipeBottom:
		return "PipeBottom"
	case SpriteGround:
		return "Ground"
	default:
		return "Unknown"
	}
}

// Shade is a translucent fill used for overlays.
type Shade int

const (
	ShadeDim Shade = iota // Half-transparent black, used behind "Game Over!"
)

// Canvas is the 2D drawing surface the game renders to each frame.
// Coordinates are world pixels. Text is centered horizontally on x.
type Canvas interface {
	ClearRect(x, y, w, h float64)
	DrawImage(img Sprite, x, y, w, h float64)
	FillRect(x, y, w, h float64, shade Shade)
	FillText(text string, x, y, size float64)
}

// Cue is a sound effect the game asks the platform to play.
type Cue int

const (
	CueFly Cue = iota
	CueScore
	CueDie
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueFly:
		return "Fly"
	case CueScore:
		return "Score"
	case CueDie:
		return "Die"
	default:
		return "Unknown"
	}
}

// Speaker plays cues fire-and-forget. Playing a cue that is already
// sounding rewinds it to the start.
type Speaker interface {
	Play(c Cue)
}

// PlayAll plays every cue of a step result in order.
func PlayAll(s Speaker, cues []Cue) {
	if s == nil {
		return
	}
	for _, c := range cues {
		s.Play(c)
	}
}
