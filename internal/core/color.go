package core

// Color is a foreground color for a screen cell.
// Platforms map it to ANSI 256-color codes.
type Color uint8

// Colors used by the terminal canvas for each sprite.
const (
	ColorDefault Color = iota
	ColorGreen         // Pipes
	ColorBrightGreen   // Grass
	ColorYellow        // Bird
	ColorCyan          // Sky
	ColorWhite         // Text
	ColorGray          // Dimmed by the game-over overlay
	ColorOrange        // Bird beak
)
