package flappy

import (
	"github.com/vovakirdan/niftybird/internal/config"
	"github.com/vovakirdan/niftybird/internal/core"
)

// Bird is the player's vertical physics state. Its column never changes.
type Bird struct {
	Y        float64 // Top of the hitbox
	Velocity float64 // Positive = falling
}

// Reset puts the bird back at its start height, at rest.
func (b *Bird) Reset(startY float64) {
	b.Y = startY
	b.Velocity = 0
}

// Fall applies one tick of gravity. A positive maxFall caps the velocity.
func (b *Bird) Fall(gravity, maxFall float64) {
	b.Velocity += gravity
	if maxFall > 0 && b.Velocity > maxFall {
		b.Velocity = maxFall
	}
	b.Y += b.Velocity
}

// Lift replaces the velocity with an upward impulse.
func (b *Bird) Lift(impulse float64) {
	b.Velocity = impulse
}

// Box returns the bird's hitbox for the given player geometry.
func (b Bird) Box(p config.GamePlayer) core.Box {
	return core.NewBox(p.X, b.Y, p.Width, p.Height)
}
