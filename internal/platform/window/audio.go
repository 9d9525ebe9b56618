package window

import (
	"encoding/binary"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/niftybird/internal/core"
)

const sampleRate = 44100

// tone is one segment of a synthesized cue.
type tone struct {
	freq    float64 // Hz
	seconds float64
}

// cueTones describes each cue as a short sequence of sine tones.
var cueTones = map[core.Cue][]tone{
	core.CueFly:   {{freq: 660, seconds: 0.06}},
	core.CueScore: {{freq: 880, seconds: 0.07}, {freq: 1320, seconds: 0.09}},
	core.CueDie:   {{freq: 220, seconds: 0.12}, {freq: 147, seconds: 0.22}},
}

// synthesize renders tones as 16-bit little-endian stereo PCM. Each tone
// fades out linearly to avoid clicks between segments.
func synthesize(tones []tone, volume float64) []byte {
	var frames int
	for _, t := range tones {
		frames += int(t.seconds * sampleRate)
	}

	buf := make([]byte, 0, frames*4)
	for _, t := range tones {
		n := int(t.seconds * sampleRate)
		for i := range n {
			env := 1 - float64(i)/float64(n)
			v := math.Sin(2*math.Pi*t.freq*float64(i)/sampleRate) * env * volume
			s := int16(v * math.MaxInt16)
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}
	}
	return buf
}

// Speaker plays the cues through ebiten's audio context. Each cue has one
// player; playing it again rewinds it.
type Speaker struct {
	players map[core.Cue]*audio.Player
	logger  *log.Logger
}

// NewSpeaker synthesizes every cue up front.
func NewSpeaker(ctx *audio.Context, volume float64, logger *log.Logger) *Speaker {
	s := &Speaker{
		players: make(map[core.Cue]*audio.Player, len(cueTones)),
		logger:  logger,
	}
	for cue, tones := range cueTones {
		s.players[cue] = ctx.NewPlayerFromBytes(synthesize(tones, volume))
	}
	return s
}

// Play implements core.Speaker.
func (s *Speaker) Play(c core.Cue) {
	p, ok := s.players[c]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		s.logger.Warn("could not rewind cue", "cue", c, "error", err)
		return
	}
	p.Play()
}
