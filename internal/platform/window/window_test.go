package window

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/niftybird/internal/config"
	"github.com/vovakirdan/niftybird/internal/core"
	"github.com/vovakirdan/niftybird/internal/games/flappy"
)

type recordingSpeaker struct {
	played []core.Cue
}

func (s *recordingSpeaker) Play(c core.Cue) {
	s.played = append(s.played, c)
}

func newTestDriver() (*driver, *recordingSpeaker) {
	sp := &recordingSpeaker{}
	game := flappy.New(config.DefaultGameConfig(), 7)
	return newDriver(game, sp, log.New(io.Discard)), sp
}

var (
	tap   = core.Event{Kind: core.EventTap}
	click = core.Event{Kind: core.EventClick}
	space = core.Event{Kind: core.EventKey, Key: core.KeySpace}
)

func TestDriverIdleUntilActivated(t *testing.T) {
	d, _ := newTestDriver()

	for range 10 {
		d.frame(nil)
	}
	if s := d.game.State(); s.Phase != core.PhaseStart || s.Frame != 0 {
		t.Errorf("state = %+v, expected an idle start screen", s)
	}
}

func TestDriverTicksOnce(t *testing.T) {
	d, _ := newTestDriver()

	d.frame([]core.Event{space})
	if !d.running || d.loop != d.game.Token() {
		t.Fatalf("driver not following the new loop (running %v, loop %d)", d.running, d.loop)
	}
	if f := d.game.State().Frame; f != 1 {
		t.Errorf("frame = %d after the first Update, expected 1", f)
	}

	for range 5 {
		d.frame(nil)
	}
	if f := d.game.State().Frame; f != 6 {
		t.Errorf("frame = %d after six Updates, expected 6", f)
	}
}

func TestDriverTapSwallowsSynthesizedClick(t *testing.T) {
	d, sp := newTestDriver()

	d.frame([]core.Event{space})
	sp.played = nil

	d.frame([]core.Event{tap, click})
	flaps := 0
	for _, c := range sp.played {
		if c == core.CueFly {
			flaps++
		}
	}
	if flaps != 1 {
		t.Errorf("one touch flapped %d times, expected 1", flaps)
	}
}

func TestDriverStopsOnGameOver(t *testing.T) {
	d, sp := newTestDriver()

	d.frame([]core.Event{click})
	for i := 0; i < 500 && d.running; i++ {
		d.frame(nil)
	}
	if d.running {
		t.Fatal("the loop never stopped")
	}
	if !d.game.State().GameOver() {
		t.Fatalf("phase = %v, expected Over", d.game.State().Phase)
	}
	if last := sp.played[len(sp.played)-1]; last != core.CueDie {
		t.Errorf("last cue = %v, expected Die", last)
	}

	frame := d.game.State().Frame
	d.frame(nil)
	if d.game.State().Frame != frame {
		t.Error("a stopped loop must not tick")
	}

	d.frame([]core.Event{space})
	if s := d.game.State(); s.Phase != core.PhasePlaying || s.Frame != 1 {
		t.Errorf("restart state = %+v, expected a fresh run", s)
	}
}

func TestSynthesize(t *testing.T) {
	tones := []tone{{freq: 440, seconds: 0.01}, {freq: 880, seconds: 0.02}}
	pcm := synthesize(tones, 0.5)

	frames := int(0.01*sampleRate) + int(0.02*sampleRate)
	if len(pcm) != frames*4 {
		t.Fatalf("len = %d bytes, expected %d", len(pcm), frames*4)
	}

	volume := 0.5
	limit := int16(volume*32767) + 1
	for i := 0; i < len(pcm); i += 2 {
		s := int16(binary.LittleEndian.Uint16(pcm[i:]))
		if s > limit || s < -limit {
			t.Fatalf("sample %d = %d exceeds the volume", i/2, s)
		}
	}

	// Left and right channels carry the same sample.
	for i := 0; i < len(pcm); i += 4 {
		if pcm[i] != pcm[i+2] || pcm[i+1] != pcm[i+3] {
			t.Fatalf("frame %d is not mirrored", i/4)
		}
	}
}

func TestEveryCueHasTones(t *testing.T) {
	for _, c := range []core.Cue{core.CueFly, core.CueScore, core.CueDie} {
		if len(cueTones[c]) == 0 {
			t.Errorf("cue %v has no tones", c)
		}
	}
}
