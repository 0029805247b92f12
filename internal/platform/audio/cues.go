package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/shapedrop/internal/games/shapedrop/engine"
)

const sampleRate = beep.SampleRate(44100)

// Cue timings.
const (
	chimeNote    = 70 * time.Millisecond
	dropThud     = 60 * time.Millisecond
	lockTick     = 25 * time.Millisecond
	gameOverTone = 700 * time.Millisecond
)

// chimeBase is C5. Each cleared row adds a major third, and each combo
// level raises the whole chime a semitone.
const chimeBase = 523.25

func semitones(freq float64, n int) float64 {
	return freq * math.Pow(2, float64(n)/12)
}

// LockCue builds the cue for a lock event, or nil if it has none.
func LockCue(ev engine.LockEvent, rate beep.SampleRate) beep.Streamer {
	switch {
	case ev.GameOver:
		return NewEnvelope(
			NewSweep(440, 110, gameOverTone, WaveSquare, rate),
			gameOverTone, 10*time.Millisecond, gameOverTone/3, rate,
		)

	case ev.Cleared > 0:
		base := semitones(chimeBase, ev.ComboBefore)
		notes := make([]beep.Streamer, 0, ev.Cleared)
		for i := 0; i < ev.Cleared; i++ {
			notes = append(notes, note(semitones(base, 4*i), chimeNote, WaveSine, rate))
		}
		return beep.Seq(notes...)

	case ev.DropRows > 0:
		return note(90, dropThud, WaveSquare, rate)

	default:
		return note(220, lockTick, WaveSine, rate)
	}
}

// Player plays lock cues on the system speaker. It implements the game's
// cue player interface.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// New initializes the speaker and returns a Player at volume in [0, 1].
func New(volume float64) (*Player, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", speakerErr)
	}

	p := &Player{
		mixer:  &beep.Mixer{},
		volume: math.Min(math.Max(volume, 0), 1),
	}
	speaker.Play(p.mixer)
	return p, nil
}

// PlayLock queues the cue for ev.
func (p *Player) PlayLock(ev engine.LockEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	cue := LockCue(ev, sampleRate)
	if cue == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(newVolume(cue, p.volume))
	speaker.Unlock()
}

// Close silences pending cues. Later calls to PlayLock are ignored.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}
