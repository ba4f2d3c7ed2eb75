// Package audio plays the short cues the timer emits. A terminal has no
// oscillator, so the bell player rings BEL for cues long enough to notice and
// stays quiet for ticks and countdown blips.
package audio

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomod/internal/model"
)

type Wave string

const (
	WaveSine     Wave = "sine"
	WaveTriangle Wave = "triangle"
	WaveSquare   Wave = "square"
)

// Tone describes how a cue sounds.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Wave      Wave
}

var tones = map[model.SoundKind]Tone{
	model.SoundBell:      {Frequency: 800, Duration: time.Second, Wave: WaveSine},
	model.SoundChime:     {Frequency: 600, Duration: 800 * time.Millisecond, Wave: WaveTriangle},
	model.SoundDing:      {Frequency: 1000, Duration: 600 * time.Millisecond, Wave: WaveSine},
	model.SoundBeep:      {Frequency: 400, Duration: 300 * time.Millisecond, Wave: WaveSquare},
	model.SoundTick:      {Frequency: 1200, Duration: 50 * time.Millisecond, Wave: WaveSquare},
	model.SoundCountdown: {Frequency: 600, Duration: 100 * time.Millisecond, Wave: WaveSine},
}

// ToneFor reports the tone of kind. SoundNone and unknown kinds have none.
func ToneFor(kind model.SoundKind) (Tone, bool) {
	t, ok := tones[kind]
	return t, ok
}

// minBellDuration is the shortest tone rendered as a terminal bell.
const minBellDuration = 300 * time.Millisecond

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(model.SoundKind, int) {}

// BellPlayer writes BEL to a terminal from its own goroutine so Play never
// blocks the event loop. Cues arriving while the queue is full are dropped.
type BellPlayer struct {
	out     io.Writer
	log     zerolog.Logger
	queue   chan model.SoundKind
	done    chan struct{}
	dropped uint64

	mu     sync.Mutex
	closed bool
}

func NewBellPlayer(out io.Writer, log zerolog.Logger) *BellPlayer {
	p := &BellPlayer{
		out:   out,
		log:   log.With().Str("component", "audio").Logger(),
		queue: make(chan model.SoundKind, 4),
		done:  make(chan struct{}),
	}
	go p.loop()
	return p
}

// Play queues kind. Volume 0 mutes.
func (p *BellPlayer) Play(kind model.SoundKind, volume int) {
	if volume <= 0 || !Audible(kind) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.queue <- kind:
	default:
		atomic.AddUint64(&p.dropped, 1)
	}
}

// Audible reports whether the bell player renders kind.
func Audible(kind model.SoundKind) bool {
	t, ok := tones[kind]
	return ok && t.Duration >= minBellDuration
}

func (p *BellPlayer) Dropped() uint64 {
	return atomic.LoadUint64(&p.dropped)
}

// Close stops the player after the queued cues are written.
func (p *BellPlayer) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()
	<-p.done
}

func (p *BellPlayer) loop() {
	defer close(p.done)
	for kind := range p.queue {
		if _, err := p.out.Write([]byte{'\a'}); err != nil {
			p.log.Debug().Err(err).Str("sound", string(kind)).Msg("bell write failed")
		}
	}
}
