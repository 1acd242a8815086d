package player

import (
	"sync"
	"time"
)

var _ Media = (*Timeline)(nil)

// Timeline is a Media without audio output. It advances a position by wall
// clock time scaled by the playback rate.
type Timeline struct {
	mu sync.Mutex

	now func() time.Time

	duration time.Duration

	playing bool
	offset  time.Duration
	started time.Time

	rate   float64
	volume float64
}

func NewTimeline(duration time.Duration) *Timeline {
	return &Timeline{
		now: time.Now,

		duration: duration,

		rate:   1,
		volume: 1,
	}
}

func (t *Timeline) Duration() time.Duration {
	return t.duration
}

func (t *Timeline) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.playing {
		return nil
	}

	if t.offset >= t.duration {
		t.offset = 0
	}

	t.playing = true
	t.started = t.now()

	return nil
}

func (t *Timeline) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.offset = t.position()
	t.playing = false
}

func (t *Timeline) Seek(position time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.offset = position
	t.started = t.now()
}

func (t *Timeline) SetVolume(volume float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.volume = volume
}

func (t *Timeline) SetRate(rate float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.offset = t.position()
	t.started = t.now()
	t.rate = rate
}

// Position reports the current position and whether the end was reached.
func (t *Timeline) Position() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	position := t.position()

	return position, position >= t.duration
}

func (t *Timeline) position() time.Duration {
	position := t.offset

	if t.playing {
		position += time.Duration(float64(t.now().Sub(t.started)) * t.rate)
	}

	return min(position, t.duration)
}

// Sync forwards the timeline position to p and reports the end of playback.
func (t *Timeline) Sync(p *Player) {
	position, ended := t.Position()

	if ended && p.State().Playing {
		t.Pause()
		p.HandleEnded()
		return
	}

	p.HandleTimeUpdate(position)
}
