package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/adrianliechti/narrator/pkg/audio"
)

const SkipInterval = 15 * time.Second

var Rates = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

// Media is the element that actually renders audio.
type Media interface {
	Play() error
	Pause()

	Seek(position time.Duration)

	SetVolume(volume float64)
	SetRate(rate float64)
}

type Source struct {
	ID     string
	Format string

	// URL is a data URL or a remote location. Content takes precedence when set.
	URL     string
	Content []byte
}

type State struct {
	Loaded  bool
	Playing bool

	Position time.Duration
	Duration time.Duration

	Volume float64
	Rate   float64

	Err error
}

type Download struct {
	Name        string
	ContentType string

	Data []byte
}

// Player controls one media element. Every operation is a no-op until media
// is attached and its metadata has loaded.
type Player struct {
	client *http.Client

	mu sync.Mutex

	media  Media
	source *Source
	state  State
}

func New(client *http.Client) *Player {
	if client == nil {
		client = http.DefaultClient
	}

	return &Player{
		client: client,

		state: State{
			Volume: 1,
			Rate:   1,
		},
	}
}

// Load attaches media, replacing anything loaded before.
func (p *Player) Load(media Media, source Source) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.media != nil && p.state.Playing {
		p.media.Pause()
	}

	p.media = media
	p.source = &source

	p.state = State{
		Volume: p.state.Volume,
		Rate:   p.state.Rate,
	}

	if media != nil {
		media.SetVolume(p.state.Volume)
		media.SetRate(p.state.Rate)
	}
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// HandleLoaded records the duration once media metadata is available.
func (p *Player) HandleLoaded(duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.media == nil {
		return
	}

	p.state.Loaded = true
	p.state.Duration = max(duration, 0)
}

func (p *Player) HandleTimeUpdate(position time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() {
		return
	}

	p.state.Position = p.clamp(position)
}

func (p *Player) HandleEnded() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.media == nil {
		return
	}

	p.state.Playing = false
	p.state.Position = 0
}

func (p *Player) HandleError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.media == nil {
		return
	}

	p.state.Playing = false
	p.state.Err = err
}

func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() || p.state.Playing {
		return nil
	}

	if err := p.media.Play(); err != nil {
		p.state.Err = err
		return err
	}

	p.state.Playing = true
	p.state.Err = nil

	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() || !p.state.Playing {
		return
	}

	p.media.Pause()
	p.state.Playing = false
}

func (p *Player) Toggle() error {
	if p.State().Playing {
		p.Pause()
		return nil
	}

	return p.Play()
}

// Seek moves to position, clamped to the media duration.
func (p *Player) Seek(position time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seek(position)
}

// Skip moves relative to the current position, e.g. -SkipInterval.
func (p *Player) Skip(offset time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seek(p.state.Position + offset)
}

func (p *Player) seek(position time.Duration) {
	if !p.ready() {
		return
	}

	position = p.clamp(position)

	p.media.Seek(position)
	p.state.Position = position
}

func (p *Player) ready() bool {
	return p.media != nil && p.state.Loaded
}

func (p *Player) clamp(position time.Duration) time.Duration {
	return min(max(position, 0), p.state.Duration)
}

// SetVolume sets the volume, clamped to [0, 1].
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() || math.IsNaN(volume) {
		return
	}

	volume = min(max(volume, 0), 1)

	p.media.SetVolume(volume)
	p.state.Volume = volume
}

// SetRate picks the preset closest to rate.
func (p *Player) SetRate(rate float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() || math.IsNaN(rate) {
		return
	}

	closest := Rates[0]

	for _, r := range Rates {
		if math.Abs(r-rate) < math.Abs(closest-rate) {
			closest = r
		}
	}

	p.media.SetRate(closest)
	p.state.Rate = closest
}

// Download returns the loaded audio as a named file, or nil if nothing is ready.
func (p *Player) Download(ctx context.Context) (*Download, error) {
	p.mu.Lock()
	source := p.source
	loaded := p.ready()
	p.mu.Unlock()

	if !loaded || source == nil {
		return nil, nil
	}

	data, contentType, err := p.fetch(ctx, source)

	if err != nil {
		return nil, err
	}

	format := source.Format

	if format == "" {
		format = strings.TrimPrefix(contentType, "audio/")
	}

	return &Download{
		Name:        fmt.Sprintf("audio_%s.%s", source.ID, format),
		ContentType: contentType,

		Data: data,
	}, nil
}

func (p *Player) fetch(ctx context.Context, source *Source) ([]byte, string, error) {
	if len(source.Content) > 0 {
		return source.Content, "audio/" + source.Format, nil
	}

	if strings.HasPrefix(source.URL, "data:") {
		return audio.DecodeDataURL(source.URL)
	}

	if source.URL == "" {
		return nil, "", errors.New("no audio source")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)

	if err != nil {
		return nil, "", err
	}

	resp, err := p.client.Do(req)

	if err != nil {
		return nil, "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, "", err
	}

	return data, resp.Header.Get("Content-Type"), nil
}
