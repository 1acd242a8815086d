package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var ErrInvalidWAV = errors.New("invalid wav data")

type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int

	Duration time.Duration
}

// Probe reads the header of a WAV file.
func Probe(data []byte) (*Info, error) {
	d := wav.NewDecoder(bytes.NewReader(data))

	if !d.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	duration, err := d.Duration()

	if err != nil {
		return nil, err
	}

	return &Info{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),

		Duration: duration,
	}, nil
}

// Duration returns the playback length of WAV data, or zero if it cannot be determined.
func Duration(data []byte) time.Duration {
	info, err := Probe(data)

	if err != nil {
		return 0
	}

	return info.Duration
}

// EncodeWAV wraps little-endian signed 16-bit PCM samples in a WAV container.
func EncodeWAV(pcm []byte, sampleRate, channels, bitDepth int) ([]byte, error) {
	if bitDepth != 16 {
		return nil, errors.New("only 16-bit pcm is supported")
	}

	samples := make([]int, len(pcm)/2)

	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*2:])))
	}

	w := new(buffer)
	e := wav.NewEncoder(w, sampleRate, bitDepth, channels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},

		Data:           samples,
		SourceBitDepth: bitDepth,
	}

	if err := e.Write(buf); err != nil {
		return nil, err
	}

	if err := e.Close(); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}
