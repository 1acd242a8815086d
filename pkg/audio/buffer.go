package audio

import (
	"errors"
	"io"
)

// buffer is an in-memory io.WriteSeeker, the wav encoder patches its header after writing samples.
type buffer struct {
	data []byte
	pos  int
}

func (b *buffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.data) {
		b.data = append(b.data, make([]byte, end-len(b.data))...)
	}

	n := copy(b.data[b.pos:], p)
	b.pos += n

	return n, nil
}

func (b *buffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}

	if pos < 0 {
		return 0, errors.New("negative position")
	}

	b.pos = int(pos)

	return pos, nil
}

func (b *buffer) Bytes() []byte {
	return b.data
}
