package serialization

import (
	"errors"
	"fmt"
	"io"
	"math"

	bin "github.com/gagliardetto/binary"
)

// ErrOverflow is returned when a varint does not fit the requested width.
var ErrOverflow = errors.New("value overflows field width")

// Reader reads fields from an in-memory buffer in the order a Writer wrote
// them.
type Reader struct {
	dec *bin.Decoder
}

// NewReader creates a Reader over data. The Reader does not copy data.
func NewReader(data []byte) *Reader {
	return &Reader{dec: bin.NewBinDecoder(data)}
}

// ReadFrom drains r and returns a Reader over its contents.
func ReadFrom(r io.Reader) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}
	return NewReader(data), nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return r.dec.Remaining()
}

func (r *Reader) BeginObject(name string) error {
	return nil
}

func (r *Reader) EndObject() error {
	return nil
}

func (r *Reader) Uint64(name string) (uint64, error) {
	if !r.dec.HasRemaining() {
		return 0, fmt.Errorf("failed to read %s: %w", name, io.ErrUnexpectedEOF)
	}
	v, err := r.dec.ReadUvarint64()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return v, nil
}

func (r *Reader) Uint32(name string) (uint32, error) {
	v, err := r.Uint64(name)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("failed to read %s: %w", name, ErrOverflow)
	}
	return uint32(v), nil
}

func (r *Reader) Uint8(name string) (uint8, error) {
	v, err := r.Uint64(name)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint8 {
		return 0, fmt.Errorf("failed to read %s: %w", name, ErrOverflow)
	}
	return uint8(v), nil
}

func (r *Reader) Int64(name string) (int64, error) {
	v, err := r.Uint64(name)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func (r *Reader) Bool(name string) (bool, error) {
	v, err := r.dec.ReadBool()
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return v, nil
}

// Pod fills dst with exactly len(dst) raw bytes.
func (r *Reader) Pod(dst []byte, name string) error {
	b, err := r.dec.ReadNBytes(len(dst))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	copy(dst, b)
	return nil
}

// Blob reads a length-prefixed byte blob. The result is a copy; an empty
// blob reads as nil.
func (r *Reader) Blob(name string) ([]byte, error) {
	size, err := r.Uint64(name)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	if size > uint64(r.dec.Remaining()) {
		return nil, fmt.Errorf("failed to read %s: blob of %d bytes, %d remaining: %w",
			name, size, r.dec.Remaining(), io.ErrUnexpectedEOF)
	}
	b, err := r.dec.ReadNBytes(int(size))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (r *Reader) String(name string) (string, error) {
	b, err := r.Blob(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// BeginArray reads an element count. Every element takes at least
// minElemSize bytes, so counts the remaining input cannot hold are rejected
// before anything is allocated.
func (r *Reader) BeginArray(name string, minElemSize int) (int, error) {
	n, err := r.Uint64(name)
	if err != nil {
		return 0, err
	}
	if minElemSize < 1 {
		minElemSize = 1
	}
	if n > uint64(r.dec.Remaining()/minElemSize) {
		return 0, fmt.Errorf("failed to read %s: %d elements cannot fit in %d bytes: %w",
			name, n, r.dec.Remaining(), io.ErrUnexpectedEOF)
	}
	return int(n), nil
}
