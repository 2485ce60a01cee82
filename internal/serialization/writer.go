// Package serialization implements the positional binary format used for
// wallet files: unsigned integers are LEB128 varints, bools are one byte,
// fixed-size values are written raw and byte blobs carry a varint length.
// Object and field names are not written; readers must consume fields in
// the order writers produced them.
package serialization

import (
	"encoding/binary"
	"fmt"
	"io"

	bin "github.com/gagliardetto/binary"
)

// Writer writes fields to an underlying stream.
type Writer struct {
	enc *bin.Encoder
}

// NewWriter creates a Writer on top of w
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: bin.NewBinEncoder(w)}
}

// Written returns the count of bytes written so far.
func (w *Writer) Written() int {
	return w.enc.Written()
}

// BeginObject marks the start of a named object. Nothing is written.
func (w *Writer) BeginObject(name string) error {
	return nil
}

// EndObject marks the end of the current object. Nothing is written.
func (w *Writer) EndObject() error {
	return nil
}

// Uint64 writes v as a varint.
func (w *Writer) Uint64(v uint64, name string) error {
	// bin.Encoder.WriteUVarInt only has room for 8 encoded bytes
	if _, err := w.enc.Write(binary.AppendUvarint(nil, v)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (w *Writer) Uint32(v uint32, name string) error {
	return w.Uint64(uint64(v), name)
}

func (w *Writer) Uint8(v uint8, name string) error {
	return w.Uint64(uint64(v), name)
}

// Int64 writes the two's complement bit pattern of v as a varint.
func (w *Writer) Int64(v int64, name string) error {
	return w.Uint64(uint64(v), name)
}

func (w *Writer) Bool(v bool, name string) error {
	if err := w.enc.WriteBool(v); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Pod writes a fixed-size value without a length prefix.
func (w *Writer) Pod(b []byte, name string) error {
	if err := w.enc.WriteBytes(b, false); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Blob writes b prefixed with its varint length.
func (w *Writer) Blob(b []byte, name string) error {
	if err := w.Uint64(uint64(len(b)), name); err != nil {
		return err
	}
	return w.Pod(b, name)
}

func (w *Writer) String(s string, name string) error {
	return w.Blob([]byte(s), name)
}

// BeginArray writes the element count of the array that follows.
func (w *Writer) BeginArray(size int, name string) error {
	return w.Uint64(uint64(size), name)
}
