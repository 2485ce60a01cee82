package serialization

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterVarintLayout(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one byte", 127, []byte{0x7f}},
		{"two bytes", 300, []byte{0xac, 0x02}},
		{"max uint64", math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			require.NoError(t, w.Uint64(tt.value, "v"))
			assert.Equal(t, tt.want, buf.Bytes())

			got, err := NewReader(buf.Bytes()).Uint64("v")
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestObjectMarkersWriteNothing(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.BeginObject("wallet"))
	require.NoError(t, w.EndObject())
	assert.Zero(t, buf.Len())
}

func TestMixedFieldsInOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	pod := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	require.NoError(t, w.Uint32(2, "version"))
	require.NoError(t, w.Pod(pod, "iv"))
	require.NoError(t, w.Blob([]byte("cipher"), "data"))
	require.NoError(t, w.Bool(true, "flag"))
	require.NoError(t, w.Int64(-5, "amount"))
	require.NoError(t, w.String("addr", "address"))
	assert.Equal(t, buf.Len(), w.Written())

	r := NewReader(buf.Bytes())
	version, err := r.Uint32("version")
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)

	gotPod := make([]byte, 8)
	require.NoError(t, r.Pod(gotPod, "iv"))
	assert.Equal(t, pod, gotPod)

	data, err := r.Blob("data")
	require.NoError(t, err)
	assert.Equal(t, []byte("cipher"), data)

	flag, err := r.Bool("flag")
	require.NoError(t, err)
	assert.True(t, flag)

	amount, err := r.Int64("amount")
	require.NoError(t, err)
	assert.EqualValues(t, -5, amount)

	addr, err := r.String("address")
	require.NoError(t, err)
	assert.Equal(t, "addr", addr)
	assert.Zero(t, r.Remaining())
}

func TestReaderErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := NewReader(nil).Uint64("v")
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("uint32 overflow", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf).Uint64(math.MaxUint32+1, "v"))
		_, err := NewReader(buf.Bytes()).Uint32("v")
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("unterminated varint", func(t *testing.T) {
		_, err := NewReader(bytes.Repeat([]byte{0xff}, 11)).Uint64("v")
		assert.Error(t, err)
	})

	t.Run("blob longer than input", func(t *testing.T) {
		_, err := NewReader([]byte{0x05, 'a', 'b'}).Blob("data")
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("short pod", func(t *testing.T) {
		err := NewReader([]byte{1, 2, 3}).Pod(make([]byte, 8), "iv")
		assert.Error(t, err)
	})

	t.Run("array count beyond input", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf).BeginArray(1<<40, "items"))
		_, err := NewReader(buf.Bytes()).BeginArray("items", 1)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestBlobIsCopied(t *testing.T) {
	data := []byte{0x02, 'o', 'k'}
	b, err := NewReader(data).Blob("data")
	require.NoError(t, err)
	data[1] = 'X'
	assert.Equal(t, []byte("ok"), b)
}
