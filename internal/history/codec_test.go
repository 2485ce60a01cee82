package history

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/legacy-wallet/internal/serialization"
)

func sampleCache() *Cache {
	c := New()
	c.AddTransaction(Transaction{
		TotalAmount: 5_000_000,
		SentTime:    1700000000,
		UnlockTime:  10,
		Hash:        Hash{1, 2, 3},
		BlockHeight: 12345,
		Timestamp:   1700000100,
		Extra:       []byte{0x01, 0xaa},
		State:       StateActive,
	})
	c.AddTransaction(Transaction{
		TotalAmount: -2_000_000,
		Fee:         10_000,
		SentTime:    1700000200,
		Hash:        Hash{4, 5, 6},
		BlockHeight: 12400,
		Timestamp:   1700000300,
		State:       StateSending,
	},
		Transfer{Address: "addr-one", Amount: 1_500_000},
		Transfer{Address: "addr-two", Amount: 500_000},
	)
	c.AddTransaction(Transaction{
		IsCoinbase:  true,
		TotalAmount: 70_000_000,
		Hash:        Hash{7},
		BlockHeight: 12500,
		Timestamp:   1700000400,
		State:       StateCancelled,
	})
	c.AddUnconfirmed(UnconfirmedTransfer{
		Hash:          Hash{4, 5, 6},
		TransactionID: 1,
		Amount:        2_000_000,
		OutsAmount:    3_000_000,
		SentTime:      1700000200,
		UsedOutputs: []OutputID{
			{TransactionPublicKey: [32]byte{9}, OutputInTransaction: 2},
		},
	})
	return c
}

func encode(t *testing.T, fn func(w *serialization.Writer) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(serialization.NewWriter(&buf)))
	return buf.Bytes()
}

func TestCacheRoundTrip(t *testing.T) {
	src := sampleCache()
	data := encode(t, src.Serialize)

	dst := New()
	r := serialization.NewReader(data)
	require.NoError(t, dst.Deserialize(r))
	assert.Equal(t, 0, r.Remaining())

	assert.Equal(t, src.Transactions(), dst.Transactions())
	assert.Equal(t, src.Unconfirmed(), dst.Unconfirmed())
	assert.Equal(t, src.Transfers(1), dst.Transfers(1))
	assert.Nil(t, dst.Transfers(0))
}

func TestEmptyCacheRoundTrip(t *testing.T) {
	data := encode(t, New().Serialize)
	// three zero counts
	assert.Equal(t, []byte{0, 0, 0}, data)

	dst := sampleCache()
	require.NoError(t, dst.Deserialize(serialization.NewReader(data)))
	assert.Zero(t, dst.TransactionCount())
	assert.Zero(t, dst.TransferCount())
	assert.Empty(t, dst.Unconfirmed())
}

func TestLegacyV1Decode(t *testing.T) {
	src := sampleCache()
	data := encode(t, src.SerializeLegacyV1)

	dst := New()
	require.NoError(t, dst.DeserializeLegacyV1(serialization.NewReader(data)))
	require.Equal(t, src.TransactionCount(), dst.TransactionCount())

	for i, tx := range dst.Transactions() {
		want := src.Transactions()[i]
		assert.Equal(t, want.Hash, tx.Hash)
		assert.Equal(t, want.TotalAmount, tx.TotalAmount)
		assert.Equal(t, want.Extra, tx.Extra)
		assert.Zero(t, tx.UnlockTime, "legacy layout has no unlock time")
		assert.Equal(t, StateActive, tx.State, "legacy transactions load as active")
	}
	assert.Equal(t, src.Transfers(1), dst.Transfers(1))

	unconfirmed := dst.Unconfirmed()
	require.Len(t, unconfirmed, 1)
	assert.Equal(t, uint64(2_000_000), unconfirmed[0].Amount)
	assert.Nil(t, unconfirmed[0].UsedOutputs)
}

func TestCurrentDecoderRejectsLegacyLayout(t *testing.T) {
	src := New()
	// 0xff bytes in the hash land where the current layout expects the
	// unlock_time varint and overflow it.
	var h Hash
	for i := range h {
		h[i] = 0xff
	}
	src.AddTransaction(Transaction{TotalAmount: 1, Hash: h})
	data := encode(t, src.SerializeLegacyV1)

	dst := sampleCache()
	before := dst.Transactions()
	assert.Error(t, dst.Deserialize(serialization.NewReader(data)))
	assert.Equal(t, before, dst.Transactions(), "failed decode must leave the cache untouched")
}

func TestDeserializeUnknownState(t *testing.T) {
	src := New()
	src.AddTransaction(Transaction{Hash: Hash{1}})
	src.transactions[0].State = TransactionState(42)
	data := encode(t, src.Serialize)

	err := New().Deserialize(serialization.NewReader(data))
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestDeserializeInconsistentTransfers(t *testing.T) {
	src := New()
	src.AddTransaction(Transaction{Hash: Hash{1}}, Transfer{Address: "a", Amount: 1})
	src.transactions[0].TransferCount = 5
	data := encode(t, src.Serialize)

	err := New().Deserialize(serialization.NewReader(data))
	assert.ErrorIs(t, err, ErrInconsistent)
}

func TestDeserializeGarbage(t *testing.T) {
	inputs := map[string][]byte{
		"empty":           {},
		"huge count":      {0xff, 0xff, 0xff, 0xff, 0x0f},
		"truncated":       encode(t, sampleCache().Serialize)[:40],
		"unterminated":    {0x80, 0x80, 0x80},
		"count past data": {0x02, 0x00},
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Error(t, New().Deserialize(serialization.NewReader(data)))
				assert.Error(t, New().DeserializeLegacyV1(serialization.NewReader(data)))
			})
		})
	}
}

func TestQuery(t *testing.T) {
	c := sampleCache()
	incoming := true
	outgoing := false

	assert.Len(t, c.Query(Filter{}), 3)
	assert.Len(t, c.Query(Filter{Incoming: &incoming}), 2)

	out := c.Query(Filter{Incoming: &outgoing})
	require.Len(t, out, 1)
	assert.Equal(t, uint64(1), out[0].ID)
	assert.Len(t, out[0].Transfers, 2)

	h := Hash{7}
	byHash := c.Query(Filter{Hash: &h})
	require.Len(t, byHash, 1)
	assert.True(t, byHash[0].Transaction.IsCoinbase)

	minAmount := int64(3_000_000)
	assert.Len(t, c.Query(Filter{MinAmount: &minAmount}), 2)
	maxAmount := int64(2_000_000)
	assert.Len(t, c.Query(Filter{MaxAmount: &maxAmount}), 1)

	from := time.Unix(1700000250, 0)
	assert.Len(t, c.Query(Filter{From: &from}), 2)
	to := time.Unix(1700000150, 0)
	assert.Len(t, c.Query(Filter{To: &to}), 1)

	state := StateCancelled
	assert.Len(t, c.Query(Filter{State: &state}), 1)
}

func TestQueryExtremeAmount(t *testing.T) {
	c := New()
	c.AddTransaction(Transaction{TotalAmount: math.MinInt64})

	minAmount := int64(math.MaxInt64)
	assert.Len(t, c.Query(Filter{MinAmount: &minAmount}), 1)
	maxAmount := int64(1)
	assert.Empty(t, c.Query(Filter{MaxAmount: &maxAmount}))
}

func TestParseState(t *testing.T) {
	for st := StateActive; st < stateCount; st++ {
		got, err := ParseState(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	_, err := ParseState("PENDING")
	assert.ErrorIs(t, err, ErrUnknownState)
}
