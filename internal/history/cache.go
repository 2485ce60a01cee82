// Package history keeps a wallet's user-visible transaction history:
// transactions, the transfers they carry and outgoing transfers that are
// not yet confirmed.
package history

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
)

// HashSize is the width of a transaction hash
const HashSize = 32

// InvalidID marks a transaction without transfers
const InvalidID = math.MaxUint64

var (
	ErrUnknownState = errors.New("unknown transaction state")
	ErrInconsistent = errors.New("transaction references missing transfers")
)

// Hash identifies a transaction on chain
type Hash [HashSize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// TransactionState is the lifecycle state of a wallet transaction
type TransactionState uint8

const (
	StateActive TransactionState = iota
	StateDeleted
	StateSending
	StateCancelled
	StateFailed
	stateCount
)

func (s TransactionState) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateDeleted:
		return "DELETED"
	case StateSending:
		return "SENDING"
	case StateCancelled:
		return "CANCELLED"
	case StateFailed:
		return "FAILED"
	}
	return "UNKNOWN"
}

// ParseState is the inverse of TransactionState.String
func ParseState(s string) (TransactionState, error) {
	for st := StateActive; st < stateCount; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownState, s)
}

// Transaction is one wallet transaction. TotalAmount is negative for
// outgoing transactions.
type Transaction struct {
	FirstTransferID uint64
	TransferCount   uint64
	TotalAmount     int64
	Fee             uint64
	SentTime        uint64
	UnlockTime      uint64
	Hash            Hash
	IsCoinbase      bool
	BlockHeight     uint32
	Timestamp       uint64
	Extra           []byte
	State           TransactionState
}

// Transfer is one destination of an outgoing transaction
type Transfer struct {
	Address string
	Amount  int64
}

// OutputID points at an output spent by an unconfirmed transfer
type OutputID struct {
	TransactionPublicKey [32]byte
	OutputInTransaction  uint32
}

// UnconfirmedTransfer tracks an outgoing transaction until it is mined
type UnconfirmedTransfer struct {
	Hash          Hash
	TransactionID uint64
	Amount        uint64
	OutsAmount    uint64
	SentTime      uint64
	UsedOutputs   []OutputID
}

// Cache is the transaction history of one wallet.
// Cache is not safe for concurrent use.
type Cache struct {
	transactions []Transaction
	transfers    []Transfer
	unconfirmed  []UnconfirmedTransfer
}

// New returns an empty history
func New() *Cache {
	return &Cache{}
}

// AddTransaction appends tx together with its transfers and returns the
// transaction id. tx.FirstTransferID and tx.TransferCount are overwritten.
func (c *Cache) AddTransaction(tx Transaction, transfers ...Transfer) uint64 {
	if len(transfers) == 0 {
		tx.FirstTransferID = InvalidID
		tx.TransferCount = 0
	} else {
		tx.FirstTransferID = uint64(len(c.transfers))
		tx.TransferCount = uint64(len(transfers))
		c.transfers = append(c.transfers, transfers...)
	}
	c.transactions = append(c.transactions, tx)
	return uint64(len(c.transactions) - 1)
}

// AddUnconfirmed records an outgoing transfer awaiting confirmation
func (c *Cache) AddUnconfirmed(u UnconfirmedTransfer) {
	c.unconfirmed = append(c.unconfirmed, u)
}

func (c *Cache) TransactionCount() int {
	return len(c.transactions)
}

func (c *Cache) TransferCount() int {
	return len(c.transfers)
}

// Transaction returns the transaction with the given id.
func (c *Cache) Transaction(id uint64) (Transaction, bool) {
	if id >= uint64(len(c.transactions)) {
		return Transaction{}, false
	}
	return c.transactions[id], true
}

// Transactions returns a copy of all transactions in id order
func (c *Cache) Transactions() []Transaction {
	out := make([]Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}

// Transfers returns the transfers of transaction id.
func (c *Cache) Transfers(id uint64) []Transfer {
	tx, ok := c.Transaction(id)
	if !ok || tx.FirstTransferID == InvalidID {
		return nil
	}
	out := make([]Transfer, tx.TransferCount)
	copy(out, c.transfers[tx.FirstTransferID:tx.FirstTransferID+tx.TransferCount])
	return out
}

// Unconfirmed returns a copy of the unconfirmed transfers
func (c *Cache) Unconfirmed() []UnconfirmedTransfer {
	out := make([]UnconfirmedTransfer, len(c.unconfirmed))
	copy(out, c.unconfirmed)
	return out
}

// Replace makes c hold the contents of other. other must not be used
// afterwards.
func (c *Cache) Replace(other *Cache) {
	c.transactions = other.transactions
	c.transfers = other.transfers
	c.unconfirmed = other.unconfirmed
}

func (c *Cache) checkConsistency() error {
	for _, tx := range c.transactions {
		if tx.State >= stateCount {
			return ErrUnknownState
		}
		if tx.FirstTransferID == InvalidID {
			continue
		}
		end := tx.FirstTransferID + tx.TransferCount
		if end < tx.FirstTransferID || end > uint64(len(c.transfers)) {
			return ErrInconsistent
		}
	}
	return nil
}
