package history

import (
	"fmt"

	"github.com/AlexZinkM/legacy-wallet/internal/serialization"
)

// Smallest encodings of one array element, used to bound element counts
// read from untrusted input.
const (
	minTransactionSize       = 6 + HashSize + 1 + 1 + 1 + 1 + 1
	minLegacyTransactionSize = 5 + HashSize + 1 + 1 + 1 + 1
	minTransferSize          = 2
	minOutputIDSize          = 32 + 1
	minUnconfirmedSize       = HashSize + 4 + 1
	minLegacyUnconfirmedSize = HashSize + 4
)

// Serialize writes the history in the current layout.
func (c *Cache) Serialize(w *serialization.Writer) error {
	if err := w.BeginObject("details"); err != nil {
		return err
	}

	if err := w.BeginArray(len(c.transactions), "transactions"); err != nil {
		return err
	}
	for i := range c.transactions {
		if err := writeTransaction(w, &c.transactions[i]); err != nil {
			return err
		}
	}

	if err := writeTransfers(w, c.transfers); err != nil {
		return err
	}

	if err := w.BeginArray(len(c.unconfirmed), "unconfirmed"); err != nil {
		return err
	}
	for i := range c.unconfirmed {
		if err := writeUnconfirmed(w, &c.unconfirmed[i]); err != nil {
			return err
		}
	}

	return w.EndObject()
}

// Deserialize replaces the history with one read in the current layout.
// On error the history is left unchanged.
func (c *Cache) Deserialize(r *serialization.Reader) error {
	var staged Cache
	if err := r.BeginObject("details"); err != nil {
		return err
	}

	n, err := r.BeginArray("transactions", minTransactionSize)
	if err != nil {
		return err
	}
	staged.transactions = makeTransactions(n)
	for i := range staged.transactions {
		if err := readTransaction(r, &staged.transactions[i]); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	if staged.transfers, err = readTransfers(r); err != nil {
		return err
	}

	n, err = r.BeginArray("unconfirmed", minUnconfirmedSize)
	if err != nil {
		return err
	}
	staged.unconfirmed = makeUnconfirmed(n)
	for i := range staged.unconfirmed {
		if err := readUnconfirmed(r, &staged.unconfirmed[i]); err != nil {
			return fmt.Errorf("unconfirmed transfer %d: %w", i, err)
		}
	}

	if err := r.EndObject(); err != nil {
		return err
	}
	if err := staged.checkConsistency(); err != nil {
		return err
	}

	c.Replace(&staged)
	return nil
}

// DeserializeLegacyV1 replaces the history with one read in the version 1
// layout, which has no unlock time or state per transaction and no spent
// outputs per unconfirmed transfer. Legacy transactions load as active.
// On error the history is left unchanged.
func (c *Cache) DeserializeLegacyV1(r *serialization.Reader) error {
	var staged Cache
	if err := r.BeginObject("details"); err != nil {
		return err
	}

	n, err := r.BeginArray("transactions", minLegacyTransactionSize)
	if err != nil {
		return err
	}
	staged.transactions = makeTransactions(n)
	for i := range staged.transactions {
		if err := readLegacyTransaction(r, &staged.transactions[i]); err != nil {
			return fmt.Errorf("legacy transaction %d: %w", i, err)
		}
	}

	if staged.transfers, err = readTransfers(r); err != nil {
		return err
	}

	n, err = r.BeginArray("unconfirmed", minLegacyUnconfirmedSize)
	if err != nil {
		return err
	}
	staged.unconfirmed = makeUnconfirmed(n)
	for i := range staged.unconfirmed {
		if err := readLegacyUnconfirmed(r, &staged.unconfirmed[i]); err != nil {
			return fmt.Errorf("legacy unconfirmed transfer %d: %w", i, err)
		}
	}

	if err := r.EndObject(); err != nil {
		return err
	}
	if err := staged.checkConsistency(); err != nil {
		return err
	}

	c.Replace(&staged)
	return nil
}

// SerializeLegacyV1 writes the history in the version 1 layout. Wallet
// writers never emit it; it exists to produce fixtures for old files.
func (c *Cache) SerializeLegacyV1(w *serialization.Writer) error {
	if err := w.BeginArray(len(c.transactions), "transactions"); err != nil {
		return err
	}
	for i := range c.transactions {
		if err := writeLegacyTransaction(w, &c.transactions[i]); err != nil {
			return err
		}
	}

	if err := writeTransfers(w, c.transfers); err != nil {
		return err
	}

	if err := w.BeginArray(len(c.unconfirmed), "unconfirmed"); err != nil {
		return err
	}
	for i := range c.unconfirmed {
		if err := writeLegacyUnconfirmed(w, &c.unconfirmed[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeTransaction(w *serialization.Writer, tx *Transaction) error {
	if err := writeTransactionHead(w, tx); err != nil {
		return err
	}
	if err := w.Uint64(tx.UnlockTime, "unlock_time"); err != nil {
		return err
	}
	if err := writeTransactionTail(w, tx); err != nil {
		return err
	}
	return w.Uint8(uint8(tx.State), "state")
}

func writeLegacyTransaction(w *serialization.Writer, tx *Transaction) error {
	if err := writeTransactionHead(w, tx); err != nil {
		return err
	}
	return writeTransactionTail(w, tx)
}

func writeTransactionHead(w *serialization.Writer, tx *Transaction) error {
	if err := w.Uint64(tx.FirstTransferID, "first_transfer_id"); err != nil {
		return err
	}
	if err := w.Uint64(tx.TransferCount, "transfer_count"); err != nil {
		return err
	}
	if err := w.Int64(tx.TotalAmount, "total_amount"); err != nil {
		return err
	}
	if err := w.Uint64(tx.Fee, "fee"); err != nil {
		return err
	}
	return w.Uint64(tx.SentTime, "sent_time")
}

func writeTransactionTail(w *serialization.Writer, tx *Transaction) error {
	if err := w.Pod(tx.Hash[:], "hash"); err != nil {
		return err
	}
	if err := w.Bool(tx.IsCoinbase, "is_coinbase"); err != nil {
		return err
	}
	if err := w.Uint32(tx.BlockHeight, "block_height"); err != nil {
		return err
	}
	if err := w.Uint64(tx.Timestamp, "timestamp"); err != nil {
		return err
	}
	return w.Blob(tx.Extra, "extra")
}

func readTransaction(r *serialization.Reader, tx *Transaction) (err error) {
	if err = readTransactionHead(r, tx); err != nil {
		return err
	}
	if tx.UnlockTime, err = r.Uint64("unlock_time"); err != nil {
		return err
	}
	if err = readTransactionTail(r, tx); err != nil {
		return err
	}
	state, err := r.Uint8("state")
	if err != nil {
		return err
	}
	if TransactionState(state) >= stateCount {
		return fmt.Errorf("state %d: %w", state, ErrUnknownState)
	}
	tx.State = TransactionState(state)
	return nil
}

func readLegacyTransaction(r *serialization.Reader, tx *Transaction) error {
	if err := readTransactionHead(r, tx); err != nil {
		return err
	}
	if err := readTransactionTail(r, tx); err != nil {
		return err
	}
	tx.UnlockTime = 0
	tx.State = StateActive
	return nil
}

func readTransactionHead(r *serialization.Reader, tx *Transaction) (err error) {
	if tx.FirstTransferID, err = r.Uint64("first_transfer_id"); err != nil {
		return err
	}
	if tx.TransferCount, err = r.Uint64("transfer_count"); err != nil {
		return err
	}
	if tx.TotalAmount, err = r.Int64("total_amount"); err != nil {
		return err
	}
	if tx.Fee, err = r.Uint64("fee"); err != nil {
		return err
	}
	tx.SentTime, err = r.Uint64("sent_time")
	return err
}

func readTransactionTail(r *serialization.Reader, tx *Transaction) (err error) {
	if err = r.Pod(tx.Hash[:], "hash"); err != nil {
		return err
	}
	if tx.IsCoinbase, err = r.Bool("is_coinbase"); err != nil {
		return err
	}
	if tx.BlockHeight, err = r.Uint32("block_height"); err != nil {
		return err
	}
	if tx.Timestamp, err = r.Uint64("timestamp"); err != nil {
		return err
	}
	tx.Extra, err = r.Blob("extra")
	return err
}

func writeTransfers(w *serialization.Writer, transfers []Transfer) error {
	if err := w.BeginArray(len(transfers), "transfers"); err != nil {
		return err
	}
	for _, t := range transfers {
		if err := w.String(t.Address, "address"); err != nil {
			return err
		}
		if err := w.Int64(t.Amount, "amount"); err != nil {
			return err
		}
	}
	return nil
}

func readTransfers(r *serialization.Reader) ([]Transfer, error) {
	n, err := r.BeginArray("transfers", minTransferSize)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	transfers := make([]Transfer, n)
	for i := range transfers {
		if transfers[i].Address, err = r.String("address"); err != nil {
			return nil, fmt.Errorf("transfer %d: %w", i, err)
		}
		if transfers[i].Amount, err = r.Int64("amount"); err != nil {
			return nil, fmt.Errorf("transfer %d: %w", i, err)
		}
	}
	return transfers, nil
}

func writeUnconfirmed(w *serialization.Writer, u *UnconfirmedTransfer) error {
	if err := writeLegacyUnconfirmed(w, u); err != nil {
		return err
	}
	if err := w.BeginArray(len(u.UsedOutputs), "used_outputs"); err != nil {
		return err
	}
	for _, out := range u.UsedOutputs {
		if err := w.Pod(out.TransactionPublicKey[:], "transaction_public_key"); err != nil {
			return err
		}
		if err := w.Uint32(out.OutputInTransaction, "output_in_transaction"); err != nil {
			return err
		}
	}
	return nil
}

func writeLegacyUnconfirmed(w *serialization.Writer, u *UnconfirmedTransfer) error {
	if err := w.Pod(u.Hash[:], "hash"); err != nil {
		return err
	}
	if err := w.Uint64(u.TransactionID, "transaction_id"); err != nil {
		return err
	}
	if err := w.Uint64(u.Amount, "amount"); err != nil {
		return err
	}
	if err := w.Uint64(u.OutsAmount, "outs_amount"); err != nil {
		return err
	}
	return w.Uint64(u.SentTime, "sent_time")
}

func readUnconfirmed(r *serialization.Reader, u *UnconfirmedTransfer) error {
	if err := readLegacyUnconfirmed(r, u); err != nil {
		return err
	}
	n, err := r.BeginArray("used_outputs", minOutputIDSize)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	u.UsedOutputs = make([]OutputID, n)
	for i := range u.UsedOutputs {
		if err := r.Pod(u.UsedOutputs[i].TransactionPublicKey[:], "transaction_public_key"); err != nil {
			return err
		}
		if u.UsedOutputs[i].OutputInTransaction, err = r.Uint32("output_in_transaction"); err != nil {
			return err
		}
	}
	return nil
}

func readLegacyUnconfirmed(r *serialization.Reader, u *UnconfirmedTransfer) (err error) {
	if err = r.Pod(u.Hash[:], "hash"); err != nil {
		return err
	}
	if u.TransactionID, err = r.Uint64("transaction_id"); err != nil {
		return err
	}
	if u.Amount, err = r.Uint64("amount"); err != nil {
		return err
	}
	if u.OutsAmount, err = r.Uint64("outs_amount"); err != nil {
		return err
	}
	u.SentTime, err = r.Uint64("sent_time")
	return err
}

func makeTransactions(n int) []Transaction {
	if n == 0 {
		return nil
	}
	return make([]Transaction, n)
}

func makeUnconfirmed(n int) []UnconfirmedTransfer {
	if n == 0 {
		return nil
	}
	return make([]UnconfirmedTransfer, n)
}
