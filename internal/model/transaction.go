package model

import (
	"fmt"
	"time"

	"github.com/AlexZinkM/legacy-wallet/internal/common"
)

// TransactionType transaction type
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// Transfer is one destination of an outgoing transaction
type Transfer struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

// Transaction represents a transaction from the wallet history
type Transaction struct {
	ID          uint64          `json:"id"`
	Type        TransactionType `json:"type"`
	TxHash      string          `json:"txHash"`
	Amount      string          `json:"amount"`
	Fee         string          `json:"fee"`
	Timestamp   time.Time       `json:"timestamp"`
	BlockNumber uint32          `json:"blockNumber"`
	UnlockTime  uint64          `json:"unlockTime"`
	IsCoinbase  bool            `json:"isCoinbase"`
	Status      string          `json:"status"`
	Transfers   []Transfer      `json:"transfers,omitempty"`
}

// UnconfirmedTransfer represents an outgoing transfer awaiting confirmation
type UnconfirmedTransfer struct {
	TxHash        string    `json:"txHash"`
	TransactionID uint64    `json:"transactionId"`
	Amount        string    `json:"amount"`
	SentTime      time.Time `json:"sentTime"`
	UsedOutputs   int       `json:"usedOutputs"`
}

// LogResponse represents response for GET /wallet/transactions
type LogResponse struct {
	HasDetails   bool                  `json:"hasDetails"`
	TotalIncome  string                `json:"totalIncome"`
	TotalSpent   string                `json:"totalSpent"`
	Transactions []Transaction         `json:"transactions"`
	Unconfirmed  []UnconfirmedTransfer `json:"unconfirmed"`
}

// LogRequest represents request parameters for GET /wallet/transactions
type LogRequest struct {
	Type      *TransactionType `form:"type"`
	TxHash    *string          `form:"txHash"`
	From      *time.Time       `form:"from"`
	To        *time.Time       `form:"to"`
	MinAmount *string          `form:"minAmount"`
	MaxAmount *string          `form:"maxAmount"`
	Status    *string          `form:"status"`
}

// Validate validates LogRequest filter parameters.
func (r *LogRequest) Validate(decimals int) error {
	if r.Type != nil && *r.Type != TransactionTypeDebit && *r.Type != TransactionTypeCredit {
		return fmt.Errorf("type must be DEBIT or CREDIT")
	}
	if r.TxHash != nil && len(*r.TxHash) != 2*KeySize {
		return fmt.Errorf("txHash must be %d hex characters", 2*KeySize)
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	for _, a := range []*string{r.MinAmount, r.MaxAmount} {
		if a == nil {
			continue
		}
		v, err := common.ParseAmount(*a, decimals)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		if v < 0 {
			return fmt.Errorf("amounts must not be negative")
		}
	}
	if r.MinAmount != nil && r.MaxAmount != nil {
		cmp, err := common.CompareAmounts(*r.MinAmount, *r.MaxAmount, decimals)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		if cmp == 1 {
			return fmt.Errorf("minAmount must be less than or equal to maxAmount")
		}
	}
	return nil
}
