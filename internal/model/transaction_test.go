package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestLogRequestValidate(t *testing.T) {
	now := time.Now()
	hash := strings.Repeat("ab", KeySize)

	tests := []struct {
		name    string
		req     LogRequest
		wantErr bool
	}{
		{"empty", LogRequest{}, false},
		{"debit", LogRequest{Type: ptr(TransactionTypeDebit)}, false},
		{"unknown type", LogRequest{Type: ptr(TransactionType("SWAP"))}, true},
		{"hash", LogRequest{TxHash: &hash}, false},
		{"short hash", LogRequest{TxHash: ptr("abcd")}, true},
		{"dates in order", LogRequest{From: &now, To: ptr(now.Add(time.Hour))}, false},
		{"dates reversed", LogRequest{From: &now, To: ptr(now.Add(-time.Hour))}, true},
		{"amount range", LogRequest{MinAmount: ptr("0.5"), MaxAmount: ptr("1")}, false},
		{"amount range reversed", LogRequest{MinAmount: ptr("2"), MaxAmount: ptr("1")}, true},
		{"bad amount", LogRequest{MinAmount: ptr("one")}, true},
		{"negative amount", LogRequest{MaxAmount: ptr("-1")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(12)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
