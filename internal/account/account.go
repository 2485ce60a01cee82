// Package account holds the in-memory identity of a wallet: its key pairs
// and creation time.
package account

import (
	"time"

	"github.com/AlexZinkM/legacy-wallet/internal/model"
)

// Account is not safe for concurrent use.
type Account struct {
	keys       model.AccountKeys
	createTime uint64
}

// New creates an account from existing keys
func New(keys model.AccountKeys, createTime uint64) *Account {
	return &Account{keys: keys, createTime: createTime}
}

func (a *Account) AccountKeys() model.AccountKeys {
	return a.keys
}

func (a *Account) SetAccountKeys(keys model.AccountKeys) {
	a.keys = keys
}

// CreateTime returns the creation timestamp in unix seconds.
func (a *Account) CreateTime() uint64 {
	return a.createTime
}

func (a *Account) SetCreateTime(ts uint64) {
	a.createTime = ts
}

// CreatedAt returns the creation time as a time.Time in UTC.
func (a *Account) CreatedAt() time.Time {
	return time.Unix(int64(a.createTime), 0).UTC()
}

func (a *Account) IsWatchOnly() bool {
	return a.keys.IsWatchOnly()
}

// Wipe zeroes the secret keys held by the account.
func (a *Account) Wipe() {
	a.keys.Wipe()
}
