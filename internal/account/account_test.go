package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AlexZinkM/legacy-wallet/internal/model"
)

func TestAccount(t *testing.T) {
	keys := model.AccountKeys{
		SpendPublicKey: model.PublicKey{1},
		SpendSecretKey: model.SecretKey{2},
		ViewPublicKey:  model.PublicKey{3},
		ViewSecretKey:  model.SecretKey{4},
	}
	acc := New(keys, 1700000000)

	assert.Equal(t, keys, acc.AccountKeys())
	assert.False(t, acc.IsWatchOnly())
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), acc.CreatedAt())

	keys.SpendSecretKey = model.NullSecretKey
	acc.SetAccountKeys(keys)
	acc.SetCreateTime(5)
	assert.True(t, acc.IsWatchOnly())
	assert.Equal(t, uint64(5), acc.CreateTime())

	acc.Wipe()
	got := acc.AccountKeys()
	assert.True(t, got.SpendSecretKey.IsNull())
	assert.True(t, got.ViewSecretKey.IsNull())
	assert.Equal(t, model.PublicKey{3}, got.ViewPublicKey, "public keys survive a wipe")
}
