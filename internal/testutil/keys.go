// Package testutil holds fixtures shared by tests across packages.
package testutil

import (
	"crypto/rand"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/legacy-wallet/internal/crypto"
	"github.com/AlexZinkM/legacy-wallet/internal/model"
)

// FastKDF returns scrypt parameters cheap enough for unit tests.
func FastKDF() crypto.KDFParams {
	return crypto.KDFParams{N: 16, R: 1, P: 1, AllowUnsafe: true}
}

// NewKeyPair returns a random secret key and its public key.
func NewKeyPair(t testing.TB) (model.SecretKey, model.PublicKey) {
	t.Helper()

	seed := make([]byte, 64)
	_, err := rand.Read(seed)
	require.NoError(t, err)

	s, err := edwards25519.NewScalar().SetUniformBytes(seed)
	require.NoError(t, err)

	var sec model.SecretKey
	var pub model.PublicKey
	copy(sec[:], s.Bytes())
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(s).Bytes())
	return sec, pub
}

// NewAccountKeys returns a full (spendable) set of account keys.
func NewAccountKeys(t testing.TB) model.AccountKeys {
	t.Helper()

	spendSec, spendPub := NewKeyPair(t)
	viewSec, viewPub := NewKeyPair(t)
	return model.AccountKeys{
		SpendPublicKey: spendPub,
		SpendSecretKey: spendSec,
		ViewPublicKey:  viewPub,
		ViewSecretKey:  viewSec,
	}
}

// NewWatchOnlyKeys returns account keys without a spend secret.
func NewWatchOnlyKeys(t testing.TB) model.AccountKeys {
	t.Helper()

	keys := NewAccountKeys(t)
	keys.SpendSecretKey = model.NullSecretKey
	return keys
}

// InvalidPublicKey returns 32 bytes that do not decode to a curve point.
func InvalidPublicKey(t testing.TB) model.PublicKey {
	t.Helper()

	var pub model.PublicKey
	for i := 0; i < 256; i++ {
		pub[0] = byte(i)
		pub[1] = 0x5a
		if !crypto.CheckKey(pub) {
			return pub
		}
	}
	t.Fatal("no invalid point encoding found")
	return pub
}
