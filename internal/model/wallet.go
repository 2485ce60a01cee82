package model

import "encoding/hex"

// KeySize is the width of every public and secret curve key
const KeySize = 32

// PublicKey is a compressed curve point
type PublicKey [KeySize]byte

// SecretKey is a little-endian scalar
type SecretKey [KeySize]byte

// NullSecretKey marks a missing spend secret (watch-only wallet)
var NullSecretKey SecretKey

func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

// IsNull reports whether k is the all-zero sentinel.
func (k SecretKey) IsNull() bool {
	return k == NullSecretKey
}

// AccountKeys holds both key pairs of an account
type AccountKeys struct {
	SpendPublicKey PublicKey
	SpendSecretKey SecretKey
	ViewPublicKey  PublicKey
	ViewSecretKey  SecretKey
}

// IsWatchOnly reports whether the spend secret is absent.
func (k *AccountKeys) IsWatchOnly() bool {
	return k.SpendSecretKey.IsNull()
}

// Wipe zeroes both secret keys in place.
func (k *AccountKeys) Wipe() {
	clear(k.SpendSecretKey[:])
	clear(k.ViewSecretKey[:])
}

// KeysStorage is the on-disk record of an account's keys.
// Field order is the wire order.
type KeysStorage struct {
	CreationTimestamp uint64
	SpendPublicKey    PublicKey
	SpendSecretKey    SecretKey
	ViewPublicKey     PublicKey
	ViewSecretKey     SecretKey
}

// NewKeysStorage builds the on-disk record from account keys and creation time
func NewKeysStorage(keys AccountKeys, creationTimestamp uint64) KeysStorage {
	return KeysStorage{
		CreationTimestamp: creationTimestamp,
		SpendPublicKey:    keys.SpendPublicKey,
		SpendSecretKey:    keys.SpendSecretKey,
		ViewPublicKey:     keys.ViewPublicKey,
		ViewSecretKey:     keys.ViewSecretKey,
	}
}

// AccountKeys returns the key pairs held by the record
func (s *KeysStorage) AccountKeys() AccountKeys {
	return AccountKeys{
		SpendPublicKey: s.SpendPublicKey,
		SpendSecretKey: s.SpendSecretKey,
		ViewPublicKey:  s.ViewPublicKey,
		ViewSecretKey:  s.ViewSecretKey,
	}
}

// KeysResponse represents response for GET /wallet/keys
type KeysResponse struct {
	SpendPublicKey       string `json:"spendPublicKey"`
	SpendPublicKeyBase58 string `json:"spendPublicKeyBase58"`
	ViewPublicKey        string `json:"viewPublicKey"`
	ViewPublicKeyBase58  string `json:"viewPublicKeyBase58"`
	WatchOnly            bool   `json:"watchOnly"`
	CreatedAt            string `json:"createdAt"`
	FileVersion          uint32 `json:"fileVersion"`
}

// SaveResponse represents response for POST /wallet/save
type SaveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Version uint32 `json:"version"`
}
