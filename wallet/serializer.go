// Package wallet reads and writes encrypted wallet files.
//
// A wallet file is a versioned envelope around a ChaCha8 ciphertext. The
// plaintext holds the account keys, an optional transaction history and an
// opaque cache blob. There is no MAC: a password is accepted when the
// decrypted keys are consistent with each other.
package wallet

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/AlexZinkM/legacy-wallet/internal/crypto"
	"github.com/AlexZinkM/legacy-wallet/internal/history"
	"github.com/AlexZinkM/legacy-wallet/internal/model"
	"github.com/AlexZinkM/legacy-wallet/internal/serialization"
)

// Account is the identity that is stored in and restored from a wallet
// file. *account.Account implements it.
type Account interface {
	AccountKeys() model.AccountKeys
	SetAccountKeys(keys model.AccountKeys)
	CreateTime() uint64
	SetCreateTime(ts uint64)
}

// Result is a decrypted and verified wallet file.
type Result struct {
	Keys              model.AccountKeys
	CreationTimestamp uint64
	// Version is the envelope version the file was written with
	Version    uint32
	HasDetails bool
	// History is empty when HasDetails is false
	History *history.Cache
	Cache   []byte
}

// ApplyTo commits the recovered keys and creation time to acc.
func (r *Result) ApplyTo(acc Account) {
	acc.SetAccountKeys(r.Keys)
	acc.SetCreateTime(r.CreationTimestamp)
}

// IsLegacy reports whether the file used a layout writers no longer emit.
func (r *Result) IsLegacy() bool {
	return formatOf(r.Version) != formatCurrent
}

// Wipe zeroes the secret keys held by the result.
func (r *Result) Wipe() {
	r.Keys.Wipe()
}

// Serializer converts wallets to and from their encrypted file form.
// A Serializer holds no per-wallet state and is safe for concurrent use;
// the accounts and streams passed to it are not.
type Serializer struct {
	kdf crypto.KDFParams
	log *zap.Logger
}

// NewSerializer creates a Serializer deriving keys with kdf.
// log may be nil.
func NewSerializer(kdf crypto.KDFParams, log *zap.Logger) (*Serializer, error) {
	if err := kdf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid key derivation parameters: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Serializer{kdf: kdf, log: log}, nil
}

type flusher interface {
	Flush() error
}

// Serialize encrypts the account keys, the history (when saveDetailed is
// set) and cache under password and writes the result to w. The payload is
// assembled in memory before anything is written; a failed write leaves a
// truncated stream that the caller must discard.
// password must be []byte for security (caller should zero it after use)
func (s *Serializer) Serialize(w io.Writer, acc Account, saveDetailed bool, txs *history.Cache, cache []byte, password []byte) error {
	var plain bytes.Buffer
	defer func() { clear(plain.Bytes()) }()

	if err := writePayload(serialization.NewWriter(&plain), acc, saveDetailed, txs, cache); err != nil {
		return fmt.Errorf("failed to build wallet payload: %w", err)
	}

	key, err := crypto.DeriveKey(password, s.kdf)
	if err != nil {
		return err
	}
	defer key.Wipe()

	iv, ciphertext, err := crypto.Encrypt(plain.Bytes(), key)
	if err != nil {
		return fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	out := serialization.NewWriter(w)
	env := envelope{Version: CurrentVersion, IV: iv, Data: ciphertext}
	if err := writeEnvelope(out, &env); err != nil {
		return fmt.Errorf("failed to write wallet: %w", err)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("failed to flush wallet: %w", err)
		}
	}

	s.log.Debug("wallet serialized",
		zap.Uint32("version", CurrentVersion),
		zap.Bool("has_details", saveDetailed),
		zap.Int("payload_size", len(ciphertext)),
		zap.Int("file_size", out.Written()),
	)
	return nil
}

// Deserialize reads a wallet from r and decrypts it with password.
// Nothing outside the returned Result is modified.
// password must be []byte for security (caller should zero it after use)
func (s *Serializer) Deserialize(r io.Reader, password []byte) (*Result, error) {
	in, err := serialization.ReadFrom(r)
	if err != nil {
		return nil, err
	}

	env, err := readEnvelope(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	if in.Remaining() > 0 {
		s.log.Debug("ignoring trailing bytes after wallet envelope", zap.Int("size", in.Remaining()))
	}

	key, err := crypto.DeriveKey(password, s.kdf)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	plain := crypto.Decrypt(env.Data, key, env.IV)
	defer clear(plain)

	res, err := readPayload(serialization.NewReader(plain), env.Version)
	if err != nil {
		s.log.Debug("wallet rejected",
			zap.Uint32("version", env.Version),
			zap.Int("payload_size", len(plain)),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Debug("wallet deserialized",
		zap.Uint32("version", env.Version),
		zap.Stringer("format", formatOf(env.Version)),
		zap.Bool("has_details", res.HasDetails),
		zap.Int("transactions", res.History.TransactionCount()),
	)
	return res, nil
}

// DeserializeInto reads a wallet like Deserialize and, only when the whole
// file decoded and verified, stores the keys and creation time in acc and
// the history in txs. txs is left alone when the file has no details.
func (s *Serializer) DeserializeInto(r io.Reader, password []byte, acc Account, txs *history.Cache) (hasDetails bool, cache []byte, err error) {
	res, err := s.Deserialize(r, password)
	if err != nil {
		return false, nil, err
	}
	defer res.Wipe()

	res.ApplyTo(acc)
	if res.HasDetails && txs != nil {
		txs.Replace(res.History)
	}
	return res.HasDetails, res.Cache, nil
}
