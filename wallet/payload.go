package wallet

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/legacy-wallet/internal/crypto"
	"github.com/AlexZinkM/legacy-wallet/internal/history"
	"github.com/AlexZinkM/legacy-wallet/internal/model"
	"github.com/AlexZinkM/legacy-wallet/internal/serialization"
)

// envelope is the outer, unencrypted part of a wallet file
type envelope struct {
	Version uint32
	IV      crypto.IV
	Data    []byte
}

func writeEnvelope(w *serialization.Writer, env *envelope) error {
	if err := w.BeginObject("wallet"); err != nil {
		return err
	}
	if err := w.Uint32(env.Version, "version"); err != nil {
		return err
	}
	if err := w.Pod(env.IV[:], "iv"); err != nil {
		return err
	}
	if err := w.Blob(env.Data, "data"); err != nil {
		return err
	}
	return w.EndObject()
}

func readEnvelope(r *serialization.Reader) (*envelope, error) {
	var env envelope
	if err := r.BeginObject("wallet"); err != nil {
		return nil, err
	}

	var err error
	if env.Version, err = r.Uint32("version"); err != nil {
		return nil, err
	}
	if err = r.Pod(env.IV[:], "iv"); err != nil {
		return nil, err
	}
	if env.Data, err = r.Blob("data"); err != nil {
		return nil, err
	}
	if err = r.EndObject(); err != nil {
		return nil, err
	}
	return &env, nil
}

// writePayload writes the plaintext: keys, has_details, the history when
// saveDetailed is set, then the cache blob.
func writePayload(w *serialization.Writer, acc Account, saveDetailed bool, txs *history.Cache, cache []byte) error {
	keys := model.NewKeysStorage(acc.AccountKeys(), acc.CreateTime())
	defer wipeStorage(&keys)

	if err := writeKeys(w, &keys); err != nil {
		return fmt.Errorf("failed to write keys: %w", err)
	}
	if err := w.Bool(saveDetailed, "has_details"); err != nil {
		return err
	}
	if saveDetailed {
		if txs == nil {
			txs = history.New()
		}
		if err := txs.Serialize(w); err != nil {
			return fmt.Errorf("failed to write details: %w", err)
		}
	}
	return w.Blob(cache, "cache")
}

func writeKeys(w *serialization.Writer, keys *model.KeysStorage) error {
	if err := w.BeginObject("keys"); err != nil {
		return err
	}
	if err := w.Uint64(keys.CreationTimestamp, "creation_timestamp"); err != nil {
		return err
	}
	if err := w.Pod(keys.SpendPublicKey[:], "spend_public_key"); err != nil {
		return err
	}
	if err := w.Pod(keys.SpendSecretKey[:], "spend_secret_key"); err != nil {
		return err
	}
	if err := w.Pod(keys.ViewPublicKey[:], "view_public_key"); err != nil {
		return err
	}
	if err := w.Pod(keys.ViewSecretKey[:], "view_secret_key"); err != nil {
		return err
	}
	return w.EndObject()
}

func readKeys(r *serialization.Reader) (keys model.KeysStorage, err error) {
	if err = r.BeginObject("keys"); err != nil {
		return keys, err
	}
	if keys.CreationTimestamp, err = r.Uint64("creation_timestamp"); err != nil {
		return keys, err
	}
	if err = r.Pod(keys.SpendPublicKey[:], "spend_public_key"); err != nil {
		return keys, err
	}
	if err = r.Pod(keys.SpendSecretKey[:], "spend_secret_key"); err != nil {
		return keys, err
	}
	if err = r.Pod(keys.ViewPublicKey[:], "view_public_key"); err != nil {
		return keys, err
	}
	if err = r.Pod(keys.ViewSecretKey[:], "view_secret_key"); err != nil {
		return keys, err
	}
	return keys, r.EndObject()
}

// readPayload decodes and verifies a decrypted payload. Keys are checked
// before anything after them is read.
func readPayload(r *serialization.Reader, version uint32) (*Result, error) {
	stored, err := readKeys(r)
	defer wipeStorage(&stored)
	if err != nil {
		// the layout of the key block is fixed, so a short read means the
		// bytes were decrypted with the wrong key
		return nil, ErrWrongPassword
	}

	keys := stored.AccountKeys()
	if err := verifyKeys(&keys); err != nil {
		keys.Wipe()
		return nil, err
	}

	res := &Result{
		Keys:              keys,
		CreationTimestamp: stored.CreationTimestamp,
		Version:           version,
		History:           history.New(),
	}

	if res.HasDetails, err = r.Bool("has_details"); err != nil {
		res.Wipe()
		return nil, corrupted(err)
	}
	if res.HasDetails {
		if err := formatOf(version).decodeDetails(r, res.History); err != nil {
			res.Wipe()
			return nil, corrupted(fmt.Errorf("%s history: %w", formatOf(version), err))
		}
	}
	if res.Cache, err = r.Blob("cache"); err != nil {
		res.Wipe()
		return nil, corrupted(err)
	}
	return res, nil
}

func corrupted(err error) error {
	return errors.Join(ErrCorruptedDetails, err)
}

func wipeStorage(s *model.KeysStorage) {
	clear(s.SpendSecretKey[:])
	clear(s.ViewSecretKey[:])
}
