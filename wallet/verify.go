package wallet

import (
	"github.com/AlexZinkM/legacy-wallet/internal/crypto"
	"github.com/AlexZinkM/legacy-wallet/internal/model"
)

// verifyKeys checks that decrypted keys are consistent. A watch-only
// wallet has no spend secret, so its spend public key only has to be a
// valid point. That check is weaker and a corrupted file can pass it.
func verifyKeys(keys *model.AccountKeys) error {
	if !crypto.KeysMatch(keys.ViewSecretKey, keys.ViewPublicKey) {
		return ErrWrongPassword
	}

	if keys.SpendSecretKey.IsNull() {
		if !crypto.CheckKey(keys.SpendPublicKey) {
			return ErrWrongPassword
		}
		return nil
	}

	if !crypto.KeysMatch(keys.SpendSecretKey, keys.SpendPublicKey) {
		return ErrWrongPassword
	}
	return nil
}
