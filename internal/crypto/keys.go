package crypto

import (
	"crypto/subtle"

	"filippo.io/edwards25519"

	"github.com/AlexZinkM/legacy-wallet/internal/model"
)

// CheckKey reports whether pub decodes to a point on the curve.
func CheckKey(pub model.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(pub[:])
	return err == nil
}

// SecretKeyToPublicKey returns sec·G. ok is false when sec is not a
// canonical scalar.
func SecretKeyToPublicKey(sec model.SecretKey) (pub model.PublicKey, ok bool) {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(sec[:])
	if err != nil {
		return pub, false
	}
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(s).Bytes())
	return pub, true
}

// KeysMatch reports whether pub is the public key of sec.
func KeysMatch(sec model.SecretKey, pub model.PublicKey) bool {
	derived, ok := SecretKeyToPublicKey(sec)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(derived[:], pub[:]) == 1
}
