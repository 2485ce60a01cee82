package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/aead/chacha20/chacha"
	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for wallet files
	// Security is prioritized over performance
	//
	// N=2^18 (~256MB RAM, 0.5-2s) works on phones and desktops alike while
	// keeping brute-force attacks expensive.
	DefaultScryptN = 1 << 18
	DefaultScryptR = 8
	DefaultScryptP = 1

	// minSafeScryptN is the lowest N accepted without AllowUnsafe
	minSafeScryptN = 1 << 14

	KeySize = chacha.KeySize
	IVSize  = chacha.NonceSize

	// ChaCha8: 8 rounds over a 64-bit nonce
	chachaRounds = 8
)

// The file format stores no salt, so every password maps to one key.
var kdfSalt = []byte("legacy-wallet chacha8 key")

var ErrWeakKDFParams = errors.New("scrypt parameters below the safe minimum")

// Key is a symmetric ChaCha8 key
type Key [KeySize]byte

// IV is the per-write ChaCha8 nonce
type IV [IVSize]byte

// Wipe zeroes the key in place.
func (k *Key) Wipe() {
	clear(k[:])
}

// KDFParams are the scrypt cost parameters
type KDFParams struct {
	N int
	R int
	P int
	// AllowUnsafe admits N below the safe minimum (tests and tooling only)
	AllowUnsafe bool
}

// DefaultKDFParams returns the production scrypt parameters
func DefaultKDFParams() KDFParams {
	return KDFParams{N: DefaultScryptN, R: DefaultScryptR, P: DefaultScryptP}
}

// Validate checks that the parameters are usable by scrypt and strong
// enough unless AllowUnsafe is set.
func (p KDFParams) Validate() error {
	if p.N <= 1 || p.N&(p.N-1) != 0 {
		return fmt.Errorf("scrypt N must be a power of two greater than 1, got %d", p.N)
	}
	if p.R <= 0 || p.P <= 0 {
		return fmt.Errorf("scrypt r and p must be positive, got r=%d p=%d", p.R, p.P)
	}
	if !p.AllowUnsafe && p.N < minSafeScryptN {
		return fmt.Errorf("%w: N=%d, minimum %d", ErrWeakKDFParams, p.N, minSafeScryptN)
	}
	return nil
}

// DeriveKey stretches password into a ChaCha8 key. The result depends on
// the password and params only.
// password must be []byte for security (caller should zero it after use)
func DeriveKey(password []byte, params KDFParams) (Key, error) {
	var key Key
	if err := params.Validate(); err != nil {
		return key, err
	}

	derived, err := scrypt.Key(password, kdfSalt, params.N, params.R, params.P, KeySize)
	if err != nil {
		return key, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(derived)

	copy(key[:], derived)
	return key, nil
}

// Encrypt runs ChaCha8 over plaintext under key and a fresh random IV.
// The ciphertext has the same length as the plaintext.
func Encrypt(plaintext []byte, key Key) (IV, []byte, error) {
	var iv IV
	if _, err := io.ReadFull(rand.Reader, iv[:]); err != nil {
		return iv, nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	ciphertext := make([]byte, len(plaintext))
	chacha.XORKeyStream(ciphertext, plaintext, iv[:], key[:], chachaRounds)
	return iv, ciphertext, nil
}
