package crypto

import "github.com/aead/chacha20/chacha"

// Decrypt reverses Encrypt. A wrong key does not fail here: it yields bytes
// unrelated to the original plaintext, which callers must detect.
func Decrypt(ciphertext []byte, key Key, iv IV) []byte {
	plaintext := make([]byte, len(ciphertext))
	chacha.XORKeyStream(plaintext, ciphertext, iv[:], key[:], chachaRounds)
	return plaintext
}
