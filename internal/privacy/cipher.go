// Package privacy implements the reversible field cipher for
// personally-identifying values. Values are protected with a key scoped to
// the current OS user; outside that context, or when anything about a stored
// value fails to decode, reads degrade to returning the stored text
// unchanged. The gateway therefore cannot tell legacy plaintext apart from
// corrupted ciphertext; both come back as-is. That tolerance is a
// compatibility contract, not a bug to fix: flag it before bolting on
// authenticity failures that would surface loudly where the system today
// degrades quietly.
package privacy

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/motorbill/motorbill/internal/observability/metrics"
)

const nonceSize = 12

// Cipher encrypts and tolerantly decrypts field values. A nil-key Cipher
// passes everything through as plaintext, which keeps tests and installs
// without a key file working; the degradation is counted, not hidden.
type Cipher struct {
	key     []byte
	metrics *metrics.Metrics
}

// NewCipher builds a Cipher over a 32-byte AES key. An empty key yields a
// passthrough cipher.
func NewCipher(key []byte, m *metrics.Metrics) *Cipher {
	if len(key) == 0 {
		return &Cipher{metrics: m}
	}
	return &Cipher{key: key, metrics: m}
}

// NewPassthrough returns a cipher with no key; Encrypt and Decrypt are
// identity functions.
func NewPassthrough() *Cipher {
	return &Cipher{}
}

// Enabled reports whether a protection key is present.
func (c *Cipher) Enabled() bool {
	return len(c.key) != 0
}

// Encrypt protects a field value. Blank input passes through unchanged, as
// does any input when no key is available.
func (c *Cipher) Encrypt(plaintext string) string {
	if strings.TrimSpace(plaintext) == "" {
		return plaintext
	}
	if !c.Enabled() {
		c.count("encrypt")
		return plaintext
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		c.count("encrypt")
		return plaintext
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		c.count("encrypt")
		return plaintext
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		c.count("encrypt")
		return plaintext
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed)
}

// Decrypt reverses Encrypt. It never fails: blank input, missing key, bad
// base64, a short payload, or a ciphertext produced under another key all
// return the input unchanged. Legacy plaintext rows are absorbed by the same
// path with no special-casing at read time.
func (c *Cipher) Decrypt(stored string) string {
	if strings.TrimSpace(stored) == "" {
		return stored
	}
	if !c.Enabled() {
		return stored
	}

	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		c.count("decrypt")
		return stored
	}
	if len(raw) <= nonceSize {
		c.count("decrypt")
		return stored
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		c.count("decrypt")
		return stored
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		c.count("decrypt")
		return stored
	}

	plain, err := gcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		c.count("decrypt")
		return stored
	}
	return string(plain)
}

func (c *Cipher) count(op string) {
	if c.metrics != nil {
		c.metrics.CipherPassthrough.WithLabelValues(op).Inc()
	}
}
