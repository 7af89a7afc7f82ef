package privacy

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestRoundTrip(t *testing.T) {
	c := NewCipher(testKey(t), nil)

	for _, plain := range []string{"555-1234", "john@example.com", "1HGCM82633A004352", "GST-000-123"} {
		stored := c.Encrypt(plain)
		assert.NotEqual(t, plain, stored)
		assert.Equal(t, plain, c.Decrypt(stored))
	}
}

func TestEncryptBlankPassesThrough(t *testing.T) {
	c := NewCipher(testKey(t), nil)
	assert.Equal(t, "", c.Encrypt(""))
	assert.Equal(t, "   ", c.Encrypt("   "))
	assert.Equal(t, "", c.Decrypt(""))
}

func TestDecryptPlaintextPassesThrough(t *testing.T) {
	c := NewCipher(testKey(t), nil)
	// Never encrypted; not valid base64.
	assert.Equal(t, "plain-unencrypted-value", c.Decrypt("plain-unencrypted-value"))
	// Valid base64 but not a sealed payload.
	assert.Equal(t, "aGVsbG8=", c.Decrypt("aGVsbG8="))
}

func TestDecryptUnderWrongKeyPassesThrough(t *testing.T) {
	writer := NewCipher(testKey(t), nil)
	reader := NewCipher(testKey(t), nil)

	stored := writer.Encrypt("604-555-0100")
	// Wrong key: the tolerant contract hands back the stored text untouched
	// instead of failing the read.
	assert.Equal(t, stored, reader.Decrypt(stored))
	assert.Equal(t, "604-555-0100", writer.Decrypt(stored))
}

func TestPassthroughCipher(t *testing.T) {
	c := NewPassthrough()
	assert.False(t, c.Enabled())
	assert.Equal(t, "604-555-0100", c.Encrypt("604-555-0100"))
	assert.Equal(t, "604-555-0100", c.Decrypt("604-555-0100"))
}

func TestDecryptIdempotentOnDecrypted(t *testing.T) {
	c := NewCipher(testKey(t), nil)
	plain := c.Decrypt(c.Encrypt("re-read me"))
	assert.Equal(t, "re-read me", c.Decrypt(plain))
}

func TestLoadOrCreateKeyStable(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrCreateKey(dir)
	require.NoError(t, err)
	require.Len(t, first, 32)

	second, err := LoadOrCreateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
