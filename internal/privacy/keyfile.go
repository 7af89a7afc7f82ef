package privacy

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const keySize = 32

// LoadOrCreateKey reads the per-user field key from dataDir, generating one
// on first run. The file lives in the user's profile with 0600 permissions;
// the same key must be present to reverse previously stored ciphertext.
func LoadOrCreateKey(dataDir string) ([]byte, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dataDir, "field.key")

	if raw, err := os.ReadFile(path); err == nil {
		key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("parse field key %s: %w", path, err)
		}
		if len(key) != keySize {
			return nil, fmt.Errorf("field key %s: want %d bytes, got %d", path, keySize, len(key))
		}
		return key, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read field key: %w", err)
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write field key: %w", err)
	}
	return key, nil
}
