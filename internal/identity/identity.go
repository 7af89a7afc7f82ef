// Package identity holds the pure normalization and hashing rules for
// personally-identifying fields. Sidecar hashes are always computed from the
// in-memory plaintext, never from a stored (possibly encrypted) value, so
// search and uniqueness checks never decrypt anything.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// NormalizeEmail canonicalizes an email for hashing: trim and uppercase.
// Blank input normalizes to the empty string ("absent").
func NormalizeEmail(s string) string {
	return NormalizeUpper(s)
}

// NormalizePhone keeps digits only. "(604) 555-0100" and "6045550100"
// normalize identically.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeUpper is the rule for plates, VINs and tax ids: trim, uppercase.
func NormalizeUpper(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return strings.ToUpper(trimmed)
}

// HashOrNil returns the sidecar digest of a normalized value: 64 lowercase
// hex characters of SHA-256 over its UTF-8 bytes, or nil when the value is
// absent. Nil maps to a NULL sidecar column, which the partial unique
// indexes exclude.
func HashOrNil(normalized string) *string {
	if strings.TrimSpace(normalized) == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(normalized))
	digest := hex.EncodeToString(sum[:])
	return &digest
}

// EmailHash is the full pipeline for email sidecars.
func EmailHash(plaintext string) *string {
	return HashOrNil(NormalizeEmail(plaintext))
}

// PhoneHash is the full pipeline for phone sidecars.
func PhoneHash(plaintext string) *string {
	return HashOrNil(NormalizePhone(plaintext))
}

// UpperHash is the full pipeline for plate, VIN and tax-id sidecars.
func UpperHash(plaintext string) *string {
	return HashOrNil(NormalizeUpper(plaintext))
}
