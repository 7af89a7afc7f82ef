package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "JOHN@EXAMPLE.COM", NormalizeEmail("  john@Example.com "))
	assert.Equal(t, "", NormalizeEmail("   "))
	assert.Equal(t, "", NormalizeEmail(""))
}

func TestNormalizePhoneDigitsOnly(t *testing.T) {
	assert.Equal(t, "6045550100", NormalizePhone("(604) 555-0100"))
	assert.Equal(t, "6045550100", NormalizePhone("604-555-0100"))
	assert.Equal(t, "6045550100", NormalizePhone("6045550100"))
	assert.Equal(t, "", NormalizePhone("ext."))
	assert.Equal(t, "", NormalizePhone(""))
}

func TestNormalizeUpper(t *testing.T) {
	assert.Equal(t, "ABC 123", NormalizeUpper(" abc 123 "))
	assert.Equal(t, "1HGCM82633A004352", NormalizeUpper("1hgcm82633a004352"))
	assert.Equal(t, "", NormalizeUpper(" \t "))
}

func TestHashOrNilAbsent(t *testing.T) {
	assert.Nil(t, HashOrNil(""))
	assert.Nil(t, HashOrNil("   "))
}

func TestHashOrNilShape(t *testing.T) {
	h := HashOrNil("ABC123")
	require.NotNil(t, h)
	assert.Len(t, *h, 64)

	sum := sha256.Sum256([]byte("ABC123"))
	assert.Equal(t, hex.EncodeToString(sum[:]), *h)
}

func TestEquivalentInputsHashIdentically(t *testing.T) {
	cases := []struct {
		name string
		a, b *string
	}{
		{"phone formatting", PhoneHash("(604) 555-0100"), PhoneHash("6045550100")},
		{"plate case and spacing", UpperHash("abc 123"), UpperHash(" ABC 123")},
		{"email case", EmailHash("John@Example.com"), EmailHash("JOHN@EXAMPLE.COM ")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotNil(t, tc.a)
			require.NotNil(t, tc.b)
			assert.Equal(t, *tc.a, *tc.b)
		})
	}
}

func TestDistinctInputsHashDifferently(t *testing.T) {
	a := UpperHash("ABC123")
	b := UpperHash("ABC124")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, *a, *b)
}
