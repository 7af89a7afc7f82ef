package sidecar

import (
	"context"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	companydomain "github.com/motorbill/motorbill/internal/company/domain"
	customerdomain "github.com/motorbill/motorbill/internal/customer/domain"
	"github.com/motorbill/motorbill/internal/identity"
	"github.com/motorbill/motorbill/internal/privacy"
	vehicledomain "github.com/motorbill/motorbill/internal/vehicle/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newGuard(t *testing.T) *Guard {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return New(privacy.NewCipher(key, nil), zap.NewNop())
}

func TestSealCustomerRecomputesHashesFromPlaintext(t *testing.T) {
	g := newGuard(t)

	c := customerdomain.Customer{
		Name:  "Dana Roy",
		Email: "  Dana@Example.com ",
		Phone: "(604) 555-0100",
	}
	g.SealCustomer(&c)

	require.NotNil(t, c.EmailHash)
	require.NotNil(t, c.PhoneHash)
	assert.Equal(t, *identity.EmailHash("dana@example.com"), *c.EmailHash)
	assert.Equal(t, *identity.PhoneHash("6045550100"), *c.PhoneHash)

	// Stored values are ciphertext, not plaintext.
	assert.NotEqual(t, "  Dana@Example.com ", c.Email)
	assert.NotEqual(t, "(604) 555-0100", c.Phone)

	g.OpenCustomer(&c)
	assert.Equal(t, "  Dana@Example.com ", c.Email)
	assert.Equal(t, "(604) 555-0100", c.Phone)
}

func TestSealVehicleAbsentFieldsYieldNilHashes(t *testing.T) {
	g := newGuard(t)

	v := vehicledomain.Vehicle{Make: "Honda", Model: "Civic"}
	g.SealVehicle(&v)

	assert.Nil(t, v.LicensePlateHash)
	assert.Nil(t, v.VinHash)
	assert.Equal(t, "", v.LicensePlate)
	assert.Equal(t, "", v.VIN)
}

func TestBackfillConvergesLegacyPlaintext(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&customerdomain.Customer{}, &vehicledomain.Vehicle{}, &companydomain.Company{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	// Legacy rows: plaintext stored values, no sidecars.
	legacy := customerdomain.Customer{
		ID:    node.Generate(),
		Name:  "Legacy Row",
		Email: "legacy@example.com",
		Phone: "604-555-0199",
	}
	require.NoError(t, db.Create(&legacy).Error)

	g := newGuard(t)
	require.NoError(t, g.Backfill(context.Background(), db))

	var stored customerdomain.Customer
	require.NoError(t, db.First(&stored, "id = ?", legacy.ID).Error)
	require.NotNil(t, stored.EmailHash)
	assert.Equal(t, *identity.EmailHash("legacy@example.com"), *stored.EmailHash)
	assert.NotEqual(t, "legacy@example.com", stored.Email)

	g.OpenCustomer(&stored)
	assert.Equal(t, "legacy@example.com", stored.Email)

	// Second run is idempotent: same hashes, still decryptable.
	require.NoError(t, g.Backfill(context.Background(), db))

	var again customerdomain.Customer
	require.NoError(t, db.First(&again, "id = ?", legacy.ID).Error)
	assert.Equal(t, *stored.EmailHash, *again.EmailHash)
	g.OpenCustomer(&again)
	assert.Equal(t, "legacy@example.com", again.Email)
}
