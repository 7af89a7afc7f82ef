// Package sidecar maintains the hash sidecars and encrypted storage columns
// of identity fields. Every insert or update of an owning entity passes
// through Seal, which recomputes each field's hash from the in-memory
// plaintext and routes the plaintext through the cipher, even when the
// value did not change this write, so legacy plaintext rows converge to
// ciphertext the next time they are touched. Seal output and the rest of
// the entity's columns must commit in one transaction; repositories own
// that.
package sidecar

import (
	"context"
	"fmt"

	companydomain "github.com/motorbill/motorbill/internal/company/domain"
	customerdomain "github.com/motorbill/motorbill/internal/customer/domain"
	"github.com/motorbill/motorbill/internal/identity"
	"github.com/motorbill/motorbill/internal/privacy"
	vehicledomain "github.com/motorbill/motorbill/internal/vehicle/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Guard applies sidecar maintenance for all identity-field owners.
type Guard struct {
	cipher *privacy.Cipher
	log    *zap.Logger
}

func New(cipher *privacy.Cipher, log *zap.Logger) *Guard {
	return &Guard{cipher: cipher, log: log.Named("sidecar")}
}

// SealCustomer prepares a customer row for persistence: hashes from
// plaintext, then plaintext through the cipher.
func (g *Guard) SealCustomer(c *customerdomain.Customer) {
	c.EmailHash = identity.EmailHash(c.Email)
	c.PhoneHash = identity.PhoneHash(c.Phone)
	c.Email = g.cipher.Encrypt(c.Email)
	c.Phone = g.cipher.Encrypt(c.Phone)
}

// OpenCustomer restores plaintext after a read. Tolerant decrypt means
// legacy plaintext rows come back unchanged.
func (g *Guard) OpenCustomer(c *customerdomain.Customer) {
	c.Email = g.cipher.Decrypt(c.Email)
	c.Phone = g.cipher.Decrypt(c.Phone)
}

func (g *Guard) SealVehicle(v *vehicledomain.Vehicle) {
	v.LicensePlateHash = identity.UpperHash(v.LicensePlate)
	v.VinHash = identity.UpperHash(v.VIN)
	v.LicensePlate = g.cipher.Encrypt(v.LicensePlate)
	v.VIN = g.cipher.Encrypt(v.VIN)
}

func (g *Guard) OpenVehicle(v *vehicledomain.Vehicle) {
	v.LicensePlate = g.cipher.Decrypt(v.LicensePlate)
	v.VIN = g.cipher.Decrypt(v.VIN)
}

func (g *Guard) SealCompany(c *companydomain.Company) {
	c.GstNumberHash = identity.UpperHash(c.GstNumber)
	c.GstNumber = g.cipher.Encrypt(c.GstNumber)
}

func (g *Guard) OpenCompany(c *companydomain.Company) {
	c.GstNumber = g.cipher.Decrypt(c.GstNumber)
}

// Backfill forces sidecar maintenance over every stored row and commits
// once. Intended for startup, before normal traffic: it converges legacy
// plaintext columns to ciphertext and populates missing hashes without
// waiting for organic writes. Running it again recomputes identical hashes
// and re-encrypts current values; wasted work, no corruption.
func (g *Guard) Backfill(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customers []customerdomain.Customer
		if err := tx.Find(&customers).Error; err != nil {
			return fmt.Errorf("backfill customers: %w", err)
		}
		for i := range customers {
			g.OpenCustomer(&customers[i])
			g.SealCustomer(&customers[i])
			if err := tx.Model(&customerdomain.Customer{}).
				Where("id = ?", customers[i].ID).
				Updates(map[string]any{
					"email":      customers[i].Email,
					"phone":      customers[i].Phone,
					"email_hash": customers[i].EmailHash,
					"phone_hash": customers[i].PhoneHash,
				}).Error; err != nil {
				return fmt.Errorf("backfill customer %d: %w", customers[i].ID, err)
			}
		}

		var vehicles []vehicledomain.Vehicle
		if err := tx.Find(&vehicles).Error; err != nil {
			return fmt.Errorf("backfill vehicles: %w", err)
		}
		for i := range vehicles {
			g.OpenVehicle(&vehicles[i])
			g.SealVehicle(&vehicles[i])
			if err := tx.Model(&vehicledomain.Vehicle{}).
				Where("id = ?", vehicles[i].ID).
				Updates(map[string]any{
					"license_plate":      vehicles[i].LicensePlate,
					"vin":                vehicles[i].VIN,
					"license_plate_hash": vehicles[i].LicensePlateHash,
					"vin_hash":           vehicles[i].VinHash,
				}).Error; err != nil {
				return fmt.Errorf("backfill vehicle %d: %w", vehicles[i].ID, err)
			}
		}

		var companies []companydomain.Company
		if err := tx.Find(&companies).Error; err != nil {
			return fmt.Errorf("backfill companies: %w", err)
		}
		for i := range companies {
			g.OpenCompany(&companies[i])
			g.SealCompany(&companies[i])
			if err := tx.Model(&companydomain.Company{}).
				Where("id = ?", companies[i].ID).
				Updates(map[string]any{
					"gst_number":      companies[i].GstNumber,
					"gst_number_hash": companies[i].GstNumberHash,
				}).Error; err != nil {
				return fmt.Errorf("backfill company %d: %w", companies[i].ID, err)
			}
		}

		g.log.Info("identity sidecar backfill complete",
			zap.Int("customers", len(customers)),
			zap.Int("vehicles", len(vehicles)),
			zap.Int("companies", len(companies)),
		)
		return nil
	})
}
