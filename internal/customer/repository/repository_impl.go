package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/customer/domain"
	"github.com/motorbill/motorbill/internal/identity"
	"github.com/motorbill/motorbill/internal/sidecar"
	"gorm.io/gorm"
)

type repo struct {
	guard *sidecar.Guard
}

func Provide(guard *sidecar.Guard) domain.Repository {
	return &repo{guard: guard}
}

// Insert seals identity fields and writes the row in one statement; the
// caller's transaction (if any) is the one gorm db handle passed in.
func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	row := *customer
	r.guard.SealCustomer(&row)
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	customer.ID = row.ID
	customer.CreatedAt = row.CreatedAt
	customer.UpdatedAt = row.UpdatedAt
	customer.EmailHash = row.EmailHash
	customer.PhoneHash = row.PhoneHash
	return nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	row := *customer
	r.guard.SealCustomer(&row)
	if err := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"name":          row.Name,
			"address_line1": row.AddressLine1,
			"email":         row.Email,
			"phone":         row.Phone,
			"email_hash":    row.EmailHash,
			"phone_hash":    row.PhoneHash,
		}).Error; err != nil {
		return err
	}
	customer.EmailHash = row.EmailHash
	customer.PhoneHash = row.PhoneHash
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.guard.OpenCustomer(&customer)
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := db.WithContext(ctx).Order("name asc, id asc").Find(&customers).Error; err != nil {
		return nil, err
	}
	for i := range customers {
		r.guard.OpenCustomer(&customers[i])
	}
	return customers, nil
}

// FindByEmail matches via the email hash sidecar; no decryption involved.
func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) ([]domain.Customer, error) {
	hash := identity.EmailHash(email)
	if hash == nil {
		return nil, nil
	}
	return r.findByHash(ctx, db, "email_hash", *hash)
}

// FindByPhone matches via the phone hash sidecar.
func (r *repo) FindByPhone(ctx context.Context, db *gorm.DB, phone string) ([]domain.Customer, error) {
	hash := identity.PhoneHash(phone)
	if hash == nil {
		return nil, nil
	}
	return r.findByHash(ctx, db, "phone_hash", *hash)
}

func (r *repo) findByHash(ctx context.Context, db *gorm.DB, column, hash string) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := db.WithContext(ctx).
		Where(column+" = ?", hash).
		Order("id asc").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	for i := range customers {
		r.guard.OpenCustomer(&customers[i])
	}
	return customers, nil
}
