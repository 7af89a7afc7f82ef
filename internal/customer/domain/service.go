package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateCustomerRequest struct {
	Name         string
	AddressLine1 string
	Phone        string
	Email        string
}

type UpdateCustomerRequest struct {
	ID           snowflake.ID
	Name         string
	AddressLine1 string
	Phone        string
	Email        string
}

// SearchCustomerRequest matches by exact email or phone. Matching runs
// against the hash sidecars, so formatting and case differences in the query
// are irrelevant and nothing is decrypted to answer it.
type SearchCustomerRequest struct {
	Email string
	Phone string
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id snowflake.ID) error
	GetByID(ctx context.Context, id snowflake.ID) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Search(ctx context.Context, req SearchCustomerRequest) ([]Customer, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrEmptySearch = errors.New("empty_search")
	ErrNotFound    = errors.New("not_found")
)
