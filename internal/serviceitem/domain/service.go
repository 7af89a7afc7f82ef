package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateServiceItemRequest struct {
	Name         string
	Description  string
	DefaultPrice int64
}

type UpdateServiceItemRequest struct {
	ID           snowflake.ID
	Name         string
	Description  string
	DefaultPrice int64
	Active       bool
}

type Service interface {
	Create(ctx context.Context, req CreateServiceItemRequest) (ServiceItem, error)
	Update(ctx context.Context, req UpdateServiceItemRequest) (ServiceItem, error)
	Delete(ctx context.Context, id snowflake.ID) error
	GetByID(ctx context.Context, id snowflake.ID) (ServiceItem, error)
	List(ctx context.Context, activeOnly bool) ([]ServiceItem, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidPrice = errors.New("invalid_price")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
