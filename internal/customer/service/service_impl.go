package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var nameRe = regexp.MustCompile(`^[\p{L}\p{M}0-9][\p{L}\p{M}0-9\s.'-]{0,99}$`)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if !nameRe.MatchString(name) {
		return domain.Customer{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:           s.genID.Generate(),
		Name:         name,
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	s.log.Info("customer created", zap.Int64("id", int64(customer.ID)))
	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	if req.ID == 0 {
		return domain.Customer{}, domain.ErrInvalidID
	}
	name := strings.TrimSpace(req.Name)
	if !nameRe.MatchString(name) {
		return domain.Customer{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	if existing == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	customer := *existing
	customer.Name = name
	customer.AddressLine1 = strings.TrimSpace(req.AddressLine1)
	customer.Phone = strings.TrimSpace(req.Phone)
	customer.Email = strings.TrimSpace(req.Email)

	if err := s.repo.Update(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if id == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Customer, error) {
	if id == 0 {
		return domain.Customer{}, domain.ErrInvalidID
	}
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx, s.db)
}

// Search resolves exact email or phone matches through the hash sidecars.
func (s *Service) Search(ctx context.Context, req domain.SearchCustomerRequest) ([]domain.Customer, error) {
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		return nil, domain.ErrEmptySearch
	}

	if email != "" {
		return s.repo.FindByEmail(ctx, s.db, email)
	}
	return s.repo.FindByPhone(ctx, s.db, phone)
}
