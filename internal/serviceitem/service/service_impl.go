package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/serviceitem/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

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
		log:   p.Log.Named("serviceitem.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateServiceItemRequest) (domain.ServiceItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		return domain.ServiceItem{}, domain.ErrInvalidName
	}
	if req.DefaultPrice < 0 {
		return domain.ServiceItem{}, domain.ErrInvalidPrice
	}

	now := time.Now().UTC()
	item := domain.ServiceItem{
		ID:           s.genID.Generate(),
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		DefaultPrice: req.DefaultPrice,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.ServiceItem{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateServiceItemRequest) (domain.ServiceItem, error) {
	if req.ID == 0 {
		return domain.ServiceItem{}, domain.ErrInvalidID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		return domain.ServiceItem{}, domain.ErrInvalidName
	}
	if req.DefaultPrice < 0 {
		return domain.ServiceItem{}, domain.ErrInvalidPrice
	}

	existing, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.ServiceItem{}, err
	}
	if existing == nil {
		return domain.ServiceItem{}, domain.ErrNotFound
	}

	item := *existing
	item.Name = name
	item.Description = strings.TrimSpace(req.Description)
	item.DefaultPrice = req.DefaultPrice
	item.Active = req.Active

	if err := s.repo.Update(ctx, s.db, &item); err != nil {
		return domain.ServiceItem{}, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if id == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.ServiceItem, error) {
	if id == 0 {
		return domain.ServiceItem{}, domain.ErrInvalidID
	}
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.ServiceItem{}, err
	}
	if item == nil {
		return domain.ServiceItem{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.ServiceItem, error) {
	return s.repo.List(ctx, s.db, activeOnly)
}
