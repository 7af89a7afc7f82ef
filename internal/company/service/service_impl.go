package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/company/domain"
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
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Company, error) {
	company, err := s.repo.Get(ctx, s.db)
	if err != nil {
		return domain.Company{}, err
	}
	if company == nil {
		return domain.Company{}, domain.ErrNotFound
	}
	return *company, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCompanyRequest) (domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		return domain.Company{}, domain.ErrInvalidName
	}
	if req.GstRate < 0 || req.GstRate > 1 || req.PstRate < 0 || req.PstRate > 1 {
		return domain.Company{}, domain.ErrInvalidRate
	}

	existing, err := s.repo.Get(ctx, s.db)
	if err != nil {
		return domain.Company{}, err
	}

	now := time.Now().UTC()
	var company domain.Company
	if existing != nil {
		company = *existing
	} else {
		company.ID = s.genID.Generate()
		company.CreatedAt = now
	}
	company.Name = name
	company.Tagline = strings.TrimSpace(req.Tagline)
	company.AddressLine1 = strings.TrimSpace(req.AddressLine1)
	company.AddressLine2 = strings.TrimSpace(req.AddressLine2)
	company.Phone1 = strings.TrimSpace(req.Phone1)
	company.Phone2 = strings.TrimSpace(req.Phone2)
	company.Email = strings.TrimSpace(req.Email)
	company.Website = strings.TrimSpace(req.Website)
	company.LogoPath = strings.TrimSpace(req.LogoPath)
	company.GstNumber = strings.TrimSpace(req.GstNumber)
	company.GstRate = req.GstRate
	company.PstRate = req.PstRate
	company.ReviewQrText = req.ReviewQrText
	company.UpdatedAt = now

	if err := s.repo.Save(ctx, s.db, &company); err != nil {
		return domain.Company{}, err
	}
	return company, nil
}
