package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/observability/metrics"
	"github.com/motorbill/motorbill/internal/vehicle/domain"
	"github.com/motorbill/motorbill/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *metrics.Metrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("vehicle.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateVehicleRequest) (domain.Vehicle, error) {
	if req.CustomerID == 0 {
		return domain.Vehicle{}, domain.ErrInvalidCustomer
	}

	vehicle := domain.Vehicle{
		ID:           s.genID.Generate(),
		CustomerID:   req.CustomerID,
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		Color:        strings.TrimSpace(req.Color),
		LicensePlate: strings.TrimSpace(req.LicensePlate),
		VIN:          strings.TrimSpace(req.VIN),
	}
	if !hasMinimumIdentity(vehicle) {
		return domain.Vehicle{}, domain.ErrInsufficientIdentity
	}

	dup, err := s.repo.ExistsByPlateOrVin(ctx, s.db, vehicle.LicensePlate, vehicle.VIN, 0)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if dup {
		s.metrics.DuplicateAdmission.WithLabelValues("vehicle").Inc()
		return domain.Vehicle{}, domain.ErrDuplicateVehicle
	}

	now := time.Now().UTC()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	if err := s.repo.Insert(ctx, s.db, &vehicle); err != nil {
		// The partial unique indexes are the backstop for the guard's
		// check-then-insert window.
		if db.IsDuplicateKeyErr(err) {
			s.metrics.DuplicateAdmission.WithLabelValues("vehicle").Inc()
			return domain.Vehicle{}, domain.ErrDuplicateVehicle
		}
		return domain.Vehicle{}, err
	}

	s.log.Info("vehicle created",
		zap.Int64("id", int64(vehicle.ID)),
		zap.Int64("customer_id", int64(vehicle.CustomerID)),
	)
	return vehicle, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateVehicleRequest) (domain.Vehicle, error) {
	if req.ID == 0 {
		return domain.Vehicle{}, domain.ErrInvalidID
	}

	existing, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if existing == nil {
		return domain.Vehicle{}, domain.ErrNotFound
	}

	vehicle := *existing
	if req.CustomerID != 0 {
		vehicle.CustomerID = req.CustomerID
	}
	vehicle.Make = strings.TrimSpace(req.Make)
	vehicle.Model = strings.TrimSpace(req.Model)
	vehicle.Year = req.Year
	vehicle.Color = strings.TrimSpace(req.Color)
	vehicle.LicensePlate = strings.TrimSpace(req.LicensePlate)
	vehicle.VIN = strings.TrimSpace(req.VIN)

	if !hasMinimumIdentity(vehicle) {
		return domain.Vehicle{}, domain.ErrInsufficientIdentity
	}

	// Exclude the row being updated so keeping its own plate is legal.
	dup, err := s.repo.ExistsByPlateOrVin(ctx, s.db, vehicle.LicensePlate, vehicle.VIN, vehicle.ID)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if dup {
		s.metrics.DuplicateAdmission.WithLabelValues("vehicle").Inc()
		return domain.Vehicle{}, domain.ErrDuplicateVehicle
	}

	if err := s.repo.Update(ctx, s.db, &vehicle); err != nil {
		if db.IsDuplicateKeyErr(err) {
			s.metrics.DuplicateAdmission.WithLabelValues("vehicle").Inc()
			return domain.Vehicle{}, domain.ErrDuplicateVehicle
		}
		return domain.Vehicle{}, err
	}
	return vehicle, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if id == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Vehicle, error) {
	if id == 0 {
		return domain.Vehicle{}, domain.ErrInvalidID
	}
	vehicle, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if vehicle == nil {
		return domain.Vehicle{}, domain.ErrNotFound
	}
	return *vehicle, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID snowflake.ID) ([]domain.Vehicle, error) {
	if customerID == 0 {
		return nil, domain.ErrInvalidCustomer
	}
	return s.repo.ListByCustomer(ctx, s.db, customerID)
}

func (s *Service) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) ExistsByPlateOrVin(ctx context.Context, licensePlate, vin string) (bool, error) {
	return s.repo.ExistsByPlateOrVin(ctx, s.db, licensePlate, vin, 0)
}

// A vehicle needs a VIN, a plate, or make+model to be worth storing.
func hasMinimumIdentity(v domain.Vehicle) bool {
	if v.VIN != "" || v.LicensePlate != "" {
		return true
	}
	return v.Make != "" && v.Model != ""
}
