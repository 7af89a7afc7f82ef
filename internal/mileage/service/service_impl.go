package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/motorbill/motorbill/internal/config"
	"github.com/motorbill/motorbill/internal/mileage/domain"
	"github.com/motorbill/motorbill/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Settings *config.SettingsHolder
	Metrics  *metrics.Metrics
}

// Service owns the ledger's write policy. The check-then-append sequences
// below are not atomic against a second writer on the same vehicle; the
// deployment runs a single process with a single active operator, and the
// check constraint plus the ledger's append-only shape bound the damage if
// that precondition is ever violated.
type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	settings *config.SettingsHolder
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("mileage.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		settings: p.Settings,
		metrics:  p.Metrics,
	}
}

func (s *Service) Record(ctx context.Context, vehicleID snowflake.ID, mileage int, recordedAt time.Time, source, notes string) (snowflake.ID, error) {
	if vehicleID == 0 {
		return 0, domain.ErrVehicleRequired
	}
	if mileage < domain.MinMileage || mileage > domain.MaxMileage {
		s.metrics.MileageRejected.WithLabelValues("out_of_range").Inc()
		return 0, domain.ErrMileageOutOfRange
	}

	last, err := s.repo.GetLatestOnOrBefore(ctx, s.db, vehicleID, recordedAt)
	if err != nil {
		return 0, err
	}
	if last != nil && mileage < last.Mileage {
		s.metrics.MileageRejected.WithLabelValues("regression").Inc()
		return 0, domain.ErrMileageRegression
	}

	return s.append(ctx, vehicleID, mileage, recordedAt, source, notes)
}

func (s *Service) RecordOnSave(ctx context.Context, vehicleID snowflake.ID, mileage int, when time.Time) (bool, error) {
	if vehicleID == 0 {
		return false, domain.ErrVehicleRequired
	}

	lastAt, err := s.repo.GetLatestRecordedAtOnOrBefore(ctx, s.db, vehicleID, when)
	if err != nil {
		return false, err
	}
	if lastAt != nil && when.Sub(*lastAt) < s.lockWindow() {
		// The typing path most likely recorded this reading already.
		s.log.Debug("mileage save skipped inside lock window",
			zap.Int64("vehicle_id", int64(vehicleID)),
			zap.Time("last_recorded_at", *lastAt),
		)
		return false, nil
	}

	if _, err := s.Record(ctx, vehicleID, mileage, when, domain.SourceInvoice, ""); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) ApplyEditChange(ctx context.Context, vehicleID snowflake.ID, proposed int, now time.Time) (domain.EditOutcome, error) {
	if vehicleID == 0 {
		return domain.EditOutcome{}, domain.ErrVehicleRequired
	}
	if proposed < domain.MinMileage || proposed > domain.MaxMileage {
		s.metrics.MileageRejected.WithLabelValues("out_of_range").Inc()
		return domain.EditOutcome{}, domain.ErrMileageOutOfRange
	}

	last, err := s.repo.GetLatestOnOrBefore(ctx, s.db, vehicleID, now)
	if err != nil {
		return domain.EditOutcome{}, err
	}

	if last != nil {
		if remaining := s.lockWindow() - now.Sub(last.RecordedAt); remaining > 0 {
			s.metrics.MileageRejected.WithLabelValues("locked").Inc()
			revert := last.Mileage
			return domain.EditOutcome{
				Status:    domain.EditLocked,
				RevertTo:  &revert,
				Remaining: remaining,
				Message:   fmt.Sprintf("mileage was recorded recently and is locked for another %s", formatRemaining(remaining)),
			}, nil
		}
		if proposed < last.Mileage {
			s.metrics.MileageRejected.WithLabelValues("regression").Inc()
			revert := last.Mileage
			return domain.EditOutcome{
				Status:   domain.EditReverted,
				RevertTo: &revert,
				Message:  fmt.Sprintf("mileage cannot decrease below the last recorded value of %d", last.Mileage),
			}, nil
		}
	}

	id, err := s.append(ctx, vehicleID, proposed, now, domain.SourceTyping, "")
	if err != nil {
		return domain.EditOutcome{}, err
	}
	return domain.EditOutcome{Status: domain.EditAccepted, EntryID: id}, nil
}

func (s *Service) Import(ctx context.Context, vehicleID snowflake.ID, mileage int, recordedAt time.Time, notes string) (snowflake.ID, error) {
	if vehicleID == 0 {
		return 0, domain.ErrVehicleRequired
	}
	if mileage < domain.MinMileage || mileage > domain.MaxMileage {
		s.metrics.MileageRejected.WithLabelValues("out_of_range").Inc()
		return 0, domain.ErrMileageOutOfRange
	}
	return s.append(ctx, vehicleID, mileage, recordedAt, domain.SourceImport, notes)
}

func (s *Service) GetByVehicle(ctx context.Context, vehicleID snowflake.ID) ([]domain.MileageEntry, error) {
	if vehicleID == 0 {
		return nil, domain.ErrVehicleRequired
	}
	return s.repo.GetByVehicle(ctx, s.db, vehicleID)
}

func (s *Service) GetLatestOnOrBefore(ctx context.Context, vehicleID snowflake.ID, ref time.Time) (*domain.MileageEntry, error) {
	if vehicleID == 0 {
		return nil, domain.ErrVehicleRequired
	}
	return s.repo.GetLatestOnOrBefore(ctx, s.db, vehicleID, ref)
}

func (s *Service) GetLatestForDay(ctx context.Context, vehicleID snowflake.ID, day time.Time) (*domain.MileageEntry, error) {
	if vehicleID == 0 {
		return nil, domain.ErrVehicleRequired
	}
	d := day.UTC()
	endOfDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, 1).
		Add(-time.Nanosecond)
	return s.repo.GetLatestOnOrBefore(ctx, s.db, vehicleID, endOfDay)
}

func (s *Service) append(ctx context.Context, vehicleID snowflake.ID, mileage int, recordedAt time.Time, source, notes string) (snowflake.ID, error) {
	entry := domain.MileageEntry{
		ID:         s.genID.Generate(),
		VehicleID:  vehicleID,
		Mileage:    mileage,
		RecordedAt: recordedAt.UTC(),
		Source:     source,
		Notes:      notes,
	}
	if err := s.repo.Add(ctx, s.db, &entry); err != nil {
		return 0, err
	}
	s.metrics.MileageRecorded.WithLabelValues(source).Inc()
	s.log.Info("mileage recorded",
		zap.Int64("vehicle_id", int64(vehicleID)),
		zap.Int("mileage", mileage),
		zap.String("source", source),
	)
	return entry.ID, nil
}

func (s *Service) lockWindow() time.Duration {
	return s.settings.Get().MileageLockWindow
}

func formatRemaining(d time.Duration) string {
	if d < time.Minute {
		return d.Round(time.Second).String()
	}
	return d.Round(time.Minute).String()
}
