package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/motorbill/motorbill/internal/company/domain"
	"github.com/motorbill/motorbill/internal/config"
	"github.com/motorbill/motorbill/internal/invoice/domain"
	mileagedomain "github.com/motorbill/motorbill/internal/mileage/domain"
	"github.com/motorbill/motorbill/internal/observability/metrics"
	"github.com/motorbill/motorbill/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	maxLineQuantity = 1000
	maxLineItems    = 100
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Settings *config.SettingsHolder
	Metrics  *metrics.Metrics
	Mileage  mileagedomain.Service
	Company  companydomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	settings *config.SettingsHolder
	metrics  *metrics.Metrics
	mileage  mileagedomain.Service
	company  companydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		settings: p.Settings,
		metrics:  p.Metrics,
		mileage:  p.Mileage,
		company:  p.Company,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest, force bool) (domain.Invoice, error) {
	if req.CustomerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidCustomer
	}
	if req.VehicleID == 0 {
		return domain.Invoice{}, domain.ErrInvalidVehicle
	}
	if len(req.LineItems) == 0 {
		return domain.Invoice{}, domain.ErrNoLineItems
	}
	if len(req.LineItems) > maxLineItems {
		return domain.Invoice{}, domain.ErrInvalidLineItem
	}
	for _, line := range req.LineItems {
		if err := validateLine(line); err != nil {
			return domain.Invoice{}, err
		}
	}
	if req.Mileage != nil && (*req.Mileage < mileagedomain.MinMileage || *req.Mileage > mileagedomain.MaxMileage) {
		return domain.Invoice{}, mileagedomain.ErrMileageOutOfRange
	}

	serviceDate := req.ServiceDate.UTC()
	if serviceDate.IsZero() {
		serviceDate = time.Now().UTC()
	}

	exists, err := s.repo.ExistsForAdmissionKey(ctx, s.db, req.CustomerID, req.VehicleID, serviceDate)
	if err != nil {
		return domain.Invoice{}, err
	}
	if exists {
		s.metrics.DuplicateAdmission.WithLabelValues("invoice").Inc()
		return domain.Invoice{}, domain.ErrDuplicateInvoice
	}

	matches, err := s.FindRecentDuplicateServices(ctx, req.VehicleID, req.LineItems, serviceDate)
	if err != nil {
		return domain.Invoice{}, err
	}
	if len(matches) > 0 {
		if !force {
			s.metrics.AdvisoryTriggered.Inc()
			return domain.Invoice{}, domain.ErrDuplicateServicesNeedConfirm
		}
		s.metrics.AdvisoryConfirm.Inc()
	}

	gstRate, pstRate, err := s.taxRates(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice := domain.Invoice{
		ID:          s.genID.Generate(),
		CustomerID:  req.CustomerID,
		VehicleID:   req.VehicleID,
		ServiceDate: serviceDate,
		ServiceDay:  datatypes.Date(serviceDate),
		Mileage:     req.Mileage,
		Notes:       strings.TrimSpace(req.Notes),
	}
	for _, line := range req.LineItems {
		item := domain.InvoiceLineItem{
			ID:            s.genID.Generate(),
			InvoiceID:     invoice.ID,
			ServiceItemID: line.ServiceItemID,
			Description:   strings.TrimSpace(line.Description),
			PriceCents:    line.PriceCents,
			Quantity:      line.Quantity,
		}
		invoice.Subtotal += item.PriceCents * int64(item.Quantity)
		invoice.LineItems = append(invoice.LineItems, item)
	}
	invoice.GstAmount = int64(math.Round(float64(invoice.Subtotal) * gstRate))
	invoice.PstAmount = int64(math.Round(float64(invoice.Subtotal) * pstRate))
	invoice.Total = invoice.Subtotal + invoice.GstAmount + invoice.PstAmount

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		// The unique admission index closes the check-then-insert window.
		if db.IsDuplicateKeyErr(err) {
			s.metrics.DuplicateAdmission.WithLabelValues("invoice").Inc()
			return domain.Invoice{}, domain.ErrDuplicateInvoice
		}
		return domain.Invoice{}, err
	}

	if req.Mileage != nil {
		// The snapshot also lands in the ledger unless the typing path put
		// it there moments ago. A policy refusal must not undo the saved
		// invoice, so it only logs.
		if _, err := s.mileage.RecordOnSave(ctx, req.VehicleID, *req.Mileage, serviceDate); err != nil {
			s.log.Warn("mileage snapshot not recorded",
				zap.Int64("invoice_id", int64(invoice.ID)),
				zap.Error(err),
			)
		}
	}

	s.log.Info("invoice created",
		zap.Int64("id", int64(invoice.ID)),
		zap.Int64("customer_id", int64(invoice.CustomerID)),
		zap.Int64("vehicle_id", int64(invoice.VehicleID)),
		zap.Int64("total_cents", invoice.Total),
	)
	return invoice, nil
}

func (s *Service) FindRecentDuplicateServices(ctx context.Context, vehicleID snowflake.ID, lines []domain.LineItemInput, when time.Time) ([]domain.DuplicateServiceMatch, error) {
	if vehicleID == 0 {
		return nil, domain.ErrInvalidVehicle
	}

	proposed := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		item := domain.InvoiceLineItem{
			ServiceItemID: line.ServiceItemID,
			Description:   line.Description,
			PriceCents:    line.PriceCents,
		}
		proposed[item.LineKey()] = struct{}{}
	}
	if len(proposed) == 0 {
		return nil, nil
	}

	// The window covers whole calendar days, so an invoice from any time of
	// day on the earliest day still counts.
	lookback := s.settings.Get().DuplicateServiceLookbackDays
	day := time.Date(when.Year(), when.Month(), when.Day(), 0, 0, 0, 0, time.UTC)
	from := day.AddDate(0, 0, -lookback)
	to := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	prior, err := s.repo.FindByVehicleBetween(ctx, s.db, vehicleID, from, to)
	if err != nil {
		return nil, err
	}

	var matches []domain.DuplicateServiceMatch
	for _, inv := range prior {
		var shared []string
		seen := make(map[string]struct{})
		for _, item := range inv.LineItems {
			key := item.LineKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, ok := proposed[key]; ok {
				shared = append(shared, key)
			}
		}
		if len(shared) > 0 {
			sort.Strings(shared)
			matches = append(matches, domain.DuplicateServiceMatch{
				InvoiceID:   inv.ID,
				ServiceDate: inv.ServiceDate,
				SharedKeys:  shared,
			})
		}
	}
	return matches, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	if id == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Invoice, error) {
	if id == 0 {
		return domain.Invoice{}, domain.ErrInvalidID
	}
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *invoice, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID snowflake.ID) ([]domain.Invoice, error) {
	if customerID == 0 {
		return nil, domain.ErrInvalidCustomer
	}
	return s.repo.ListByCustomer(ctx, s.db, customerID)
}

func (s *Service) ListByVehicle(ctx context.Context, vehicleID snowflake.ID) ([]domain.Invoice, error) {
	if vehicleID == 0 {
		return nil, domain.ErrInvalidVehicle
	}
	return s.repo.ListByVehicle(ctx, s.db, vehicleID)
}

func (s *Service) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	return s.repo.ListByDateRange(ctx, s.db, from, to)
}

func (s *Service) taxRates(ctx context.Context) (gst, pst float64, err error) {
	company, err := s.company.Get(ctx)
	if errors.Is(err, companydomain.ErrNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return company.GstRate, company.PstRate, nil
}

func validateLine(line domain.LineItemInput) error {
	desc := strings.TrimSpace(line.Description)
	if desc == "" || len(desc) > 200 {
		return domain.ErrInvalidLineItem
	}
	if line.PriceCents < 1 {
		return domain.ErrInvalidLineItem
	}
	if line.Quantity < 1 || line.Quantity > maxLineQuantity {
		return domain.ErrInvalidLineItem
	}
	return nil
}
