package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	companydomain "github.com/motorbill/motorbill/internal/company/domain"
	"github.com/motorbill/motorbill/internal/config"
	"github.com/motorbill/motorbill/internal/invoice/domain"
	"github.com/motorbill/motorbill/internal/invoice/repository"
	mileagedomain "github.com/motorbill/motorbill/internal/mileage/domain"
	mileagerepo "github.com/motorbill/motorbill/internal/mileage/repository"
	mileageservice "github.com/motorbill/motorbill/internal/mileage/service"
	"github.com/motorbill/motorbill/internal/observability/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubCompany serves fixed tax rates without a company row.
type stubCompany struct {
	gst, pst float64
}

func (s stubCompany) Get(_ context.Context) (companydomain.Company, error) {
	return companydomain.Company{Name: "Test Shop", GstRate: s.gst, PstRate: s.pst}, nil
}

func (s stubCompany) Update(_ context.Context, _ companydomain.UpdateCompanyRequest) (companydomain.Company, error) {
	panic("not used")
}

type fixture struct {
	svc     domain.Service
	mileage mileagedomain.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&domain.Invoice{},
		&domain.InvoiceLineItem{},
		&mileagedomain.MileageEntry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	settings := config.NewStaticSettings(config.DefaultSettings())
	m := metrics.NewNop()

	mileageSvc := mileageservice.New(mileageservice.Params{
		DB:       gdb,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     mileagerepo.Provide(),
		Settings: settings,
		Metrics:  m,
	})

	svc := New(Params{
		DB:       gdb,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Settings: settings,
		Metrics:  m,
		Mileage:  mileageSvc,
		Company:  stubCompany{gst: 0.05, pst: 0.07},
	})
	return fixture{svc: svc, mileage: mileageSvc}
}

var serviceDate = time.Date(2025, 2, 10, 14, 30, 0, 0, time.UTC)

func oilChange() domain.LineItemInput {
	return domain.LineItemInput{Description: "Oil Change", PriceCents: 7999, Quantity: 1}
}

func TestCreateComputesTotals(t *testing.T) {
	f := newFixture(t)

	inv, err := f.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		LineItems: []domain.LineItemInput{
			{Description: "Oil Change", PriceCents: 7999, Quantity: 1},
			{Description: "Wiper Blade", PriceCents: 1500, Quantity: 2},
		},
	}, false)
	require.NoError(t, err)

	assert.EqualValues(t, 10999, inv.Subtotal)
	assert.EqualValues(t, 550, inv.GstAmount)
	assert.EqualValues(t, 770, inv.PstAmount)
	assert.EqualValues(t, 12319, inv.Total)
	assert.Len(t, inv.LineItems, 2)
}

func TestCreateRejectsSameDayTriple(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	require.NoError(t, err)

	// Same customer, vehicle and calendar day at a different clock time.
	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate.Add(3 * time.Hour),
		LineItems:   []domain.LineItemInput{{Description: "Brake Inspection", PriceCents: 4999, Quantity: 1}},
	}, true)
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoice)
}

func TestCreateAllowsDifferentDayOrParty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	require.NoError(t, err)

	// Same day, different vehicle.
	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   3,
		ServiceDate: serviceDate,
		LineItems:   []domain.LineItemInput{{Description: "Tire Rotation", PriceCents: 2999, Quantity: 1}},
	}, false)
	require.NoError(t, err)

	// Same parties, eight days later (outside the advisory window too).
	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate.AddDate(0, 0, 8),
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	assert.NoError(t, err)
}

func TestAdvisoryBlocksUntilForced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	require.NoError(t, err)

	// Two days later, same vehicle, same line key: advisory fires.
	req := domain.CreateInvoiceRequest{
		CustomerID:  9,
		VehicleID:   2,
		ServiceDate: serviceDate.AddDate(0, 0, 2),
		LineItems:   []domain.LineItemInput{{Description: "oil change", PriceCents: 7999, Quantity: 1}},
	}
	_, err = f.svc.Create(ctx, req, false)
	assert.ErrorIs(t, err, domain.ErrDuplicateServicesNeedConfirm)

	// Confirmation lets the save through.
	_, err = f.svc.Create(ctx, req, true)
	assert.NoError(t, err)
}

func TestAdvisoryMatchesCatalogReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := snowflake.ID(42)

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		LineItems: []domain.LineItemInput{
			{ServiceItemID: &itemID, Description: "Oil Change", PriceCents: 7999, Quantity: 1},
		},
	}, false)
	require.NoError(t, err)

	// Different description and price, but the same catalog item.
	matches, err := f.svc.FindRecentDuplicateServices(ctx, 2, []domain.LineItemInput{
		{ServiceItemID: &itemID, Description: "Full Synthetic Oil Change", PriceCents: 9999},
	}, serviceDate.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"ID:42"}, matches[0].SharedKeys)
}

func TestAdvisoryIgnoresPriceMismatchOnFreeText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	require.NoError(t, err)

	// Same description, different price: distinct free-text key.
	matches, err := f.svc.FindRecentDuplicateServices(ctx, 2, []domain.LineItemInput{
		{Description: "Oil Change", PriceCents: 8999},
	}, serviceDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAdvisoryWindowIsClosed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	require.NoError(t, err)

	// Exactly five days out is still inside the closed interval.
	matches, err := f.svc.FindRecentDuplicateServices(ctx, 2, []domain.LineItemInput{
		{Description: "Oil Change", PriceCents: 7999},
	}, serviceDate.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	// Six days out is not.
	matches, err = f.svc.FindRecentDuplicateServices(ctx, 2, []domain.LineItemInput{
		{Description: "Oil Change", PriceCents: 7999},
	}, serviceDate.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAdvisoryWindowCoversWholeDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Morning of the earliest day in the window, earlier in the day than
	// the proposed invoice's time.
	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: time.Date(2025, 2, 5, 9, 0, 0, 0, time.UTC),
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	require.NoError(t, err)

	matches, err := f.svc.FindRecentDuplicateServices(ctx, 2, []domain.LineItemInput{
		{Description: "Oil Change", PriceCents: 7999},
	}, time.Date(2025, 2, 10, 14, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	// A prior invoice later the same calendar day as the target counts too.
	matches, err = f.svc.FindRecentDuplicateServices(ctx, 2, []domain.LineItemInput{
		{Description: "Oil Change", PriceCents: 7999},
	}, time.Date(2025, 2, 5, 2, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCreateRecordsMileageSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mileage := 52_000

	_, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		Mileage:     &mileage,
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	require.NoError(t, err)

	entries, err := f.mileage.GetByVehicle(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 52_000, entries[0].Mileage)
	assert.Equal(t, mileagedomain.SourceInvoice, entries[0].Source)
}

func TestCreateSkipsMileageInsideLockWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mileage := 52_000

	// The typing path recorded the reading an hour before the save.
	_, err := f.mileage.Record(ctx, 2, 52_000, serviceDate.Add(-time.Hour), mileagedomain.SourceTyping, "")
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		Mileage:     &mileage,
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	require.NoError(t, err)

	entries, err := f.mileage.GetByVehicle(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCreateValidatesLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := domain.CreateInvoiceRequest{CustomerID: 1, VehicleID: 2, ServiceDate: serviceDate}

	req := base
	_, err := f.svc.Create(ctx, req, false)
	assert.ErrorIs(t, err, domain.ErrNoLineItems)

	req = base
	req.LineItems = []domain.LineItemInput{{Description: "Free", PriceCents: 0, Quantity: 1}}
	_, err = f.svc.Create(ctx, req, false)
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)

	req = base
	req.LineItems = []domain.LineItemInput{{Description: "Bulk", PriceCents: 100, Quantity: 1001}}
	_, err = f.svc.Create(ctx, req, false)
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)

	req = base
	req.LineItems = []domain.LineItemInput{{Description: "   ", PriceCents: 100, Quantity: 1}}
	_, err = f.svc.Create(ctx, req, false)
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
}

func TestGetByIDPreloadsLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, domain.CreateInvoiceRequest{
		CustomerID:  1,
		VehicleID:   2,
		ServiceDate: serviceDate,
		LineItems:   []domain.LineItemInput{oilChange()},
	}, false)
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, "Oil Change", got.LineItems[0].Description)
}

func TestLineKeyShape(t *testing.T) {
	id := snowflake.ID(7)
	withRef := domain.InvoiceLineItem{ServiceItemID: &id, Description: "whatever", PriceCents: 100}
	assert.Equal(t, "ID:7", withRef.LineKey())

	freeText := domain.InvoiceLineItem{Description: "  Brake PADS  ", PriceCents: 12050}
	assert.Equal(t, "DESC:brake pads|P:120.50", freeText.LineKey())
}
