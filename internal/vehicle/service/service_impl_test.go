package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/motorbill/motorbill/internal/observability/metrics"
	"github.com/motorbill/motorbill/internal/privacy"
	"github.com/motorbill/motorbill/internal/sidecar"
	"github.com/motorbill/motorbill/internal/vehicle/domain"
	"github.com/motorbill/motorbill/internal/vehicle/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) domain.Service {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Vehicle{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	guard := sidecar.New(privacy.NewPassthrough(), zap.NewNop())
	return New(Params{
		DB:      gdb,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    repository.Provide(guard),
		Metrics: metrics.NewNop(),
	})
}

func TestCreateRejectsPlateCollision(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   1,
		Make:         "Toyota",
		Model:        "Corolla",
		LicensePlate: "ABC 123",
	})
	require.NoError(t, err)

	// Same plate in a different case and spacing collides on the hash.
	_, err = svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   2,
		Make:         "Honda",
		Model:        "Civic",
		LicensePlate: "abc 123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateVehicle)
}

func TestCreateRejectsVinCollision(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   1,
		Make:         "Ford",
		Model:        "F-150",
		LicensePlate: "PLT 001",
		VIN:          "1FTEW1EP5MKD12345",
	})
	require.NoError(t, err)

	// Different plate, same VIN. The guard is an OR over both sidecars.
	_, err = svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   2,
		Make:         "Ford",
		Model:        "F-150",
		LicensePlate: "PLT 002",
		VIN:          "1ftew1ep5mkd12345",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateVehicle)
}

func TestCreateAllowsDistinctIdentifiers(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   1,
		Make:         "Mazda",
		Model:        "3",
		LicensePlate: "AAA 111",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   1,
		Make:         "Mazda",
		Model:        "3",
		LicensePlate: "BBB 222",
	})
	assert.NoError(t, err)
}

func TestCreateAllowsVehiclesWithoutIdentifiers(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// Two plateless, VIN-less vehicles never collide; absent hashes do not
	// participate in the guard.
	_, err := svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID: 1,
		Make:       "Kubota",
		Model:      "BX23S",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID: 2,
		Make:       "John Deere",
		Model:      "1025R",
	})
	assert.NoError(t, err)
}

func TestCreateRequiresMinimumIdentity(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), domain.CreateVehicleRequest{
		CustomerID: 1,
		Color:      "Red",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientIdentity)

	_, err = svc.Create(context.Background(), domain.CreateVehicleRequest{
		CustomerID: 1,
		Make:       "Toyota",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientIdentity)
}

func TestUpdateExcludesOwnRow(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   1,
		Make:         "Subaru",
		Model:        "Outback",
		LicensePlate: "SUB 001",
		VIN:          "4S4BSANC0J3212345",
	})
	require.NoError(t, err)

	// Keeping its own plate and VIN must not read as a collision.
	updated, err := svc.Update(ctx, domain.UpdateVehicleRequest{
		ID:           created.ID,
		Make:         "Subaru",
		Model:        "Outback",
		Color:        "Green",
		LicensePlate: "SUB 001",
		VIN:          "4S4BSANC0J3212345",
	})
	require.NoError(t, err)
	assert.Equal(t, "Green", updated.Color)
}

func TestUpdateRejectsStealingAnotherPlate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   1,
		Make:         "VW",
		Model:        "Golf",
		LicensePlate: "TAKEN 1",
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   2,
		Make:         "VW",
		Model:        "Jetta",
		LicensePlate: "FREE 1",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdateVehicleRequest{
		ID:           second.ID,
		Make:         "VW",
		Model:        "Jetta",
		LicensePlate: "taken 1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateVehicle)
}

func TestGetByIDRoundTripsPlaintext(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateVehicleRequest{
		CustomerID:   7,
		Make:         "Nissan",
		Model:        "Leaf",
		LicensePlate: "EV 4242",
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EV 4242", got.LicensePlate)
	require.NotNil(t, got.LicensePlateHash)
	assert.Len(t, *got.LicensePlateHash, 64)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.GetByID(context.Background(), snowflake.ID(999999))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
