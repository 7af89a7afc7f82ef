package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) *Service {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&AdminCredential{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{DB: gdb, Log: zap.NewNop(), GenID: node})
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same password")
	require.NoError(t, err)
	b, err := HashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("not-an-encoded-hash", "anything")
	assert.Error(t, err)
}

func TestVerifyCredentials(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefault(ctx, "admin", "initial-password"))

	assert.NoError(t, svc.Verify(ctx, "admin", "initial-password"))
	assert.ErrorIs(t, svc.Verify(ctx, "admin", "nope"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Verify(ctx, "nobody", "initial-password"), ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefault(ctx, "admin", "initial-password"))

	err := svc.ChangePassword(ctx, "admin", "wrong", "brand-new-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, "admin", "initial-password", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	require.NoError(t, svc.ChangePassword(ctx, "admin", "initial-password", "brand-new-password"))
	assert.NoError(t, svc.Verify(ctx, "admin", "brand-new-password"))
	assert.ErrorIs(t, svc.Verify(ctx, "admin", "initial-password"), ErrInvalidCredentials)
}

func TestEnsureDefaultIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefault(ctx, "admin", "first"))
	require.NoError(t, svc.ChangePassword(ctx, "admin", "first", "second-password"))

	// A restart must not reset the changed password.
	require.NoError(t, svc.EnsureDefault(ctx, "admin", "first"))
	assert.NoError(t, svc.Verify(ctx, "admin", "second-password"))
}
