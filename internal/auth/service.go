package auth

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 8

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrWeakPassword       = errors.New("weak_password")
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func New(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("auth.service"),
		genID: p.GenID,
	}
}

// Verify checks a username and password pair. Unknown usernames and wrong
// passwords both come back as ErrInvalidCredentials.
func (s *Service) Verify(ctx context.Context, username, password string) error {
	cred, err := s.find(ctx, username)
	if err != nil {
		return err
	}
	if cred == nil {
		return ErrInvalidCredentials
	}
	ok, err := VerifyPassword(cred.PasswordHash, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}
	return nil
}

// ChangePassword re-verifies the current password and re-hashes the new
// one with a fresh salt.
func (s *Service) ChangePassword(ctx context.Context, username, current, next string) error {
	if len(next) < minPasswordLen {
		return ErrWeakPassword
	}
	if err := s.Verify(ctx, username, current); err != nil {
		return err
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).
		Model(&AdminCredential{}).
		Where("username = ?", username).
		Updates(map[string]any{
			"password_hash": hash,
			"updated_at":    time.Now().UTC(),
		}).Error
	if err != nil {
		return err
	}
	s.log.Info("admin password changed", zap.String("username", username))
	return nil
}

// EnsureDefault creates the credential on first run. Existing credentials
// are left alone, so a changed password survives restarts.
func (s *Service) EnsureDefault(ctx context.Context, username, password string) error {
	cred, err := s.find(ctx, username)
	if err != nil {
		return err
	}
	if cred != nil {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Create(&AdminCredential{
		ID:           s.genID.Generate(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
}

func (s *Service) find(ctx context.Context, username string) (*AdminCredential, error) {
	var cred AdminCredential
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

var Module = fx.Module("auth.service", fx.Provide(New))
