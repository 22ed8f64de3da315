package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"academic_records/internal/models"
	"academic_records/internal/storage"
)

// ErrTokenNotFound is returned for unknown, revoked or expired tokens
var ErrTokenNotFound = errors.New("access token not found")

// TokenRepository keeps the server-side state of issued bearer tokens
type TokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	// FindActive returns ErrTokenNotFound unless the token exists and is unexpired
	FindActive(ctx context.Context, jti string) (*models.AccessToken, error)
	// Revoke is immediate; revoking an unknown token is not an error
	Revoke(ctx context.Context, jti string) error
}

type tokenRepository struct {
	db  *storage.DB
	now func() time.Time
}

// NewTokenRepository stores tokens in the access_tokens table
func NewTokenRepository(db *storage.DB) TokenRepository {
	return &tokenRepository{db: db, now: time.Now}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) FindActive(ctx context.Context, jti string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.WithContext(ctx).Where("jti = ?", jti).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	now := r.now()
	if token.Expired(now) {
		return nil, ErrTokenNotFound
	}
	if err := r.db.WithContext(ctx).Model(&token).Update("last_used_at", now).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, jti string) error {
	return r.db.WithContext(ctx).Where("jti = ?", jti).Delete(&models.AccessToken{}).Error
}
