package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"academic_records/internal/models"
)

const accessTokenPrefix = "access_token:"

type redisTokenRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisTokenRepository stores each token under access_token:<jti> with the
// token's remaining lifetime as TTL, so expired tokens disappear on their own
func NewRedisTokenRepository(client *redis.Client) TokenRepository {
	return &redisTokenRepository{client: client, now: time.Now}
}

func (r *redisTokenRepository) key(jti string) string {
	return fmt.Sprintf("%s%s", accessTokenPrefix, jti)
}

func (r *redisTokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	now := r.now()
	ttl := token.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return fmt.Errorf("token %s already expired", token.JTI)
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}

	data, err := json.Marshal(redisToken{
		UserID:    token.UserID,
		Name:      token.Name,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	})
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, r.key(token.JTI), data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("token %s: %w", token.JTI, errDuplicateToken)
	}
	return nil
}

func (r *redisTokenRepository) FindActive(ctx context.Context, jti string) (*models.AccessToken, error) {
	data, err := r.client.Get(ctx, r.key(jti)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}

	var stored redisToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", jti, err)
	}
	token := &models.AccessToken{
		JTI:       jti,
		UserID:    stored.UserID,
		Name:      stored.Name,
		ExpiresAt: stored.ExpiresAt,
		CreatedAt: stored.CreatedAt,
	}
	if token.Expired(r.now()) {
		return nil, ErrTokenNotFound
	}
	return token, nil
}

func (r *redisTokenRepository) Revoke(ctx context.Context, jti string) error {
	return r.client.Del(ctx, r.key(jti)).Err()
}

var errDuplicateToken = errors.New("duplicate token id")

type redisToken struct {
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
