package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// ErrInvalidToken covers malformed, badly signed and expired tokens
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	jwt.StandardClaims
}

// UserID returns the subject as a user id
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %w", c.Subject, ErrInvalidToken)
	}
	return uint(id), nil
}

// TokenIssuer signs and verifies HS256 bearer tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssuedToken is a signed token with the claims that must be recorded server-side
type IssuedToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// GenerateToken signs a token for userID with a fresh random id
func (i *TokenIssuer) GenerateToken(userID uint) (*IssuedToken, error) {
	nowTime := i.now()
	expireTime := nowTime.Add(i.ttl)
	jti := uuid.NewString()

	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        jti,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  nowTime.Unix(),
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tokenClaims.SignedString(i.secret)
	if err != nil {
		return nil, err
	}
	return &IssuedToken{Token: signed, JTI: jti, ExpiresAt: time.Unix(expireTime.Unix(), 0)}, nil
}

// ParseToken checks signature, algorithm and expiry
func (i *TokenIssuer) ParseToken(token string) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tokenClaims.Claims.(*Claims)
	if !ok || !tokenClaims.Valid || claims.Id == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
