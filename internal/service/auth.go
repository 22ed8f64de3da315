package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"academic_records/internal/models"
	"academic_records/internal/repository"
	"academic_records/internal/utils"
	"academic_records/internal/validation"
)

// tokenName labels every token issued by register and login
const tokenName = "auth_token"

// AuthService issues and revokes bearer tokens against the user store
type AuthService struct {
	users     repository.UserRepository
	tokens    repository.TokenRepository
	issuer    *utils.TokenIssuer
	validator *validation.Validator
	logger    *slog.Logger
	hashCost  int
}

func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, issuer *utils.TokenIssuer, v *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		issuer:    issuer,
		validator: v,
		logger:    logger,
		hashCost:  bcrypt.DefaultCost,
	}
}

// Register creates an account without roles and signs it in
func (s *AuthService) Register(ctx context.Context, payload map[string]interface{}) (*models.User, *utils.IssuedToken, error) {
	if err := s.validator.Validate(ctx, validation.Register, payload); err != nil {
		return nil, nil, err
	}
	name, _ := payload["name"].(string)
	email, _ := payload["email"].(string)
	password, _ := payload["password"].(string)

	// bcrypt hash; the plain password is never stored
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Name: name, Email: email, Password: string(hashedPassword)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, validation.NewError("email", "unique")
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, token, nil
}

// Login checks the credentials and issues a new token
func (s *AuthService) Login(ctx context.Context, payload map[string]interface{}) (*models.User, *utils.IssuedToken, error) {
	if err := s.validator.Validate(ctx, validation.Login, payload); err != nil {
		return nil, nil, err
	}
	email, _ := payload["email"].(string)
	password, _ := payload["password"].(string)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its user. Revoked tokens fail at once.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (*models.User, *models.AccessToken, error) {
	claims, err := s.issuer.ParseToken(bearer)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}

	token, err := s.tokens.FindActive(ctx, claims.Id)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil, nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find token: %w", err)
	}
	if token.UserID != userID {
		return nil, nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	return user, token, nil
}

// Logout revokes the token identified by jti
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if err := s.tokens.Revoke(ctx, jti); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.InfoContext(ctx, "token revoked")
	return nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*utils.IssuedToken, error) {
	issued, err := s.issuer.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	record := &models.AccessToken{
		JTI:       issued.JTI,
		UserID:    user.ID,
		Name:      tokenName,
		ExpiresAt: issued.ExpiresAt,
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return issued, nil
}
