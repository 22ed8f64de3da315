package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"academic_records/internal/models"
	"academic_records/internal/policy"
	"academic_records/internal/validation"
)

type profileRepository[T any] interface {
	Create(ctx context.Context, model *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Updates(ctx context.Context, model *T, fields map[string]interface{}) error
	Delete(ctx context.Context, model *T) error
	FindAll(ctx context.Context) ([]T, error)
	FindByUserID(ctx context.Context, userID uint) (*T, error)
}

type owned interface {
	OwnerID() uint
}

// Listing is the result of a list call: every record, or only the caller's own one
type Listing[T any] struct {
	Scope policy.Decision
	All   []T
	Own   *T // nil when the caller has no profile yet
}

// profileService runs authorize -> validate -> mutate for one profile kind
type profileService[T any] struct {
	kind       string
	repo       profileRepository[T]
	rules      policy.Rules
	createRule validation.Schema
	updateRule validation.Schema
	selfRule   validation.Schema
	// idField is reported when a write hits a unique index no rule caught
	idField   string
	dates     []string
	build     func(columns map[string]interface{}) *T
	validator *validation.Validator
	logger    *slog.Logger
}

func ownerOf[T any](model *T) uint {
	return any(model).(owned).OwnerID()
}

func (s *profileService[T]) List(ctx context.Context, caller policy.Caller) (*Listing[T], error) {
	decision := s.rules.Can(caller, policy.ActionList, 0)
	switch decision {
	case policy.AllowAll:
		all, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", s.kind, err)
		}
		return &Listing[T]{Scope: decision, All: all}, nil
	case policy.AllowOwn:
		own, err := s.repo.FindByUserID(ctx, caller.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Listing[T]{Scope: decision}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("find own %s: %w", s.kind, err)
		}
		return &Listing[T]{Scope: decision, Own: own}, nil
	default:
		return nil, ErrForbidden
	}
}

func (s *profileService[T]) Get(ctx context.Context, caller policy.Caller, id uint) (*T, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.rules.Can(caller, policy.ActionView, ownerOf(record)).Allowed() {
		return nil, ErrForbidden
	}
	return record, nil
}

// Create stores a new record. A nil payload stands for a body that could not be
// decoded; it is rejected only after the caller passed authorization.
func (s *profileService[T]) Create(ctx context.Context, caller policy.Caller, payload map[string]interface{}) (*T, error) {
	if !s.rules.Can(caller, policy.ActionCreate, 0).Allowed() {
		return nil, ErrForbidden
	}
	if payload == nil {
		return nil, ErrMalformedBody
	}

	payload = s.createRule.Pick(payload)
	if err := s.validator.Validate(ctx, s.createRule, payload); err != nil {
		return nil, err
	}
	columns, err := s.columns(payload)
	if err != nil {
		return nil, err
	}

	record := s.build(columns)
	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.conflict(ctx, s.createRule, payload)
		}
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}

	s.logger.InfoContext(ctx, s.kind+" created", "user_id", columns["user_id"], "by", caller.UserID)
	return record, nil
}

// Update applies a partial update. Admins may change every field; owners only
// the self-service subset, any other supplied key is dropped.
func (s *profileService[T]) Update(ctx context.Context, caller policy.Caller, id uint, payload map[string]interface{}) (*T, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	var schema validation.Schema
	switch s.rules.Can(caller, policy.ActionUpdate, ownerOf(record)) {
	case policy.AllowAll:
		schema = s.updateRule
	case policy.AllowOwn:
		schema = s.selfRule
	default:
		return nil, ErrForbidden
	}
	if payload == nil {
		return nil, ErrMalformedBody
	}

	ctx = validation.IgnoreID(ctx, id)
	payload = schema.Pick(payload)
	if err := s.validator.Validate(ctx, schema, payload); err != nil {
		return nil, err
	}
	columns, err := s.columns(payload)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Updates(ctx, record, columns); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.conflict(ctx, schema, payload)
		}
		return nil, fmt.Errorf("update %s %d: %w", s.kind, id, err)
	}

	s.logger.InfoContext(ctx, s.kind+" updated", "id", id, "fields", len(columns), "by", caller.UserID)
	return s.find(ctx, id)
}

func (s *profileService[T]) Delete(ctx context.Context, caller policy.Caller, id uint) error {
	record, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !s.rules.Can(caller, policy.ActionDelete, ownerOf(record)).Allowed() {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, record); err != nil {
		return fmt.Errorf("delete %s %d: %w", s.kind, id, err)
	}

	s.logger.InfoContext(ctx, s.kind+" deleted", "id", id, "by", caller.UserID)
	return nil
}

func (s *profileService[T]) find(ctx context.Context, id uint) (*T, error) {
	record, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %d: %w", s.kind, id, err)
	}
	return record, nil
}

// conflict explains a unique violation raised by the database, typically a
// concurrent write that passed validation at the same time as this one
func (s *profileService[T]) conflict(ctx context.Context, schema validation.Schema, payload map[string]interface{}) error {
	err := s.validator.Validate(ctx, schema, payload)
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr
	}
	if err != nil {
		return err
	}
	return validation.NewError(s.idField, "unique")
}

// columns converts validated JSON values to column values
func (s *profileService[T]) columns(payload map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(payload))
	for field, value := range payload {
		out[field] = value
	}
	if v, ok := out["user_id"]; ok {
		id, err := toUint(v)
		if err != nil {
			return nil, validation.NewError("user_id", "integer")
		}
		out["user_id"] = id
	}
	for _, field := range s.dates {
		v, ok := out[field]
		if !ok {
			continue
		}
		str, _ := v.(string)
		d, err := models.ParseDate(str)
		if err != nil {
			return nil, validation.NewError(field, "date")
		}
		out[field] = d
	}
	return out, nil
}

func toUint(v interface{}) (uint, error) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != float64(uint(n)) {
			return 0, fmt.Errorf("not an id: %v", n)
		}
		return uint(n), nil
	case int:
		if n < 0 {
			return 0, fmt.Errorf("not an id: %v", n)
		}
		return uint(n), nil
	case string:
		u, err := strconv.ParseUint(strings.TrimSpace(n), 10, 64)
		return uint(u), err
	default:
		return 0, fmt.Errorf("not an id: %T", v)
	}
}
