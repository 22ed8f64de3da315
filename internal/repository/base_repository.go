package repository

import (
	"context"

	"academic_records/internal/storage"
)

// BaseRepository holds the CRUD shared by the profile repositories
type BaseRepository[T any] interface {
	Create(ctx context.Context, model *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Updates(ctx context.Context, model *T, fields map[string]interface{}) error
	Delete(ctx context.Context, model *T) error
}

type baseRepository[T any] struct {
	db *storage.DB
}

func newBaseRepository[T any](db *storage.DB) baseRepository[T] {
	return baseRepository[T]{db: db}
}

func (r baseRepository[T]) Create(ctx context.Context, model *T) error {
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID returns gorm.ErrRecordNotFound when no row matches
func (r baseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var model T
	if err := r.db.WithContext(ctx).Preload("User.Roles").First(&model, id).Error; err != nil {
		return nil, err
	}
	return &model, nil
}

// Updates writes only the given columns
func (r baseRepository[T]) Updates(ctx context.Context, model *T, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(model).Updates(fields).Error
}

func (r baseRepository[T]) Delete(ctx context.Context, model *T) error {
	return r.db.WithContext(ctx).Delete(model).Error
}
