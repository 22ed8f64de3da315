package repository

import (
	"context"

	"academic_records/internal/models"
	"academic_records/internal/storage"
)

type StudentRepository interface {
	BaseRepository[models.Student]
	FindAll(ctx context.Context) ([]models.Student, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Student, error)
}

type studentRepository struct {
	baseRepository[models.Student]
	db *storage.DB
}

func NewStudentRepository(db *storage.DB) StudentRepository {
	return &studentRepository{baseRepository: newBaseRepository[models.Student](db), db: db}
}

// FindAll returns every student profile with their owners
func (r *studentRepository) FindAll(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	err := r.db.WithContext(ctx).Preload("User.Roles").Order("id asc").Find(&students).Error
	return students, err
}

func (r *studentRepository) FindByUserID(ctx context.Context, userID uint) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Preload("User.Roles").Where("user_id = ?", userID).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}
