package repository

import (
	"context"

	"academic_records/internal/models"
	"academic_records/internal/storage"
)

type TeacherRepository interface {
	BaseRepository[models.Teacher]
	FindAll(ctx context.Context) ([]models.Teacher, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Teacher, error)
}

type teacherRepository struct {
	baseRepository[models.Teacher]
	db *storage.DB
}

func NewTeacherRepository(db *storage.DB) TeacherRepository {
	return &teacherRepository{baseRepository: newBaseRepository[models.Teacher](db), db: db}
}

// FindAll returns every teacher profile with their owners
func (r *teacherRepository) FindAll(ctx context.Context) ([]models.Teacher, error) {
	teachers := []models.Teacher{}
	err := r.db.WithContext(ctx).Preload("User.Roles").Order("id asc").Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepository) FindByUserID(ctx context.Context, userID uint) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.WithContext(ctx).Preload("User.Roles").Where("user_id = ?", userID).First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}
