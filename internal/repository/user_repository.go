package repository

import (
	"context"

	"academic_records/internal/models"
	"academic_records/internal/storage"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// AssignRoles attaches roles to the user, creating missing role rows
	AssignRoles(ctx context.Context, user *models.User, roles ...models.RoleName) error
}

type userRepository struct {
	db *storage.DB
}

func NewUserRepository(db *storage.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) AssignRoles(ctx context.Context, user *models.User, roles ...models.RoleName) error {
	db := r.db.WithContext(ctx)
	rows := make([]models.Role, 0, len(roles))
	for _, name := range roles {
		role := models.Role{Name: name}
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
		rows = append(rows, role)
	}
	if err := db.Model(user).Association("Roles").Append(rows); err != nil {
		return err
	}
	return db.Model(user).Association("Roles").Find(&user.Roles)
}
