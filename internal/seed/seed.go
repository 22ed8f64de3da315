// Package seed creates the baseline roles and one demo account per role.
package seed

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"academic_records/internal/models"
)

// DefaultPassword is the password of every seeded account
const DefaultPassword = "password"

type account struct {
	email string
	name  string
	role  models.RoleName
}

var accounts = []account{
	{email: "admin@example.com", name: "Admin User", role: models.RoleAdmin},
	{email: "teacher@example.com", name: "Teacher User", role: models.RoleTeacher},
	{email: "student@example.com", name: "Student User", role: models.RoleStudent},
}

// Run is idempotent: existing roles, users and assignments are left untouched
func Run(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	roles := make(map[models.RoleName]models.Role, len(models.AllRoles))
	for _, name := range models.AllRoles {
		role := models.Role{Name: name}
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
		roles[name] = role
	}

	for _, a := range accounts {
		var user models.User
		err := db.Where(models.User{Email: a.email}).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash, herr := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
			if herr != nil {
				return fmt.Errorf("hash password: %w", herr)
			}
			user = models.User{Name: a.name, Email: a.email, Password: string(hash)}
			err = db.Create(&user).Error
		}
		if err != nil {
			return fmt.Errorf("seed user %s: %w", a.email, err)
		}

		// Append skips assignments that already exist
		if err := db.Model(&user).Association("Roles").Append([]models.Role{roles[a.role]}); err != nil {
			return fmt.Errorf("assign %s to %s: %w", a.role, a.email, err)
		}
	}
	return nil
}
