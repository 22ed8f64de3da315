// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"academic_records/internal/models"
	"academic_records/internal/storage"
	"academic_records/pkg/config"
)

// NewDB opens a migrated in-memory sqlite database private to t
func NewDB(t *testing.T) *storage.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := storage.Open(config.DBConfig{Driver: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"}, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// CreateUser inserts a user holding roles; the password is "password"
func CreateUser(t *testing.T, db *storage.DB, email string, roles ...models.RoleName) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{Name: email, Email: email, Password: string(hash)}
	for _, name := range roles {
		role := models.Role{Name: name}
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			t.Fatalf("role %s: %v", name, err)
		}
		user.Roles = append(user.Roles, role)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("user %s: %v", email, err)
	}
	return user
}
