package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"gorm.io/gorm"

	"academic_records/internal/models"
	"academic_records/pkg/config"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(config.DBConfig{Driver: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range []string{"users", "roles", "user_roles", "students", "teachers", "access_tokens"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(config.DBConfig{Driver: "oracle"}, nil); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), config.RedisConfig{Address: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	addr := mr.Addr()
	mr.Close()
	if _, err := NewRedisClient(context.Background(), config.RedisConfig{Address: addr}); err == nil {
		t.Fatal("expected error once redis is down")
	}
}

func TestGormLogsThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	db, err := Open(config.DBConfig{Driver: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared"}, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var user models.User
	if err := db.First(&user, 42).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("missing rows must not be logged: %s", buf.String())
	}

	if err := db.Exec("SELECT * FROM no_such_table").Error; err == nil {
		t.Fatal("expected query error")
	}
	out := buf.String()
	if !strings.Contains(out, `"level":"WARN"`) || !strings.Contains(out, "no_such_table") || !strings.Contains(out, `"component":"gorm"`) {
		t.Fatalf("query error not logged through slog: %s", out)
	}
}
