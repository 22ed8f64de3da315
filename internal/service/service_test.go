package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"academic_records/internal/models"
	"academic_records/internal/policy"
	"academic_records/internal/repository"
	"academic_records/internal/storage"
	"academic_records/internal/testutil"
	"academic_records/internal/utils"
	"academic_records/internal/validation"
)

func newTestServices(t *testing.T) (*Services, *storage.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	services := NewServices(repository.NewRepositories(db, nil), validation.New(db), utils.NewTokenIssuer("test-secret", time.Hour), logger)
	services.Auth.hashCost = bcrypt.MinCost
	return services, db
}

func callerFor(t *testing.T, db *storage.DB, email string, roles ...models.RoleName) policy.Caller {
	t.Helper()
	return policy.NewCaller(testutil.CreateUser(t, db, email, roles...))
}

func studentPayload(userID uint, number string) map[string]interface{} {
	return map[string]interface{}{
		"user_id":           float64(userID),
		"student_id_number": number,
		"date_of_birth":     "2001-05-06",
		"address":           "1 Main St",
		"phone_number":      "555-0100",
	}
}

func TestAuthRoundTrip(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()

	user, issued, err := s.Auth.Register(ctx, map[string]interface{}{
		"name":                  "New User",
		"email":                 "new@example.com",
		"password":              "password",
		"password_confirmation": "password",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(user.Roles) != 0 {
		t.Fatalf("registered users start without roles: %+v", user.Roles)
	}
	if user.Password == "password" {
		t.Fatal("password stored in plain text")
	}

	got, token, err := s.Auth.Authenticate(ctx, issued.Token)
	if err != nil || got.ID != user.ID || token.JTI != issued.JTI {
		t.Fatalf("authenticate: %v %+v", err, got)
	}

	if err := s.Auth.Logout(ctx, token.JTI); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := s.Auth.Authenticate(ctx, issued.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("revoked token accepted: %v", err)
	}
}

func TestRegisterRejectsMismatchedConfirmation(t *testing.T) {
	s, _ := newTestServices(t)
	_, _, err := s.Auth.Register(context.Background(), map[string]interface{}{
		"name":                  "User",
		"email":                 "u@example.com",
		"password":              "password",
		"password_confirmation": "different",
	})
	var verr *validation.Error
	if !errors.As(err, &verr) || !verr.Has("password") {
		t.Fatalf("expected password violation, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	s, db := newTestServices(t)
	ctx := context.Background()
	testutil.CreateUser(t, db, "known@example.com")

	if _, _, err := s.Auth.Login(ctx, map[string]interface{}{"email": "known@example.com", "password": "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := s.Auth.Login(ctx, map[string]interface{}{"email": "ghost@example.com", "password": "password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}
	if _, issued, err := s.Auth.Login(ctx, map[string]interface{}{"email": "known@example.com", "password": "password"}); err != nil || issued.Token == "" {
		t.Fatalf("login: %v", err)
	}
}

func TestAuthenticateRejectsForeignSignature(t *testing.T) {
	s, db := newTestServices(t)
	user := testutil.CreateUser(t, db, "x@example.com")
	forged, err := utils.NewTokenIssuer("other-secret", time.Hour).GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := s.Auth.Authenticate(context.Background(), forged.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("forged token accepted: %v", err)
	}
}

func TestStudentServiceOrdering(t *testing.T) {
	s, db := newTestServices(t)
	ctx := context.Background()
	admin := callerFor(t, db, "admin@example.com", models.RoleAdmin)
	teacher := callerFor(t, db, "teacher@example.com", models.RoleTeacher)
	owner := callerFor(t, db, "owner@example.com", models.RoleStudent)

	// not found wins over denial
	if _, err := s.Student.Get(ctx, owner, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing record: %v", err)
	}
	// denial wins over validation
	if _, err := s.Student.Create(ctx, teacher, map[string]interface{}{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("teacher create: %v", err)
	}

	created, err := s.Student.Create(ctx, admin, studentPayload(owner.UserID, "S-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Student.Update(ctx, teacher, created.ID, map[string]interface{}{"address": "x"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("teacher update: %v", err)
	}
	if err := s.Student.Delete(ctx, owner, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("owner delete: %v", err)
	}

	listing, err := s.Student.List(ctx, owner)
	if err != nil || listing.Scope != policy.AllowOwn || listing.Own == nil || listing.Own.ID != created.ID {
		t.Fatalf("own listing: %v %+v", err, listing)
	}
	listing, err = s.Student.List(ctx, teacher)
	if err != nil || listing.Scope != policy.AllowAll || len(listing.All) != 1 {
		t.Fatalf("teacher listing: %v %+v", err, listing)
	}

	if err := s.Student.Delete(ctx, admin, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Student.Get(ctx, admin, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted record still visible: %v", err)
	}
}

func TestUpdateSelfSubset(t *testing.T) {
	s, db := newTestServices(t)
	ctx := context.Background()
	admin := callerFor(t, db, "admin@example.com", models.RoleAdmin)
	owner := callerFor(t, db, "owner@example.com", models.RoleTeacher)

	created, err := s.Teacher.Create(ctx, admin, map[string]interface{}{
		"user_id":            float64(owner.UserID),
		"employee_id_number": "T100",
		"date_of_hire":       "2024-01-01",
		"department":         "Math",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := s.Teacher.Update(ctx, owner, created.ID, map[string]interface{}{
		"department":         "History",
		"employee_id_number": "T200",
		"user_id":            float64(admin.UserID),
	})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if updated.Department != "History" || updated.EmployeeIDNumber != "T100" || updated.UserID != owner.UserID {
		t.Fatalf("self update touched protected fields: %+v", updated)
	}
	if updated.DateOfHire.String() != "2024-01-01" {
		t.Fatalf("absent field changed: %s", updated.DateOfHire)
	}
}

func TestConflictFallsBackToIdentifier(t *testing.T) {
	s, db := newTestServices(t)
	ctx := context.Background()
	admin := callerFor(t, db, "admin@example.com", models.RoleAdmin)
	first := testutil.CreateUser(t, db, "a@example.com", models.RoleStudent)
	second := testutil.CreateUser(t, db, "b@example.com", models.RoleStudent)

	if _, err := s.Student.Create(ctx, admin, studentPayload(first.ID, "S-1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	// a schema without the unique rule lets the write reach the index,
	// as a concurrent request would
	loose := validation.Schema{}
	for field, rule := range validation.StudentCreate {
		loose[field] = rule
	}
	loose["student_id_number"] = validation.Rule{Tags: "required,string"}
	s.Student.createRule = loose

	_, err := s.Student.Create(ctx, admin, studentPayload(second.ID, "S-1"))
	var verr *validation.Error
	if !errors.As(err, &verr) || !verr.Has("student_id_number") {
		t.Fatalf("expected student_id_number violation, got %v", err)
	}

	var count int64
	db.Model(&models.Student{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row, have %d", count)
	}
}

func TestMalformedPayloadAfterAuthorization(t *testing.T) {
	s, db := newTestServices(t)
	ctx := context.Background()
	admin := callerFor(t, db, "admin@example.com", models.RoleAdmin)
	owner := callerFor(t, db, "owner@example.com", models.RoleStudent)
	other := callerFor(t, db, "other@example.com", models.RoleStudent)

	created, err := s.Student.Create(ctx, admin, studentPayload(owner.UserID, "S-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.Student.Create(ctx, owner, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("denied create: %v", err)
	}
	if _, err := s.Student.Update(ctx, other, created.ID, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("denied update: %v", err)
	}
	if _, err := s.Student.Create(ctx, admin, nil); !errors.Is(err, ErrMalformedBody) {
		t.Fatalf("admin create: %v", err)
	}
	if _, err := s.Student.Update(ctx, owner, created.ID, nil); !errors.Is(err, ErrMalformedBody) {
		t.Fatalf("owner update: %v", err)
	}
}
