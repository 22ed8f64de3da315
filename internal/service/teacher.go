package service

import (
	"log/slog"

	"academic_records/internal/models"
	"academic_records/internal/policy"
	"academic_records/internal/repository"
	"academic_records/internal/validation"
)

// TeacherService manages teacher profiles
type TeacherService struct {
	profileService[models.Teacher]
}

func NewTeacherService(repo repository.TeacherRepository, v *validation.Validator, logger *slog.Logger) *TeacherService {
	return &TeacherService{profileService[models.Teacher]{
		kind:       "teacher",
		repo:       repo,
		rules:      policy.Teachers,
		createRule: validation.TeacherCreate,
		updateRule: validation.TeacherUpdate,
		selfRule:   validation.TeacherSelfUpdate,
		idField:    "employee_id_number",
		dates:      []string{"date_of_hire"},
		build:      newTeacher,
		validator:  v,
		logger:     logger,
	}}
}

func newTeacher(c map[string]interface{}) *models.Teacher {
	t := &models.Teacher{}
	t.UserID, _ = c["user_id"].(uint)
	t.EmployeeIDNumber, _ = c["employee_id_number"].(string)
	t.DateOfHire, _ = c["date_of_hire"].(models.Date)
	t.Department, _ = c["department"].(string)
	return t
}
