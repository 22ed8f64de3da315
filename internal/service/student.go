package service

import (
	"log/slog"

	"academic_records/internal/models"
	"academic_records/internal/policy"
	"academic_records/internal/repository"
	"academic_records/internal/validation"
)

// StudentService manages student profiles
type StudentService struct {
	profileService[models.Student]
}

func NewStudentService(repo repository.StudentRepository, v *validation.Validator, logger *slog.Logger) *StudentService {
	return &StudentService{profileService[models.Student]{
		kind:       "student",
		repo:       repo,
		rules:      policy.Students,
		createRule: validation.StudentCreate,
		updateRule: validation.StudentUpdate,
		selfRule:   validation.StudentSelfUpdate,
		idField:    "student_id_number",
		dates:      []string{"date_of_birth"},
		build:      newStudent,
		validator:  v,
		logger:     logger,
	}}
}

func newStudent(c map[string]interface{}) *models.Student {
	s := &models.Student{}
	s.UserID, _ = c["user_id"].(uint)
	s.StudentIDNumber, _ = c["student_id_number"].(string)
	s.DateOfBirth, _ = c["date_of_birth"].(models.Date)
	s.Address, _ = c["address"].(string)
	s.PhoneNumber, _ = c["phone_number"].(string)
	return s
}
