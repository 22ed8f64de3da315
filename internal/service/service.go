package service

import (
	"log/slog"

	"academic_records/internal/repository"
	"academic_records/internal/utils"
	"academic_records/internal/validation"
)

type Services struct {
	Auth    *AuthService
	Student *StudentService
	Teacher *TeacherService
}

func NewServices(repos *repository.Repositories, v *validation.Validator, issuer *utils.TokenIssuer, logger *slog.Logger) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.Token, issuer, v, logger),
		Student: NewStudentService(repos.Student, v, logger),
		Teacher: NewTeacherService(repos.Teacher, v, logger),
	}
}
