package repository

import (
	"github.com/redis/go-redis/v9"

	"academic_records/internal/storage"
)

type Repositories struct {
	User    UserRepository
	Student StudentRepository
	Teacher TeacherRepository
	Token   TokenRepository
}

// NewRepositories keeps tokens in redis when a client is given, otherwise in the database
func NewRepositories(db *storage.DB, redisClient *redis.Client) *Repositories {
	tokens := NewTokenRepository(db)
	if redisClient != nil {
		tokens = NewRedisTokenRepository(redisClient)
	}
	return &Repositories{
		User:    NewUserRepository(db),
		Student: NewStudentRepository(db),
		Teacher: NewTeacherRepository(db),
		Token:   tokens,
	}
}
