package models

import "time"

// Student is the student profile of a user. Rows are hard-deleted.
type Student struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	StudentIDNumber string    `gorm:"size:100;uniqueIndex;not null" json:"student_id_number"`
	DateOfBirth     Date      `gorm:"not null" json:"date_of_birth"`
	Address         string    `gorm:"not null" json:"address"`
	PhoneNumber     string    `gorm:"size:50;not null" json:"phone_number"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	User            *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`
}

// OwnerID returns the id of the user the profile belongs to
func (s *Student) OwnerID() uint { return s.UserID }
