package models

import "time"

// Teacher is the teacher profile of a user. Rows are hard-deleted.
type Teacher struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	EmployeeIDNumber string    `gorm:"size:100;uniqueIndex;not null" json:"employee_id_number"`
	DateOfHire       Date      `gorm:"not null" json:"date_of_hire"`
	Department       string    `gorm:"size:255;not null" json:"department"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	User             *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`
}

// OwnerID returns the id of the user the profile belongs to
func (t *Teacher) OwnerID() uint { return t.UserID }
