package models

// RoleName is a permission label a user can hold
type RoleName string

const (
	RoleAdmin   RoleName = "admin"   // full access to every profile
	RoleTeacher RoleName = "teacher" // reads students, owns a teacher profile
	RoleStudent RoleName = "student" // owns a student profile
)

// AllRoles lists every role the system knows about, in seeding order
var AllRoles = []RoleName{RoleAdmin, RoleTeacher, RoleStudent}

// Valid reports whether r is one of the known roles
func (r RoleName) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Role is a row of the roles table
type Role struct {
	ID   uint     `gorm:"primaryKey" json:"id"`
	Name RoleName `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// RoleSet is the set of roles held by a caller
type RoleSet map[RoleName]struct{}

// NewRoleSet builds a set, ignoring unknown role names
func NewRoleSet(roles ...RoleName) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		if r.Valid() {
			set[r] = struct{}{}
		}
	}
	return set
}

// Has reports whether the set contains role
func (s RoleSet) Has(role RoleName) bool {
	_, ok := s[role]
	return ok
}

// HasAny reports whether the set contains at least one of roles
func (s RoleSet) HasAny(roles ...RoleName) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Empty reports whether no role is held
func (s RoleSet) Empty() bool {
	return len(s) == 0
}
