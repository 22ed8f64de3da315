// Package policy decides who may do what to a profile. Decisions are pure:
// they look only at the caller and the owner of the target record.
package policy

import "academic_records/internal/models"

// Action describes the kind of operation a caller wants to perform.
type Action string

const (
	ActionList   Action = "list"
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Caller is the authenticated identity an operation runs on behalf of
type Caller struct {
	UserID uint
	Roles  models.RoleSet
}

// NewCaller builds a caller from a user loaded with its roles
func NewCaller(user *models.User) Caller {
	return Caller{UserID: user.ID, Roles: user.RoleSet()}
}

// Decision is the outcome of a policy check
type Decision int

const (
	// Deny rejects the request
	Deny Decision = iota
	// AllowAll grants the action on any record (admin-level, or read-all roles for list/view)
	AllowAll
	// AllowOwn grants the action on the caller's own record only
	AllowOwn
)

// Allowed reports whether the decision grants anything
func (d Decision) Allowed() bool { return d != Deny }

// Rules is the policy of one profile resource
type Rules struct {
	// Readers may list and view every record
	Readers []models.RoleName
	// Owner is the role whose holders may view and partially update their own record
	Owner models.RoleName
}

var (
	// Students are readable by admins and teachers, owned by students
	Students = Rules{Readers: []models.RoleName{models.RoleAdmin, models.RoleTeacher}, Owner: models.RoleStudent}
	// Teachers are readable by admins only, owned by teachers
	Teachers = Rules{Readers: []models.RoleName{models.RoleAdmin}, Owner: models.RoleTeacher}
)

// Can decides action for caller. owner is the user id of the target record;
// it is ignored for list and create.
func (r Rules) Can(caller Caller, action Action, owner uint) Decision {
	if caller.Roles.Empty() {
		return Deny
	}
	switch action {
	case ActionList:
		return r.List(caller)
	case ActionView:
		return r.View(caller, owner)
	case ActionUpdate:
		return r.Update(caller, owner)
	case ActionCreate:
		return r.Create(caller)
	case ActionDelete:
		return r.Delete(caller)
	default:
		return Deny
	}
}

// List returns AllowAll for readers and AllowOwn for the owner role
func (r Rules) List(caller Caller) Decision {
	switch {
	case caller.Roles.HasAny(r.Readers...):
		return AllowAll
	case caller.Roles.Has(r.Owner):
		return AllowOwn
	default:
		return Deny
	}
}

// View allows readers on any record and owners on their own one
func (r Rules) View(caller Caller, owner uint) Decision {
	switch {
	case caller.Roles.HasAny(r.Readers...):
		return AllowAll
	case caller.Roles.Has(r.Owner) && caller.UserID == owner:
		return AllowOwn
	default:
		return Deny
	}
}

// Update gives admins every field and owners the self-service subset
func (r Rules) Update(caller Caller, owner uint) Decision {
	switch {
	case caller.Roles.Has(models.RoleAdmin):
		return AllowAll
	case caller.Roles.Has(r.Owner) && caller.UserID == owner:
		return AllowOwn
	default:
		return Deny
	}
}

// Create and Delete are reserved to admins
func (r Rules) Create(caller Caller) Decision { return adminOnly(caller) }

func (r Rules) Delete(caller Caller) Decision { return adminOnly(caller) }

func adminOnly(caller Caller) Decision {
	if caller.Roles.Has(models.RoleAdmin) {
		return AllowAll
	}
	return Deny
}
