package lifecycle

// Role is an identity claim supplied by the auth layer. It is trusted as
// already authenticated and treated as immutable for the duration of one
// operation.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Actor is the acting identity threaded explicitly into every operation.
// There is deliberately no ambient "current actor" state in this package.
type Actor struct {
	ID   uint
	Role Role
}

// IsReviewer reports whether the role carries moderation privilege.
func (r Role) IsReviewer() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// CanCreateTask allows admins and super-admins to author tasks.
func CanCreateTask(actor Actor) error {
	if !actor.Role.IsReviewer() {
		return denied("insufficient privilege to create tasks")
	}
	return nil
}

// CanReviewTask allows admins and super-admins to approve or reject a task,
// except the task's own author (self-review forbidden).
func CanReviewTask(actor Actor, createdBy uint) error {
	if !actor.Role.IsReviewer() {
		return denied("insufficient privilege to review tasks")
	}
	if actor.ID == createdBy {
		return denied("cannot review your own task")
	}
	return nil
}

// CanEditTask allows only the original author to edit fields.
func CanEditTask(actor Actor, createdBy uint) error {
	if !actor.Role.IsReviewer() {
		return denied("insufficient privilege to edit tasks")
	}
	if actor.ID != createdBy {
		return denied("only the task author can edit it")
	}
	return nil
}

// CanDeleteTask allows the original author or any reviewing actor.
func CanDeleteTask(actor Actor, createdBy uint) error {
	if actor.ID == createdBy {
		return nil
	}
	if !actor.Role.IsReviewer() {
		return denied("insufficient privilege to delete tasks")
	}
	return nil
}

// CanReviewProof allows admins and super-admins to approve or reject a proof,
// except the submitting user regardless of role.
func CanReviewProof(actor Actor, submitterID uint) error {
	if actor.ID == submitterID {
		return denied("cannot review your own submission")
	}
	if !actor.Role.IsReviewer() {
		return denied("insufficient privilege to review submissions")
	}
	return nil
}

// CanManageAdmins restricts admin account management to super-admins.
func CanManageAdmins(actor Actor) error {
	if actor.Role != RoleSuperAdmin {
		return denied("insufficient privilege")
	}
	return nil
}

// CanManageUsers allows admins and super-admins to activate or deactivate end
// user accounts.
func CanManageUsers(actor Actor) error {
	if !actor.Role.IsReviewer() {
		return denied("insufficient privilege")
	}
	return nil
}
