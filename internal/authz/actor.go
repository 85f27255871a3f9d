package authz

import "endowal/internal/domain"

// Actor is the authenticated identity a verdict is computed for. It replaces
// scattered role-literal checks: handlers pass it to the Resolver and never
// inspect roles themselves.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool   { return a.Role == domain.RoleAdmin }
func (a Actor) IsTeacher() bool { return a.Role == domain.RoleTeacher }
func (a Actor) IsStudent() bool { return a.Role == domain.RoleStudent }
