package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "ADMIN"
	RoleStaff      = "STAFF"
	RoleTechnician = "TECHNICIAN"
)

// Estados válidos para User.
const (
	UserStateActive   = "ACTIVE"
	UserStateInactive = "INACTIVE"
)

// Longitudes mínimas de los campos de User.
const (
	UserNameMin     = 2
	UserDocumentMin = 5
)

// User representa un funcionario del sistema (administrador, funcionario o técnico).
type User struct {
	ID             string
	FirstName      string
	LastName       string
	DocumentNumber string // único
	Email          string // único
	Role           string // ADMIN, STAFF, TECHNICIAN
	State          string // ACTIVE, INACTIVE
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName nombre y apellidos; no se persiste.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsActive informa si el usuario está activo.
func (u *User) IsActive() bool { return u.State == UserStateActive }

// IsAdmin informa si el usuario es administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserRoles devuelve los roles válidos.
func UserRoles() []string {
	return []string{RoleAdmin, RoleStaff, RoleTechnician}
}

// UserStates devuelve los estados válidos.
func UserStates() []string {
	return []string{UserStateActive, UserStateInactive}
}

// IsValidRole informa si r es un rol permitido.
func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleTechnician:
		return true
	}
	return false
}

// IsValidUserState informa si s es un estado de usuario permitido.
func IsValidUserState(s string) bool {
	return s == UserStateActive || s == UserStateInactive
}
