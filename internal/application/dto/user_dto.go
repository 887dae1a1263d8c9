package dto

import "time"

// CreateUserRequest entrada para crear un usuario. State vacío = ACTIVE.
type CreateUserRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	State          string `json:"state"`
}

// UpdateUserRequest entrada para actualización parcial de un usuario.
type UpdateUserRequest struct {
	FirstName      Optional[string] `json:"first_name" swaggertype:"string"`
	LastName       Optional[string] `json:"last_name" swaggertype:"string"`
	DocumentNumber Optional[string] `json:"document_number" swaggertype:"string"`
	Email          Optional[string] `json:"email" swaggertype:"string"`
	Role           Optional[string] `json:"role" swaggertype:"string"`
	State          Optional[string] `json:"state" swaggertype:"string"`
}

// ChangeUserStateRequest cuerpo de PATCH /users/:id/change-state.
type ChangeUserStateRequest struct {
	State string `json:"state"`
}

// ListUsersQuery filtros del listado de usuarios.
type ListUsersQuery struct {
	Role   string `query:"role"`
	State  string `query:"state"`
	Search string `query:"search"`
}

// UserResponse proyección de un usuario.
type UserResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	DocumentNumber string    `json:"document_number"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	State          string    `json:"state"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserListResponse listado sin paginación.
type UserListResponse struct {
	Count   int            `json:"count"`
	Results []UserResponse `json:"results"`
}

// UserStatsResponse totales, activos/inactivos y conteo por rol.
type UserStatsResponse struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"by_role"`
}

// TokenResponse token emitido para un usuario.
type TokenResponse struct {
	Token      string `json:"token"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ExpMinutes int    `json:"exp_minutes"`
}
