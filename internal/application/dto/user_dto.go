package dto

import "time"

// RegisterRequest entrada para registro público. El rol siempre es USER.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserListRequest filtros del listado de usuarios (ADMIN).
type UserListRequest struct {
	PageRequest
	Role string `query:"role" validate:"omitempty,oneof=ADMIN MARKET_MANAGER USER"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ChangeRoleRequest cambio de rol por parte de un ADMIN.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN MARKET_MANAGER USER"`
}
