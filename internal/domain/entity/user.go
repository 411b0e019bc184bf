package entity

import "time"

// Role rol de un usuario. Conjunto cerrado: ver Roles().
type Role string

// Roles válidos para User.
const (
	RoleAdmin         Role = "ADMIN"
	RoleMarketManager Role = "MARKET_MANAGER"
	RoleUser          Role = "USER"
)

// Roles devuelve los roles en orden fijo (admin, gestor, usuario).
func Roles() []Role {
	return []Role{RoleAdmin, RoleMarketManager, RoleUser}
}

// Valid indica si r pertenece al conjunto cerrado de roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMarketManager, RoleUser:
		return true
	}
	return false
}

// ParseRole convierte un string (sin distinguir mayúsculas) en Role.
func ParseRole(s string) (Role, bool) {
	r := Role(upperTrim(s))
	return r, r.Valid()
}

// User representa una cuenta del directorio: consumidor, gestor de mercado o administrador.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
