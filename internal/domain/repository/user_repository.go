package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// UserFilter criterios de listado de usuarios. Role vacío = todos.
type UserFilter struct {
	Role   entity.Role
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	// ListAll devuelve todos los usuarios ordenados por created_at, id (orden estable para estadísticas).
	ListAll(ctx context.Context) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id string, role entity.Role, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
