package repository

import (
	"context"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos. Los punteros nil no filtran.
type ProductFilter struct {
	MarketID  string
	Category  entity.Category
	Available *bool
	SAS       *bool
	Query     string
	Limit     int
	Offset    int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	ListByMarket(ctx context.Context, marketID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateImage(ctx context.Context, id, imageURL string) error
	Delete(ctx context.Context, id string) error
}

// ProductBaseRepository persistencia del catálogo de plantillas.
type ProductBaseRepository interface {
	Create(ctx context.Context, base *entity.ProductBase) error
	GetByID(ctx context.Context, id string) (*entity.ProductBase, error)
	// List devuelve el catálogo completo (category vacío) o filtrado por categoría, ordenado por created_at, id.
	List(ctx context.Context, category entity.Category) ([]*entity.ProductBase, error)
	Update(ctx context.Context, base *entity.ProductBase) error
	Delete(ctx context.Context, id string) error
}
