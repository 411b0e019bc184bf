package repository

import (
	"context"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// RatingSummary cantidad de comentarios y suma de calificaciones de un producto.
type RatingSummary struct {
	Count int
	Sum   int
}

// CommentRepository define el puerto de persistencia para Comment.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Comment, error)
	ListByMarket(ctx context.Context, marketID string) ([]*entity.Comment, error)
	ListAll(ctx context.Context) ([]*entity.Comment, error)
	Summary(ctx context.Context, productID string) (RatingSummary, error)
	Delete(ctx context.Context, id string) error
}
