package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
)

// MaxCommentLength longitud máxima del texto de un comentario, en caracteres.
const MaxCommentLength = 1000

// CommentUseCase comentarios y calificaciones de productos.
type CommentUseCase struct {
	comments repository.CommentRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewCommentUseCase construye el caso de uso.
func NewCommentUseCase(comments repository.CommentRepository, products repository.ProductRepository) *CommentUseCase {
	return &CommentUseCase{comments: comments, products: products, now: time.Now}
}

// ListByProduct comentarios del producto, más recientes primero.
func (uc *CommentUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.CommentResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.comments.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCommentResponse(c))
	}
	return out, nil
}

// Create registra la calificación (1..5) y el comentario del usuario sobre un producto.
func (uc *CommentUseCase) Create(ctx context.Context, actor Actor, productID string, in dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if !entity.ValidRating(in.Rating) {
		return nil, domain.ErrInvalidRating
	}
	content := strings.TrimSpace(in.Content)
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	comment := &entity.Comment{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    actor.UserID,
		Rating:    in.Rating,
		Content:   content,
		CreatedAt: uc.now(),
	}
	if err := uc.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	out := toCommentResponse(comment)
	return &out, nil
}

// Delete elimina un comentario. Solo su autor o un ADMIN.
func (uc *CommentUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	comment, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.ErrNotFound
	}
	if !actor.IsAdmin() && comment.UserID != actor.UserID {
		return domain.ErrForbidden
	}
	return uc.comments.Delete(ctx, id)
}

func toCommentResponse(c *entity.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		ProductID: c.ProductID,
		UserID:    c.UserID,
		Rating:    c.Rating,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
