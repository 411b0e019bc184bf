package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

const commentColumns = `c.id::text, c.product_id::text, c.user_id::text, c.rating, c.content, c.created_at`

// CommentRepo comentarios y calificaciones sobre PostgreSQL.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador de comentarios.
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

// Create persiste un comentario. Producto o usuario inexistente → ErrNotFound.
func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO comments (id, product_id, user_id, rating, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.ProductID, c.UserID, c.Rating, c.Content, c.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID obtiene un comentario por ID.
func (r *CommentRepo) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := scanComment(r.q.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments c WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

// ListByProduct devuelve los comentarios de un producto, más recientes primero.
func (r *CommentRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments c WHERE c.product_id = $1 ORDER BY c.created_at DESC, c.id`, productID)
}

// ListByMarket devuelve los comentarios de todos los productos de un mercado, en orden de creación.
func (r *CommentRepo) ListByMarket(ctx context.Context, marketID string) ([]*entity.Comment, error) {
	return r.list(ctx, `
		SELECT `+commentColumns+` FROM comments c
		JOIN products p ON p.id = c.product_id
		WHERE p.market_id = $1
		ORDER BY c.created_at, c.id`, marketID)
}

// ListAll devuelve todos los comentarios en orden de creación.
func (r *CommentRepo) ListAll(ctx context.Context) ([]*entity.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments c ORDER BY c.created_at, c.id`)
}

func (r *CommentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Comment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Summary cantidad y suma de calificaciones de un producto (COALESCE → 0 sin comentarios).
func (r *CommentRepo) Summary(ctx context.Context, productID string) (repository.RatingSummary, error) {
	var s repository.RatingSummary
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*)::int, COALESCE(SUM(rating), 0)::int
		FROM comments WHERE product_id = $1`, productID).Scan(&s.Count, &s.Sum)
	if err != nil {
		return repository.RatingSummary{}, fmt.Errorf("comment summary: %w", err)
	}
	return s, nil
}

// Delete elimina un comentario.
func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var c entity.Comment
	var rating int16
	if err := row.Scan(&c.ID, &c.ProductID, &c.UserID, &rating, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Rating = int(rating)
	return &c, nil
}
