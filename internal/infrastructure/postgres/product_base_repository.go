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

var _ repository.ProductBaseRepository = (*ProductBaseRepo)(nil)

const productBaseColumns = `id::text, name, category, unit, description, nutrition, reference_price, created_at, updated_at`

// ProductBaseRepo catálogo de plantillas sobre PostgreSQL.
type ProductBaseRepo struct {
	q Querier
}

// NewProductBaseRepository construye el adaptador del catálogo.
func NewProductBaseRepository(q Querier) *ProductBaseRepo {
	return &ProductBaseRepo{q: q}
}

// Create persiste una plantilla. El nombre es único.
func (r *ProductBaseRepo) Create(ctx context.Context, b *entity.ProductBase) error {
	query := `
		INSERT INTO product_bases (id, name, category, unit, description, nutrition, reference_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, string(b.Category), b.Unit, b.Description, b.Nutrition, b.ReferencePrice, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product base: %w", err)
	}
	return nil
}

// GetByID obtiene una plantilla por ID.
func (r *ProductBaseRepo) GetByID(ctx context.Context, id string) (*entity.ProductBase, error) {
	b, err := scanProductBase(r.q.QueryRow(ctx, `SELECT `+productBaseColumns+` FROM product_bases WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product base: %w", err)
	}
	return b, nil
}

// List devuelve el catálogo, opcionalmente filtrado por categoría.
func (r *ProductBaseRepo) List(ctx context.Context, category entity.Category) ([]*entity.ProductBase, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productBaseColumns+` FROM product_bases
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at, id`, string(category))
	if err != nil {
		return nil, fmt.Errorf("list product bases: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductBase
	for rows.Next() {
		b, err := scanProductBase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product base: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Update actualiza una plantilla.
func (r *ProductBaseRepo) Update(ctx context.Context, b *entity.ProductBase) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE product_bases SET name = $2, category = $3, unit = $4, description = $5, nutrition = $6,
		       reference_price = $7, updated_at = $8
		WHERE id = $1`,
		b.ID, b.Name, string(b.Category), b.Unit, b.Description, b.Nutrition, b.ReferencePrice, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product base: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una plantilla; los productos derivados quedan con base_id NULL.
func (r *ProductBaseRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_bases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product base: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProductBase(row pgx.Row) (*entity.ProductBase, error) {
	var b entity.ProductBase
	var category string
	if err := row.Scan(&b.ID, &b.Name, &category, &b.Unit, &b.Description, &b.Nutrition,
		&b.ReferencePrice, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Category = entity.Category(category)
	return &b, nil
}
