package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
	"github.com/jhoicas/Agromercados-api/pkg/textnorm"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id::text, market_id::text, COALESCE(base_id::text, ''), name, description, category, unit,
	price, is_available, sas_program, image_url, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, market_id, base_id, name, description, category, unit, price,
		                      is_available, sas_program, image_url, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.MarketID, nullIfEmpty(p.BaseID), p.Name, p.Description, string(p.Category), p.Unit, p.Price,
		p.IsAvailable, p.SASProgram, p.ImageURL, textnorm.Fold(p.Name), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List lista productos con filtros opcionales y paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR market_id::text = $1)
		  AND ($2 = '' OR category = $2)
		  AND ($3::boolean IS NULL OR is_available = $3)
		  AND ($4::boolean IS NULL OR sas_program = $4)
		  AND ($5 = '' OR search_text LIKE $5 ESCAPE '\')
		ORDER BY created_at DESC, id
		LIMIT $6 OFFSET $7`
	return r.list(ctx, query,
		f.MarketID, string(f.Category), f.Available, f.SAS, textnorm.LikePattern(f.Query), limit, offset)
}

// ListAll devuelve todos los productos en orden de creación.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
}

// ListByMarket devuelve los productos de un mercado en orden de creación.
func (r *ProductRepo) ListByMarket(ctx context.Context, marketID string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE market_id = $1 ORDER BY created_at, id`, marketID)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente (no cambia de mercado ni de imagen).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET base_id = $2, name = $3, description = $4, category = $5, unit = $6, price = $7,
		       is_available = $8, sas_program = $9, search_text = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, nullIfEmpty(p.BaseID), p.Name, p.Description, string(p.Category), p.Unit, p.Price,
		p.IsAvailable, p.SASProgram, textnorm.Fold(p.Name), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateImage guarda la URL de la imagen del producto.
func (r *ProductRepo) UpdateImage(ctx context.Context, id, imageURL string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET image_url = $2, updated_at = now() WHERE id = $1`, id, imageURL)
	if err != nil {
		return fmt.Errorf("update product image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID; sus comentarios caen en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var category string
	if err := row.Scan(&p.ID, &p.MarketID, &p.BaseID, &p.Name, &p.Description, &category, &p.Unit,
		&p.Price, &p.IsAvailable, &p.SASProgram, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Category = entity.Category(category)
	return &p, nil
}
