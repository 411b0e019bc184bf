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

var _ repository.MarketRepository = (*MarketRepo)(nil)

const marketColumns = `id::text, name, description, address, municipality, COALESCE(manager_id::text, ''), image_url, created_at, updated_at`

// MarketRepo implementación de MarketRepository sobre PostgreSQL (pool o tx).
type MarketRepo struct {
	q Querier
}

// NewMarketRepository construye el adaptador de mercados.
func NewMarketRepository(q Querier) *MarketRepo {
	return &MarketRepo{q: q}
}

func marketSearchText(m *entity.Market) string {
	return textnorm.Fold(m.Name + " " + m.Municipality)
}

// Create persiste un mercado. manager_id es UNIQUE: un gestor repetido devuelve ErrMarketHasManager.
func (r *MarketRepo) Create(ctx context.Context, m *entity.Market) error {
	query := `
		INSERT INTO markets (id, name, description, address, municipality, manager_id, image_url, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Description, m.Address, m.Municipality, nullIfEmpty(m.ManagerID), m.ImageURL,
		marketSearchText(m), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMarketHasManager
		}
		return fmt.Errorf("insert market: %w", err)
	}
	return nil
}

// GetByID obtiene un mercado por ID.
func (r *MarketRepo) GetByID(ctx context.Context, id string) (*entity.Market, error) {
	return r.getOne(ctx, `SELECT `+marketColumns+` FROM markets WHERE id = $1`, id)
}

// GetByManager obtiene el mercado del gestor. FOR UPDATE bloquea la fila si se llama dentro de una tx.
func (r *MarketRepo) GetByManager(ctx context.Context, managerID string) (*entity.Market, error) {
	return r.getOne(ctx, `SELECT `+marketColumns+` FROM markets WHERE manager_id = $1 FOR UPDATE`, managerID)
}

func (r *MarketRepo) getOne(ctx context.Context, query string, arg string) (*entity.Market, error) {
	m, err := scanMarket(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get market: %w", err)
	}
	return m, nil
}

// List lista mercados por nombre, con búsqueda sin tildes sobre nombre y municipio.
func (r *MarketRepo) List(ctx context.Context, f repository.MarketFilter) ([]*entity.Market, error) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	query := `
		SELECT ` + marketColumns + ` FROM markets
		WHERE ($1 = '' OR search_text LIKE $1 ESCAPE '\')
		ORDER BY name, id LIMIT $2 OFFSET $3`
	return r.list(ctx, query, textnorm.LikePattern(f.Query), limit, offset)
}

// ListAll devuelve todos los mercados en orden de creación.
func (r *MarketRepo) ListAll(ctx context.Context) ([]*entity.Market, error) {
	return r.list(ctx, `SELECT `+marketColumns+` FROM markets ORDER BY created_at, id`)
}

func (r *MarketRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Market, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Market
	for rows.Next() {
		m, err := scanMarket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update actualiza datos y gestor del mercado (no la imagen).
func (r *MarketRepo) Update(ctx context.Context, m *entity.Market) error {
	query := `
		UPDATE markets SET name = $2, description = $3, address = $4, municipality = $5,
		       manager_id = $6, search_text = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Description, m.Address, m.Municipality, nullIfEmpty(m.ManagerID),
		marketSearchText(m), m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMarketHasManager
		}
		return fmt.Errorf("update market: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateImage guarda la URL de la imagen del mercado.
func (r *MarketRepo) UpdateImage(ctx context.Context, id, imageURL string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE markets SET image_url = $2, updated_at = now() WHERE id = $1`, id, imageURL)
	if err != nil {
		return fmt.Errorf("update market image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un mercado; productos, comentarios y horarios caen en cascada.
func (r *MarketRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM markets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete market: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMarket(row pgx.Row) (*entity.Market, error) {
	var m entity.Market
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Address, &m.Municipality, &m.ManagerID,
		&m.ImageURL, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
