package repository

import (
	"context"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// MarketFilter criterios de listado. Query se compara sin tildes contra nombre y municipio.
type MarketFilter struct {
	Query  string
	Limit  int
	Offset int
}

// MarketRepository define el puerto de persistencia para Market.
type MarketRepository interface {
	Create(ctx context.Context, market *entity.Market) error
	GetByID(ctx context.Context, id string) (*entity.Market, error)
	// GetByManager devuelve el mercado que administra managerID, o nil.
	GetByManager(ctx context.Context, managerID string) (*entity.Market, error)
	List(ctx context.Context, f MarketFilter) ([]*entity.Market, error)
	ListAll(ctx context.Context) ([]*entity.Market, error)
	Update(ctx context.Context, market *entity.Market) error
	UpdateImage(ctx context.Context, id, imageURL string) error
	// Delete elimina el mercado; la DB elimina en cascada productos, comentarios y horarios.
	Delete(ctx context.Context, id string) error
}

// MarketScheduleRepository persistencia de los horarios de un mercado.
type MarketScheduleRepository interface {
	ListByMarket(ctx context.Context, marketID string) ([]*entity.MarketSchedule, error)
	// Replace sustituye atómicamente todos los horarios del mercado.
	Replace(ctx context.Context, marketID string, schedules []*entity.MarketSchedule) error
}
