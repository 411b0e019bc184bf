package usecase

import (
	"context"

	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
)

// Actor usuario autenticado que ejecuta la operación (sale del JWT).
type Actor struct {
	UserID string
	Role   entity.Role
}

// IsAdmin indica si el actor tiene rol ADMIN.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// authorizeMarket carga el mercado y verifica que el actor sea ADMIN o su gestor.
func authorizeMarket(ctx context.Context, markets repository.MarketRepository, actor Actor, marketID string) (*entity.Market, error) {
	market, err := markets.GetByID(ctx, marketID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, domain.ErrNotFound
	}
	if actor.IsAdmin() {
		return market, nil
	}
	if actor.Role == entity.RoleMarketManager && market.ManagedBy(actor.UserID) {
		return market, nil
	}
	return nil, domain.ErrForbidden
}
