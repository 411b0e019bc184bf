// Package analytics contiene los casos de uso de estadísticas del directorio:
// snapshot global, snapshot por mercado y reporte PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Agromercados-api/internal/application/ports"
	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
	"github.com/jhoicas/Agromercados-api/internal/domain/stats"
	"github.com/jhoicas/Agromercados-api/pkg/logger"
)

// GlobalSnapshotKey clave de caché del snapshot global.
const GlobalSnapshotKey = "stats:snapshot:global"

// Repos repositorios de lectura que alimentan el motor de estadísticas.
type Repos struct {
	Users    repository.UserRepository
	Products repository.ProductRepository
	Markets  repository.MarketRepository
	Comments repository.CommentRepository
	Bases    repository.ProductBaseRepository
}

// StatsUseCase carga las colecciones y ejecuta stats.Compute.
//
// Las cinco lecturas corren en paralelo; el cálculo empieza cuando todas terminaron.
// El snapshot global se cachea (si hay caché y TTL > 0); fallos de caché solo se registran.
type StatsUseCase struct {
	repos Repos
	cache ports.SnapshotCache
	ttl   time.Duration
	clock func() time.Time
	log   *logger.Logger
}

// NewStatsUseCase construye el caso de uso. cache puede ser nil; clock nil usa time.Now.
func NewStatsUseCase(repos Repos, cache ports.SnapshotCache, ttl time.Duration, clock func() time.Time, log *logger.Logger) *StatsUseCase {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StatsUseCase{repos: repos, cache: cache, ttl: ttl, clock: clock, log: log.Component("stats")}
}

// Now instante de referencia del caso de uso.
func (uc *StatsUseCase) Now() time.Time { return uc.clock() }

// Global snapshot de todo el directorio.
func (uc *StatsUseCase) Global(ctx context.Context) (stats.Snapshot, error) {
	if snap, ok := uc.cached(ctx); ok {
		return snap, nil
	}

	type usersResult struct {
		list []*entity.User
		err  error
	}
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type marketsResult struct {
		list []*entity.Market
		err  error
	}
	type commentsResult struct {
		list []*entity.Comment
		err  error
	}
	type basesResult struct {
		list []*entity.ProductBase
		err  error
	}

	usersCh := make(chan usersResult, 1)
	productsCh := make(chan productsResult, 1)
	marketsCh := make(chan marketsResult, 1)
	commentsCh := make(chan commentsResult, 1)
	basesCh := make(chan basesResult, 1)

	go func() {
		list, err := uc.repos.Users.ListAll(ctx)
		usersCh <- usersResult{list, err}
	}()
	go func() {
		list, err := uc.repos.Products.ListAll(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.repos.Markets.ListAll(ctx)
		marketsCh <- marketsResult{list, err}
	}()
	go func() {
		list, err := uc.repos.Comments.ListAll(ctx)
		commentsCh <- commentsResult{list, err}
	}()
	go func() {
		list, err := uc.repos.Bases.List(ctx, "")
		basesCh <- basesResult{list, err}
	}()

	users := <-usersCh
	products := <-productsCh
	markets := <-marketsCh
	comments := <-commentsCh
	bases := <-basesCh

	if users.err != nil {
		return stats.Snapshot{}, fmt.Errorf("stats: usuarios: %w", users.err)
	}
	if products.err != nil {
		return stats.Snapshot{}, fmt.Errorf("stats: productos: %w", products.err)
	}
	if markets.err != nil {
		return stats.Snapshot{}, fmt.Errorf("stats: mercados: %w", markets.err)
	}
	if comments.err != nil {
		return stats.Snapshot{}, fmt.Errorf("stats: comentarios: %w", comments.err)
	}
	if bases.err != nil {
		return stats.Snapshot{}, fmt.Errorf("stats: catálogo: %w", bases.err)
	}

	snap := uc.compute(users.list, products.list, markets.list, comments.list, bases.list)
	uc.store(ctx, snap)
	return snap, nil
}

// ForMarket snapshot restringido a un mercado: sus productos y comentarios, el propio
// mercado y el catálogo completo. La sección de usuarios queda vacía.
//
// Un MARKET_MANAGER obtiene siempre su mercado; un ADMIN debe indicar marketID.
func (uc *StatsUseCase) ForMarket(ctx context.Context, userID string, role entity.Role, marketID string) (stats.Snapshot, error) {
	market, err := uc.resolveMarket(ctx, userID, role, marketID)
	if err != nil {
		return stats.Snapshot{}, err
	}

	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type commentsResult struct {
		list []*entity.Comment
		err  error
	}
	type basesResult struct {
		list []*entity.ProductBase
		err  error
	}

	productsCh := make(chan productsResult, 1)
	commentsCh := make(chan commentsResult, 1)
	basesCh := make(chan basesResult, 1)

	go func() {
		list, err := uc.repos.Products.ListByMarket(ctx, market.ID)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.repos.Comments.ListByMarket(ctx, market.ID)
		commentsCh <- commentsResult{list, err}
	}()
	go func() {
		list, err := uc.repos.Bases.List(ctx, "")
		basesCh <- basesResult{list, err}
	}()

	products := <-productsCh
	comments := <-commentsCh
	bases := <-basesCh

	if products.err != nil {
		return stats.Snapshot{}, fmt.Errorf("stats mercado: productos: %w", products.err)
	}
	if comments.err != nil {
		return stats.Snapshot{}, fmt.Errorf("stats mercado: comentarios: %w", comments.err)
	}
	if bases.err != nil {
		return stats.Snapshot{}, fmt.Errorf("stats mercado: catálogo: %w", bases.err)
	}

	return uc.compute(nil, products.list, []*entity.Market{market}, comments.list, bases.list), nil
}

func (uc *StatsUseCase) resolveMarket(ctx context.Context, userID string, role entity.Role, marketID string) (*entity.Market, error) {
	switch role {
	case entity.RoleMarketManager:
		market, err := uc.repos.Markets.GetByManager(ctx, userID)
		if err != nil {
			return nil, err
		}
		if market == nil {
			return nil, domain.ErrNotFound
		}
		if marketID != "" && marketID != market.ID {
			return nil, domain.ErrForbidden
		}
		return market, nil
	case entity.RoleAdmin:
		if marketID == "" {
			return nil, domain.ErrInvalidInput
		}
		market, err := uc.repos.Markets.GetByID(ctx, marketID)
		if err != nil {
			return nil, err
		}
		if market == nil {
			return nil, domain.ErrNotFound
		}
		return market, nil
	default:
		return nil, domain.ErrForbidden
	}
}

func (uc *StatsUseCase) compute(
	users []*entity.User,
	products []*entity.Product,
	markets []*entity.Market,
	comments []*entity.Comment,
	bases []*entity.ProductBase,
) stats.Snapshot {
	snap, skipped := stats.Analyze(users, products, markets, comments, bases, uc.clock())
	if skipped.Total() > 0 {
		uc.log.Warn().
			Int("users", skipped.Users).
			Int("products", skipped.Products).
			Int("markets", skipped.Markets).
			Int("comments", skipped.Comments).
			Int("base_products", skipped.BaseProducts).
			Msg("entradas mal formadas descartadas")
	}
	return snap
}

func (uc *StatsUseCase) cached(ctx context.Context) (stats.Snapshot, bool) {
	if uc.cache == nil || uc.ttl <= 0 {
		return stats.Snapshot{}, false
	}
	snap, err := uc.cache.Get(ctx, GlobalSnapshotKey)
	if err != nil {
		uc.log.Warn().Err(err).Msg("lectura de caché fallida")
		return stats.Snapshot{}, false
	}
	if snap == nil {
		return stats.Snapshot{}, false
	}
	uc.log.Debug().Msg("snapshot servido desde caché")
	return *snap, true
}

func (uc *StatsUseCase) store(ctx context.Context, snap stats.Snapshot) {
	if uc.cache == nil || uc.ttl <= 0 {
		return
	}
	if err := uc.cache.Set(ctx, GlobalSnapshotKey, snap, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Msg("escritura de caché fallida")
	}
}
