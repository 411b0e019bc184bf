package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercados-api/internal/application/analytics"
	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/stats"
	"github.com/jhoicas/Agromercados-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCache struct {
	mu      sync.Mutex
	data    map[string]stats.Snapshot
	gets    int
	sets    int
	lastTTL time.Duration
	failGet error
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]stats.Snapshot{}} }

func (c *fakeCache) Get(_ context.Context, key string) (*stats.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet != nil {
		return nil, c.failGet
	}
	snap, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (c *fakeCache) Set(_ context.Context, key string, snap stats.Snapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.lastTTL = ttl
	c.data[key] = snap
	return nil
}

type fakeReport struct {
	snap stats.Snapshot
	at   time.Time
}

func (r *fakeReport) Generate(snap stats.Snapshot, at time.Time) ([]byte, error) {
	r.snap, r.at = snap, at
	return []byte("%PDF-fake"), nil
}

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func repos(s *memory.Store) analytics.Repos {
	return analytics.Repos{Users: s.Users(), Products: s.Products(), Markets: s.Markets(), Comments: s.Comments(), Bases: s.Bases()}
}

// seed dos mercados: m1 con gestor y dos productos (uno comentado), m2 con un producto.
func seed(t *testing.T, s *memory.Store) (manager *entity.User, m1, m2 *entity.Market) {
	t.Helper()
	ctx := context.Background()
	at := fixedNow.AddDate(0, -1, 0)

	manager = &entity.User{ID: "u-manager", Email: "g@m.cu", Role: entity.RoleMarketManager, CreatedAt: at, UpdatedAt: at}
	buyer := &entity.User{ID: "u-buyer", Email: "c@m.cu", Role: entity.RoleUser, CreatedAt: fixedNow, UpdatedAt: fixedNow}
	boss := &entity.User{ID: "u-admin", Email: "a@m.cu", Role: entity.RoleAdmin, CreatedAt: at, UpdatedAt: at}
	for _, u := range []*entity.User{manager, buyer, boss} {
		require.NoError(t, s.Users().Create(ctx, u))
	}

	m1 = &entity.Market{ID: "m1", Name: "Uno", Municipality: "Plaza", ManagerID: manager.ID, CreatedAt: at}
	m2 = &entity.Market{ID: "m2", Name: "Dos", Municipality: "Cerro", CreatedAt: fixedNow}
	require.NoError(t, s.Markets().Create(ctx, m1))
	require.NoError(t, s.Markets().Create(ctx, m2))

	products := []*entity.Product{
		{ID: "p1", MarketID: "m1", Name: "Tomate", Category: entity.CategoryHortaliza, Price: decimal.NewFromInt(20), IsAvailable: true, SASProgram: true, CreatedAt: at},
		{ID: "p2", MarketID: "m1", Name: "Mango", Category: entity.CategoryFruta, Price: decimal.NewFromInt(30), IsAvailable: false, CreatedAt: fixedNow},
		{ID: "p3", MarketID: "m2", Name: "Yuca", Category: entity.CategoryVianda, Price: decimal.NewFromInt(10), IsAvailable: true, CreatedAt: fixedNow},
	}
	for _, p := range products {
		require.NoError(t, s.Products().Create(ctx, p))
	}
	comments := []*entity.Comment{
		{ID: "c1", ProductID: "p1", UserID: buyer.ID, Rating: 5, CreatedAt: fixedNow},
		{ID: "c2", ProductID: "p1", UserID: boss.ID, Rating: 4, CreatedAt: fixedNow},
		{ID: "c3", ProductID: "p3", UserID: buyer.ID, Rating: 2, CreatedAt: at},
	}
	for _, c := range comments {
		require.NoError(t, s.Comments().Create(ctx, c))
	}
	require.NoError(t, s.Bases().Create(ctx, &entity.ProductBase{ID: "b1", Name: "Tomate", Category: entity.CategoryHortaliza}))
	return manager, m1, m2
}

// ──────────────────────────────────────────────────────────────────────────────
// Global
// ──────────────────────────────────────────────────────────────────────────────

func TestGlobal_AgregaTodoElDirectorio(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	uc := analytics.NewStatsUseCase(repos(s), nil, 0, clock, nil)

	snap, err := uc.Global(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Users.Total)
	assert.Equal(t, stats.RoleCounts{Admin: 1, Manager: 1, Regular: 1}, snap.Users.ByRole)
	assert.Equal(t, 3, snap.Products.Total)
	assert.Equal(t, 2, snap.Products.Active)
	assert.Equal(t, 1, snap.Products.Inactive)
	assert.Equal(t, 1, snap.Products.SASProgram)
	assert.Equal(t, 2, snap.Markets.Total)
	assert.Equal(t, 3, snap.Comments.Total)
	assert.Equal(t, 3.7, snap.Comments.AverageRating)
	assert.Equal(t, 1, snap.BaseProducts.Total)

	require.Len(t, snap.Users.ByMonth, stats.HistogramMonths)
	assert.Equal(t, stats.MonthCount{Month: "2024-06", Count: 1}, snap.Users.ByMonth[5])
	assert.Equal(t, stats.MonthCount{Month: "2024-05", Count: 2}, snap.Users.ByMonth[4])

	require.NotEmpty(t, snap.Products.MostCommented)
	assert.Equal(t, "p1", snap.Products.MostCommented[0].ID)
	assert.Equal(t, 4.5, snap.Products.MostCommented[0].AverageRating)
}

func TestGlobal_UsaLaCache(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	cache := newFakeCache()
	uc := analytics.NewStatsUseCase(repos(s), cache, time.Minute, clock, nil)
	ctx := context.Background()

	first, err := uc.Global(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, time.Minute, cache.lastTTL)

	// cambios posteriores no se ven hasta que expire la entrada
	require.NoError(t, s.Markets().Create(ctx, &entity.Market{ID: "m3", Name: "Tres", Municipality: "Playa", CreatedAt: fixedNow}))
	second, err := uc.Global(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Markets.Total, second.Markets.Total)
	assert.Equal(t, 1, cache.sets)
}

func TestGlobal_FalloDeCacheNoEsFatal(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	cache := newFakeCache()
	cache.failGet = errors.New("redis caído")
	uc := analytics.NewStatsUseCase(repos(s), cache, time.Minute, clock, nil)

	snap, err := uc.Global(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Products.Total)
}

func TestGlobal_TTLCeroNoCachea(t *testing.T) {
	s := memory.NewStore()
	cache := newFakeCache()
	uc := analytics.NewStatsUseCase(repos(s), cache, 0, clock, nil)

	_, err := uc.Global(context.Background())
	require.NoError(t, err)
	assert.Zero(t, cache.gets)
	assert.Zero(t, cache.sets)
}

func TestGlobal_ErrorDeLecturaSePropaga(t *testing.T) {
	s := memory.NewStore()
	boom := errors.New("db caída")
	s.Fail = boom
	cache := newFakeCache()
	uc := analytics.NewStatsUseCase(repos(s), cache, time.Minute, clock, nil)

	_, err := uc.Global(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, cache.sets, "un fallo no se cachea")
}

func TestGlobal_DirectorioVacio(t *testing.T) {
	uc := analytics.NewStatsUseCase(repos(memory.NewStore()), nil, 0, clock, nil)

	snap, err := uc.Global(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snap.Products.Total)
	assert.Len(t, snap.Markets.ByMonth, stats.HistogramMonths)
	assert.Len(t, snap.Comments.RatingDistribution, 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// ForMarket
// ──────────────────────────────────────────────────────────────────────────────

func TestForMarket_GestorVeSuMercado(t *testing.T) {
	s := memory.NewStore()
	manager, m1, m2 := seed(t, s)
	uc := analytics.NewStatsUseCase(repos(s), nil, 0, clock, nil)
	ctx := context.Background()

	snap, err := uc.ForMarket(ctx, manager.ID, entity.RoleMarketManager, "")
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Products.Total)
	assert.Equal(t, 2, snap.Comments.Total)
	assert.Equal(t, 1, snap.Markets.Total)
	assert.Zero(t, snap.Users.Total)

	_, err = uc.ForMarket(ctx, manager.ID, entity.RoleMarketManager, m1.ID)
	assert.NoError(t, err)

	_, err = uc.ForMarket(ctx, manager.ID, entity.RoleMarketManager, m2.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestForMarket_AdminIndicaMercado(t *testing.T) {
	s := memory.NewStore()
	_, _, m2 := seed(t, s)
	uc := analytics.NewStatsUseCase(repos(s), nil, 0, clock, nil)
	ctx := context.Background()

	snap, err := uc.ForMarket(ctx, "u-admin", entity.RoleAdmin, m2.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Products.Total)
	assert.Equal(t, 2.0, snap.Comments.AverageRating)

	_, err = uc.ForMarket(ctx, "u-admin", entity.RoleAdmin, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ForMarket(ctx, "u-admin", entity.RoleAdmin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ForMarket(ctx, "u-buyer", entity.RoleUser, m2.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestForMarket_GestorSinMercado(t *testing.T) {
	uc := analytics.NewStatsUseCase(repos(memory.NewStore()), nil, 0, clock, nil)
	_, err := uc.ForMarket(context.Background(), "u-x", entity.RoleMarketManager, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestGlobalReport(t *testing.T) {
	s := memory.NewStore()
	seed(t, s)
	gen := &fakeReport{}
	uc := analytics.NewReportUseCase(analytics.NewStatsUseCase(repos(s), nil, 0, clock, nil), gen)

	pdf, err := uc.GlobalReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Equal(t, fixedNow, gen.at)
	assert.Equal(t, 3, gen.snap.Products.Total)
}
