package usecase_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercados-api/internal/application/usecase"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes y fixture compartidos
// ──────────────────────────────────────────────────────────────────────────────

// pngHeader firma mínima que mimetype reconoce como image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type fakeImageStore struct {
	keys  []string
	types []string
}

func (f *fakeImageStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	f.types = append(f.types, contentType)
	return "https://img.test/" + key, nil
}

type fakeFeed struct {
	products []*entity.Product
}

func (f *fakeFeed) Build(_ *entity.Market, _ []*entity.MarketSchedule, products []*entity.Product) ([]byte, string, error) {
	f.products = products
	return []byte("<catalog/>"), `"etag"`, nil
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	images   *fakeImageStore
	feed     *fakeFeed
	users    *usecase.UserUseCase
	markets  *usecase.MarketUseCase
	products *usecase.ProductUseCase
	bases    *usecase.ProductBaseUseCase
	comments *usecase.CommentUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	f := &fixture{ctx: context.Background(), store: s, images: &fakeImageStore{}, feed: &fakeFeed{}}
	f.users = usecase.NewUserUseCase(s.Users(), s.Tx())
	f.markets = usecase.NewMarketUseCase(s.Markets(), s.Schedules(), s.Products(), s.Tx(), f.images, f.feed)
	f.products = usecase.NewProductUseCase(s.Products(), s.Bases(), s.Markets(), s.Comments(), f.images)
	f.bases = usecase.NewProductBaseUseCase(s.Bases())
	f.comments = usecase.NewCommentUseCase(s.Comments(), s.Products())
	return f
}

func (f *fixture) addUser(t *testing.T, role entity.Role) *entity.User {
	t.Helper()
	now := time.Now()
	id := uuid.New().String()
	u := &entity.User{ID: id, Email: id + "@test.cu", Name: "Usuario", Role: role, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.store.Users().Create(f.ctx, u))
	return u
}

func (f *fixture) addMarket(t *testing.T, managerID string) *entity.Market {
	t.Helper()
	now := time.Now()
	m := &entity.Market{ID: uuid.New().String(), Name: "Mercado 19 y B", Municipality: "Plaza", ManagerID: managerID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.store.Markets().Create(f.ctx, m))
	return m
}

func (f *fixture) addProduct(t *testing.T, marketID string, available bool) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: uuid.New().String(), MarketID: marketID, Name: "Tomate", Category: entity.CategoryHortaliza,
		Unit: "lb", Price: decimal.NewFromInt(25), IsAvailable: available, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.store.Products().Create(f.ctx, p))
	return p
}

func admin() usecase.Actor { return usecase.Actor{UserID: uuid.New().String(), Role: entity.RoleAdmin} }

func as(u *entity.User) usecase.Actor { return usecase.Actor{UserID: u.ID, Role: u.Role} }
