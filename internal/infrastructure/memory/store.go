// Package memory implementa los puertos de repositorio en memoria. Reproduce las
// restricciones del esquema PostgreSQL (únicos, cascadas, RESTRICT) y se usa en los tests
// de casos de uso y handlers.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
	"github.com/jhoicas/Agromercados-api/pkg/textnorm"
)

// Store datos compartidos por todos los repositorios en memoria.
// Las slices conservan el orden de inserción (equivalente a created_at, id).
type Store struct {
	mu        sync.RWMutex
	users     []*entity.User
	markets   []*entity.Market
	schedules []*entity.MarketSchedule
	products  []*entity.Product
	bases     []*entity.ProductBase
	comments  []*entity.Comment

	// Fail, si no es nil, se devuelve desde todas las lecturas de listados completos.
	Fail error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{}
}

// Users repositorio de usuarios sobre el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Markets repositorio de mercados sobre el store.
func (s *Store) Markets() *MarketRepo { return &MarketRepo{s: s} }

// Schedules repositorio de horarios sobre el store.
func (s *Store) Schedules() *ScheduleRepo { return &ScheduleRepo{s: s} }

// Products repositorio de productos sobre el store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Bases repositorio del catálogo sobre el store.
func (s *Store) Bases() *ProductBaseRepo { return &ProductBaseRepo{s: s} }

// Comments repositorio de comentarios sobre el store.
func (s *Store) Comments() *CommentRepo { return &CommentRepo{s: s} }

// Tx runner sin aislamiento real: ejecuta fn sobre los mismos repositorios.
func (s *Store) Tx() *TxRunner { return &TxRunner{s: s} }

func page(n, limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := offset + limit
	if end > n {
		end = n
	}
	return offset, end
}

func clone[T any](p *T) *T {
	c := *p
	return &c
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users = append(r.s.users, clone(u))
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.users {
		if x.ID == id {
			return clone(x), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.users {
		if strings.EqualFold(x.Email, email) {
			return clone(x), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	for i := len(r.s.users) - 1; i >= 0; i-- {
		if f.Role == "" || r.s.users[i].Role == f.Role {
			out = append(out, clone(r.s.users[i]))
		}
	}
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}

func (r *UserRepo) ListAll(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	out := make([]*entity.User, 0, len(r.s.users))
	for _, x := range r.s.users {
		out = append(out, clone(x))
	}
	return out, nil
}

func (r *UserRepo) UpdateRole(_ context.Context, id string, role entity.Role, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.ID == id {
			x.Role = role
			x.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.markets {
		if m.ManagerID == id {
			return domain.ErrUserOwnsMarket
		}
	}
	for i, x := range r.s.users {
		if x.ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			r.s.comments = filter(r.s.comments, func(c *entity.Comment) bool { return c.UserID != id })
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Mercados ─────────────────────────────────────────────────────────────────

var _ repository.MarketRepository = (*MarketRepo)(nil)

type MarketRepo struct{ s *Store }

func (r *MarketRepo) managerTaken(m *entity.Market) bool {
	if m.ManagerID == "" {
		return false
	}
	for _, x := range r.s.markets {
		if x.ID != m.ID && x.ManagerID == m.ManagerID {
			return true
		}
	}
	return false
}

func (r *MarketRepo) Create(_ context.Context, m *entity.Market) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.managerTaken(m) {
		return domain.ErrMarketHasManager
	}
	r.s.markets = append(r.s.markets, clone(m))
	return nil
}

func (r *MarketRepo) GetByID(_ context.Context, id string) (*entity.Market, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.markets {
		if x.ID == id {
			return clone(x), nil
		}
	}
	return nil, nil
}

func (r *MarketRepo) GetByManager(_ context.Context, managerID string) (*entity.Market, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.markets {
		if managerID != "" && x.ManagerID == managerID {
			return clone(x), nil
		}
	}
	return nil, nil
}

func (r *MarketRepo) List(_ context.Context, f repository.MarketFilter) ([]*entity.Market, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := textnorm.Fold(f.Query)
	var out []*entity.Market
	for _, x := range r.s.markets {
		if q == "" || strings.Contains(textnorm.Fold(x.Name+" "+x.Municipality), q) {
			out = append(out, clone(x))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}

func (r *MarketRepo) ListAll(_ context.Context) ([]*entity.Market, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	out := make([]*entity.Market, 0, len(r.s.markets))
	for _, x := range r.s.markets {
		out = append(out, clone(x))
	}
	return out, nil
}

func (r *MarketRepo) Update(_ context.Context, m *entity.Market) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.managerTaken(m) {
		return domain.ErrMarketHasManager
	}
	for i, x := range r.s.markets {
		if x.ID == m.ID {
			r.s.markets[i] = clone(m)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *MarketRepo) UpdateImage(_ context.Context, id, imageURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.markets {
		if x.ID == id {
			x.ImageURL = imageURL
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *MarketRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.markets {
		if x.ID != id {
			continue
		}
		r.s.markets = append(r.s.markets[:i], r.s.markets[i+1:]...)
		r.s.schedules = filter(r.s.schedules, func(s *entity.MarketSchedule) bool { return s.MarketID != id })
		gone := map[string]bool{}
		r.s.products = filter(r.s.products, func(p *entity.Product) bool {
			if p.MarketID == id {
				gone[p.ID] = true
				return false
			}
			return true
		})
		r.s.comments = filter(r.s.comments, func(c *entity.Comment) bool { return !gone[c.ProductID] })
		return nil
	}
	return domain.ErrNotFound
}

// ── Horarios ─────────────────────────────────────────────────────────────────

var _ repository.MarketScheduleRepository = (*ScheduleRepo)(nil)

type ScheduleRepo struct{ s *Store }

func (r *ScheduleRepo) ListByMarket(_ context.Context, marketID string) ([]*entity.MarketSchedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.MarketSchedule
	for _, x := range r.s.schedules {
		if x.MarketID == marketID {
			out = append(out, clone(x))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].OpenTime < out[j].OpenTime
	})
	return out, nil
}

func (r *ScheduleRepo) Replace(_ context.Context, marketID string, schedules []*entity.MarketSchedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.schedules = filter(r.s.schedules, func(s *entity.MarketSchedule) bool { return s.MarketID != marketID })
	for _, x := range schedules {
		c := clone(x)
		c.MarketID = marketID
		r.s.schedules = append(r.s.schedules, c)
	}
	return nil
}

// ── Productos ────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	found := false
	for _, m := range r.s.markets {
		if m.ID == p.MarketID {
			found = true
		}
	}
	if !found {
		return domain.ErrNotFound
	}
	r.s.products = append(r.s.products, clone(p))
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.products {
		if x.ID == id {
			return clone(x), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := textnorm.Fold(f.Query)
	var out []*entity.Product
	for i := len(r.s.products) - 1; i >= 0; i-- {
		x := r.s.products[i]
		switch {
		case f.MarketID != "" && x.MarketID != f.MarketID,
			f.Category != "" && x.Category != f.Category,
			f.Available != nil && x.IsAvailable != *f.Available,
			f.SAS != nil && x.SASProgram != *f.SAS,
			q != "" && !strings.Contains(textnorm.Fold(x.Name), q):
			continue
		}
		out = append(out, clone(x))
	}
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}

func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, x := range r.s.products {
		out = append(out, clone(x))
	}
	return out, nil
}

func (r *ProductRepo) ListByMarket(_ context.Context, marketID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Product
	for _, x := range r.s.products {
		if x.MarketID == marketID {
			out = append(out, clone(x))
		}
	}
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.products {
		if x.ID == p.ID {
			r.s.products[i] = clone(p)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProductRepo) UpdateImage(_ context.Context, id, imageURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.products {
		if x.ID == id {
			x.ImageURL = imageURL
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.products {
		if x.ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			r.s.comments = filter(r.s.comments, func(c *entity.Comment) bool { return c.ProductID != id })
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

var _ repository.ProductBaseRepository = (*ProductBaseRepo)(nil)

type ProductBaseRepo struct{ s *Store }

func (r *ProductBaseRepo) Create(_ context.Context, b *entity.ProductBase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.bases {
		if x.Name == b.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.bases = append(r.s.bases, clone(b))
	return nil
}

func (r *ProductBaseRepo) GetByID(_ context.Context, id string) (*entity.ProductBase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.bases {
		if x.ID == id {
			return clone(x), nil
		}
	}
	return nil, nil
}

func (r *ProductBaseRepo) List(_ context.Context, category entity.Category) ([]*entity.ProductBase, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	var out []*entity.ProductBase
	for _, x := range r.s.bases {
		if category == "" || x.Category == category {
			out = append(out, clone(x))
		}
	}
	return out, nil
}

func (r *ProductBaseRepo) Update(_ context.Context, b *entity.ProductBase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.bases {
		if x.ID != b.ID && x.Name == b.Name {
			return domain.ErrDuplicate
		}
	}
	for i, x := range r.s.bases {
		if x.ID == b.ID {
			r.s.bases[i] = clone(b)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProductBaseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.bases {
		if x.ID == id {
			r.s.bases = append(r.s.bases[:i], r.s.bases[i+1:]...)
			for _, p := range r.s.products {
				if p.BaseID == id {
					p.BaseID = ""
				}
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Comentarios ──────────────────────────────────────────────────────────────

var _ repository.CommentRepository = (*CommentRepo)(nil)

type CommentRepo struct{ s *Store }

func (r *CommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID == c.ProductID {
			r.s.comments = append(r.s.comments, clone(c))
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *CommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.comments {
		if x.ID == id {
			return clone(x), nil
		}
	}
	return nil, nil
}

func (r *CommentRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Comment
	for i := len(r.s.comments) - 1; i >= 0; i-- {
		if r.s.comments[i].ProductID == productID {
			out = append(out, clone(r.s.comments[i]))
		}
	}
	return out, nil
}

func (r *CommentRepo) ListByMarket(_ context.Context, marketID string) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inMarket := map[string]bool{}
	for _, p := range r.s.products {
		if p.MarketID == marketID {
			inMarket[p.ID] = true
		}
	}
	var out []*entity.Comment
	for _, x := range r.s.comments {
		if inMarket[x.ProductID] {
			out = append(out, clone(x))
		}
	}
	return out, nil
}

func (r *CommentRepo) ListAll(_ context.Context) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}
	out := make([]*entity.Comment, 0, len(r.s.comments))
	for _, x := range r.s.comments {
		out = append(out, clone(x))
	}
	return out, nil
}

func (r *CommentRepo) Summary(_ context.Context, productID string) (repository.RatingSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var s repository.RatingSummary
	for _, x := range r.s.comments {
		if x.ProductID == productID {
			s.Count++
			s.Sum += x.Rating
		}
	}
	return s, nil
}

func (r *CommentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, x := range r.s.comments {
		if x.ID == id {
			r.s.comments = append(r.s.comments[:i], r.s.comments[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Transacciones ────────────────────────────────────────────────────────────

var _ repository.TxRunner = (*TxRunner)(nil)

type TxRunner struct{ s *Store }

func (t *TxRunner) Run(_ context.Context, fn func(repos repository.TxRepos) error) error {
	return fn(repository.TxRepos{Users: t.s.Users(), Markets: t.s.Markets()})
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, x := range in {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}
