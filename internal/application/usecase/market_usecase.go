package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/application/ports"
	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
)

// MarketUseCase directorio de mercados: CRUD, horarios, imagen y feed del catálogo.
type MarketUseCase struct {
	markets   repository.MarketRepository
	schedules repository.MarketScheduleRepository
	products  repository.ProductRepository
	tx        repository.TxRunner
	images    ports.ImageStore // nil = subida de imágenes deshabilitada
	feed      ports.CatalogFeedBuilder
	now       func() time.Time
}

// NewMarketUseCase construye el caso de uso. images puede ser nil.
func NewMarketUseCase(
	markets repository.MarketRepository,
	schedules repository.MarketScheduleRepository,
	products repository.ProductRepository,
	tx repository.TxRunner,
	images ports.ImageStore,
	feed ports.CatalogFeedBuilder,
) *MarketUseCase {
	return &MarketUseCase{
		markets:   markets,
		schedules: schedules,
		products:  products,
		tx:        tx,
		images:    images,
		feed:      feed,
		now:       time.Now,
	}
}

// List lista mercados; Query filtra por nombre o municipio sin distinguir tildes.
func (uc *MarketUseCase) List(ctx context.Context, in dto.MarketListRequest) (*dto.MarketListResponse, error) {
	in.DefaultPage()
	list, err := uc.markets.List(ctx, repository.MarketFilter{
		Query:  strings.TrimSpace(in.Query),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MarketResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMarketResponse(m, nil))
	}
	return &dto.MarketListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Get devuelve el mercado con sus horarios.
func (uc *MarketUseCase) Get(ctx context.Context, id string) (*dto.MarketResponse, error) {
	market, err := uc.markets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withSchedules(ctx, market)
}

// Mine devuelve el mercado que administra el gestor autenticado.
func (uc *MarketUseCase) Mine(ctx context.Context, actor Actor) (*dto.MarketResponse, error) {
	if actor.Role != entity.RoleMarketManager {
		return nil, domain.ErrNotAManager
	}
	market, err := uc.markets.GetByManager(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withSchedules(ctx, market)
}

// Create crea un mercado. Si trae gestor, la verificación y el alta van en la misma transacción.
func (uc *MarketUseCase) Create(ctx context.Context, in dto.CreateMarketRequest) (*dto.MarketResponse, error) {
	name := strings.TrimSpace(in.Name)
	municipality := strings.TrimSpace(in.Municipality)
	if name == "" || municipality == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	market := &entity.Market{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Address:      strings.TrimSpace(in.Address),
		Municipality: municipality,
		ManagerID:    in.ManagerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if market.HasManager() {
			if err := checkManager(ctx, repos, market.ManagerID, market.ID); err != nil {
				return err
			}
		}
		return repos.Markets.Create(ctx, market)
	})
	if err != nil {
		return nil, err
	}
	return toMarketResponse(market, nil), nil
}

// Update actualiza un mercado. El gestor dueño puede editar los datos descriptivos;
// solo ADMIN puede reasignar el gestor.
func (uc *MarketUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateMarketRequest) (*dto.MarketResponse, error) {
	if in.ManagerID != nil && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	var updated *entity.Market
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		market, err := authorizeMarket(ctx, repos.Markets, actor, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			market.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			market.Description = strings.TrimSpace(*in.Description)
		}
		if in.Address != nil {
			market.Address = strings.TrimSpace(*in.Address)
		}
		if in.Municipality != nil {
			market.Municipality = strings.TrimSpace(*in.Municipality)
		}
		if market.Name == "" || market.Municipality == "" {
			return domain.ErrInvalidInput
		}
		if in.ManagerID != nil && *in.ManagerID != market.ManagerID {
			if *in.ManagerID != "" {
				if err := checkManager(ctx, repos, *in.ManagerID, market.ID); err != nil {
					return err
				}
			}
			market.ManagerID = *in.ManagerID
		}
		market.UpdatedAt = uc.now()
		if err := repos.Markets.Update(ctx, market); err != nil {
			return err
		}
		updated = market
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.withSchedules(ctx, updated)
}

// Delete elimina el mercado; productos, comentarios y horarios caen en cascada.
func (uc *MarketUseCase) Delete(ctx context.Context, id string) error {
	return uc.markets.Delete(ctx, id)
}

// ReplaceSchedules sustituye los horarios del mercado. Valida cada tramo antes de escribir.
func (uc *MarketUseCase) ReplaceSchedules(ctx context.Context, actor Actor, id string, in dto.ReplaceSchedulesRequest) ([]dto.ScheduleResponse, error) {
	if _, err := authorizeMarket(ctx, uc.markets, actor, id); err != nil {
		return nil, err
	}
	schedules := make([]*entity.MarketSchedule, 0, len(in.Schedules))
	for _, s := range in.Schedules {
		sch := &entity.MarketSchedule{
			ID:        uuid.New().String(),
			MarketID:  id,
			DayOfWeek: s.DayOfWeek,
			OpenTime:  strings.TrimSpace(s.OpenTime),
			CloseTime: strings.TrimSpace(s.CloseTime),
		}
		if err := sch.Validate(); err != nil {
			return nil, domain.ErrInvalidSchedule
		}
		schedules = append(schedules, sch)
	}
	if err := uc.schedules.Replace(ctx, id, schedules); err != nil {
		return nil, err
	}
	stored, err := uc.schedules.ListByMarket(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toScheduleResponses(stored)
	if out == nil {
		out = []dto.ScheduleResponse{}
	}
	return out, nil
}

// UploadImage guarda la imagen del mercado y actualiza su URL.
func (uc *MarketUseCase) UploadImage(ctx context.Context, actor Actor, id string, data []byte) (*dto.MarketResponse, error) {
	market, err := authorizeMarket(ctx, uc.markets, actor, id)
	if err != nil {
		return nil, err
	}
	url, err := storeImage(ctx, uc.images, "markets", id, data, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.markets.UpdateImage(ctx, id, url); err != nil {
		return nil, err
	}
	market.ImageURL = url
	return toMarketResponse(market, nil), nil
}

// Catalog genera el feed XML del mercado con sus productos disponibles.
func (uc *MarketUseCase) Catalog(ctx context.Context, id string) ([]byte, string, error) {
	market, err := uc.markets.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if market == nil {
		return nil, "", domain.ErrNotFound
	}
	schedules, err := uc.schedules.ListByMarket(ctx, id)
	if err != nil {
		return nil, "", err
	}
	products, err := uc.products.ListByMarket(ctx, id)
	if err != nil {
		return nil, "", err
	}
	available := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.IsAvailable {
			available = append(available, p)
		}
	}
	return uc.feed.Build(market, schedules, available)
}

// checkManager verifica que managerID exista, tenga rol MARKET_MANAGER y no administre
// otro mercado distinto de marketID.
func checkManager(ctx context.Context, repos repository.TxRepos, managerID, marketID string) error {
	user, err := repos.Users.GetByID(ctx, managerID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role != entity.RoleMarketManager {
		return domain.ErrNotAManager
	}
	owned, err := repos.Markets.GetByManager(ctx, managerID)
	if err != nil {
		return err
	}
	if owned != nil && owned.ID != marketID {
		return domain.ErrMarketHasManager
	}
	return nil
}

func (uc *MarketUseCase) withSchedules(ctx context.Context, m *entity.Market) (*dto.MarketResponse, error) {
	schedules, err := uc.schedules.ListByMarket(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toMarketResponse(m, schedules), nil
}

func toMarketResponse(m *entity.Market, schedules []*entity.MarketSchedule) *dto.MarketResponse {
	return &dto.MarketResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Address:      m.Address,
		Municipality: m.Municipality,
		ManagerID:    m.ManagerID,
		ImageURL:     m.ImageURL,
		Schedules:    toScheduleResponses(schedules),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toScheduleResponses(list []*entity.MarketSchedule) []dto.ScheduleResponse {
	if len(list) == 0 {
		return nil
	}
	out := make([]dto.ScheduleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ScheduleResponse{
			ID:        s.ID,
			DayOfWeek: s.DayOfWeek,
			OpenTime:  s.OpenTime,
			CloseTime: s.CloseTime,
		})
	}
	return out
}
