package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
)

// ProductBaseUseCase catálogo de plantillas de productos.
type ProductBaseUseCase struct {
	repo repository.ProductBaseRepository
	now  func() time.Time
}

// NewProductBaseUseCase construye el caso de uso.
func NewProductBaseUseCase(repo repository.ProductBaseRepository) *ProductBaseUseCase {
	return &ProductBaseUseCase{repo: repo, now: time.Now}
}

// List devuelve el catálogo, opcionalmente filtrado por categoría.
func (uc *ProductBaseUseCase) List(ctx context.Context, category string) ([]dto.ProductBaseResponse, error) {
	var c entity.Category
	if category != "" {
		parsed, ok := entity.ParseCategory(category)
		if !ok {
			return nil, domain.ErrInvalidCategory
		}
		c = parsed
	}
	list, err := uc.repo.List(ctx, c)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductBaseResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toProductBaseResponse(b))
	}
	return out, nil
}

// Get obtiene una plantilla por ID.
func (uc *ProductBaseUseCase) Get(ctx context.Context, id string) (*dto.ProductBaseResponse, error) {
	base, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, domain.ErrNotFound
	}
	out := toProductBaseResponse(base)
	return &out, nil
}

// Create da de alta una plantilla. El nombre es único en el catálogo.
func (uc *ProductBaseUseCase) Create(ctx context.Context, in dto.ProductBaseRequest) (*dto.ProductBaseResponse, error) {
	now := uc.now()
	base := &entity.ProductBase{ID: uuid.New().String(), CreatedAt: now}
	if err := applyProductBase(base, in); err != nil {
		return nil, err
	}
	base.UpdatedAt = now
	if err := uc.repo.Create(ctx, base); err != nil {
		return nil, err
	}
	out := toProductBaseResponse(base)
	return &out, nil
}

// Update reemplaza los datos de una plantilla.
func (uc *ProductBaseUseCase) Update(ctx context.Context, id string, in dto.ProductBaseRequest) (*dto.ProductBaseResponse, error) {
	base, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyProductBase(base, in); err != nil {
		return nil, err
	}
	base.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, base); err != nil {
		return nil, err
	}
	out := toProductBaseResponse(base)
	return &out, nil
}

// Delete elimina una plantilla. Los productos que la usaban conservan sus datos.
func (uc *ProductBaseUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyProductBase(b *entity.ProductBase, in dto.ProductBaseRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.ReferencePrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	category, ok := entity.ParseCategory(in.Category)
	if !ok {
		return domain.ErrInvalidCategory
	}
	b.Name = name
	b.Category = category
	b.Unit = strings.TrimSpace(in.Unit)
	b.Description = strings.TrimSpace(in.Description)
	b.Nutrition = strings.TrimSpace(in.Nutrition)
	b.ReferencePrice = in.ReferencePrice
	return nil
}

func toProductBaseResponse(b *entity.ProductBase) dto.ProductBaseResponse {
	return dto.ProductBaseResponse{
		ID:             b.ID,
		Name:           b.Name,
		Category:       string(b.Category),
		Unit:           b.Unit,
		Description:    b.Description,
		Nutrition:      b.Nutrition,
		ReferencePrice: b.ReferencePrice,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
