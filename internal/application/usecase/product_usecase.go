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
	"github.com/jhoicas/Agromercados-api/internal/domain/stats"
)

// ProductUseCase casos de uso de productos de un mercado.
// Las escrituras exigen ADMIN o el gestor del mercado dueño.
type ProductUseCase struct {
	products repository.ProductRepository
	bases    repository.ProductBaseRepository
	markets  repository.MarketRepository
	comments repository.CommentRepository
	images   ports.ImageStore
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso. images puede ser nil.
func NewProductUseCase(
	products repository.ProductRepository,
	bases repository.ProductBaseRepository,
	markets repository.MarketRepository,
	comments repository.CommentRepository,
	images ports.ImageStore,
) *ProductUseCase {
	return &ProductUseCase{
		products: products,
		bases:    bases,
		markets:  markets,
		comments: comments,
		images:   images,
		now:      time.Now,
	}
}

// List lista productos con filtros opcionales, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	var category entity.Category
	if in.Category != "" {
		c, ok := entity.ParseCategory(in.Category)
		if !ok {
			return nil, domain.ErrInvalidCategory
		}
		category = c
	}
	list, err := uc.products.List(ctx, repository.ProductFilter{
		MarketID:  in.MarketID,
		Category:  category,
		Available: in.Available,
		SAS:       in.SAS,
		Query:     strings.TrimSpace(in.Query),
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Get devuelve el producto con su calificación media y número de comentarios.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	summary, err := uc.comments.Summary(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	avg := stats.AverageRating(summary.Sum, summary.Count)
	count := summary.Count
	out.AverageRating = &avg
	out.CommentCount = &count
	return out, nil
}

// Create crea un producto en el mercado indicado. Con BaseID, lo no informado se hereda de la plantilla.
func (uc *ProductUseCase) Create(ctx context.Context, actor Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := authorizeMarket(ctx, uc.markets, actor, in.MarketID); err != nil {
		return nil, err
	}
	now := uc.now()
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		MarketID:    in.MarketID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Unit:        strings.TrimSpace(in.Unit),
		Price:       in.Price,
		IsAvailable: available,
		SASProgram:  in.SASProgram,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Category != "" {
		c, ok := entity.ParseCategory(in.Category)
		if !ok {
			return nil, domain.ErrInvalidCategory
		}
		product.Category = c
	}
	if in.BaseID != "" {
		base, err := uc.bases.GetByID(ctx, in.BaseID)
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, domain.ErrNotFound
		}
		product.InheritFrom(base)
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite moverlo a otro mercado.
func (uc *ProductUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.authorizeProduct(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		c, ok := entity.ParseCategory(*in.Category)
		if !ok {
			return nil, domain.ErrInvalidCategory
		}
		product.Category = c
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}
	if in.SASProgram != nil {
		product.SASProgram = *in.SASProgram
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = uc.now()
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina el producto y, en cascada, sus comentarios.
func (uc *ProductUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := uc.authorizeProduct(ctx, actor, id); err != nil {
		return err
	}
	return uc.products.Delete(ctx, id)
}

// UploadImage guarda la imagen del producto y actualiza su URL.
func (uc *ProductUseCase) UploadImage(ctx context.Context, actor Actor, id string, data []byte) (*dto.ProductResponse, error) {
	product, err := uc.authorizeProduct(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	url, err := storeImage(ctx, uc.images, "products", id, data, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.products.UpdateImage(ctx, id, url); err != nil {
		return nil, err
	}
	product.ImageURL = url
	return toProductResponse(product), nil
}

func (uc *ProductUseCase) authorizeProduct(ctx context.Context, actor Actor, id string) (*entity.Product, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := authorizeMarket(ctx, uc.markets, actor, product.MarketID); err != nil {
		return nil, err
	}
	return product, nil
}

func validateProduct(p *entity.Product) error {
	if p.Name == "" || p.Price.IsNegative() {
		return domain.ErrInvalidInput
	}
	if !p.Category.Valid() {
		return domain.ErrInvalidCategory
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		MarketID:    p.MarketID,
		BaseID:      p.BaseID,
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Unit:        p.Unit,
		Price:       p.Price,
		IsAvailable: p.IsAvailable,
		SASProgram:  p.SASProgram,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
