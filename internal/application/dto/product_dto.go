package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Con BaseID, los campos vacíos
// (y el precio cero) se heredan de la plantilla.
type CreateProductRequest struct {
	MarketID    string          `json:"marketId" validate:"required,uuid"`
	BaseID      string          `json:"baseId" validate:"omitempty,uuid"`
	Name        string          `json:"name" validate:"max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit" validate:"max=40"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	IsAvailable *bool           `json:"isAvailable"`
	SASProgram  bool            `json:"sasProgram"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Category    *string          `json:"category"`
	Unit        *string          `json:"unit" validate:"omitempty,max=40"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string"`
	IsAvailable *bool            `json:"isAvailable"`
	SASProgram  *bool            `json:"sasProgram"`
}

// ProductListRequest filtros del listado público de productos.
type ProductListRequest struct {
	PageRequest
	MarketID  string `query:"market_id" validate:"omitempty,uuid"`
	Category  string `query:"category"`
	Available *bool  `query:"available"`
	SAS       *bool  `query:"sas"`
	Query     string `query:"q" validate:"max=100"`
}

// ProductResponse salida de un producto. AverageRating y CommentCount solo en el detalle.
type ProductResponse struct {
	ID            string          `json:"id"`
	MarketID      string          `json:"marketId"`
	BaseID        string          `json:"baseId,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price" swaggertype:"string"`
	IsAvailable   bool            `json:"isAvailable"`
	SASProgram    bool            `json:"sasProgram"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	AverageRating *float64        `json:"averageRating,omitempty"`
	CommentCount  *int            `json:"commentCount,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
