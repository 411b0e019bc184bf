package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductBaseRequest alta o reemplazo de una plantilla del catálogo.
type ProductBaseRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Category       string          `json:"category" validate:"required"`
	Unit           string          `json:"unit" validate:"max=40"`
	Description    string          `json:"description" validate:"max=2000"`
	Nutrition      string          `json:"nutrition" validate:"max=2000"`
	ReferencePrice decimal.Decimal `json:"referencePrice" swaggertype:"string"`
}

// ProductBaseResponse salida de una plantilla.
type ProductBaseResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	Description    string          `json:"description"`
	Nutrition      string          `json:"nutrition"`
	ReferencePrice decimal.Decimal `json:"referencePrice" swaggertype:"string"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
