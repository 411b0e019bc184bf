package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductBase plantilla del catálogo de la que un Product puede heredar
// nombre, categoría, unidad, descripción y precio de referencia.
// Su ciclo de vida es independiente de mercados y productos.
type ProductBase struct {
	ID             string
	Name           string
	Category       Category
	Unit           string // lb, kg, u, mazo…
	Description    string
	Nutrition      string // información nutricional libre
	ReferencePrice decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
