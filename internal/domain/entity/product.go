package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto ofertado por un mercado. Se elimina en cascada con su Market.
// BaseID vacío = no proviene del catálogo.
type Product struct {
	ID          string
	MarketID    string
	BaseID      string
	Name        string
	Description string
	Category    Category
	Unit        string
	Price       decimal.Decimal
	IsAvailable bool
	SASProgram  bool // incluido en el programa de Seguridad Alimentaria
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InheritFrom completa los campos vacíos del producto con los valores de la plantilla.
func (p *Product) InheritFrom(base *ProductBase) {
	if base == nil {
		return
	}
	p.BaseID = base.ID
	if p.Name == "" {
		p.Name = base.Name
	}
	if p.Category == "" {
		p.Category = base.Category
	}
	if p.Unit == "" {
		p.Unit = base.Unit
	}
	if p.Description == "" {
		p.Description = base.Description
	}
	if p.Price.IsZero() {
		p.Price = base.ReferencePrice
	}
}
