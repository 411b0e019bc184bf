package entity

import "strings"

// Category categoría de un producto o plantilla del catálogo. Conjunto cerrado: ver Categories().
type Category string

// Categorías de producto.
const (
	CategoryFruta         Category = "FRUTA"
	CategoryHortaliza     Category = "HORTALIZA"
	CategoryVianda        Category = "VIANDA"
	CategoryCarneEmbutido Category = "CARNE_EMBUTIDO"
	CategoryOtro          Category = "OTRO"
)

// Categories devuelve las cinco categorías en orden fijo.
func Categories() []Category {
	return []Category{CategoryFruta, CategoryHortaliza, CategoryVianda, CategoryCarneEmbutido, CategoryOtro}
}

// Valid indica si c pertenece al conjunto cerrado de categorías.
func (c Category) Valid() bool {
	switch c {
	case CategoryFruta, CategoryHortaliza, CategoryVianda, CategoryCarneEmbutido, CategoryOtro:
		return true
	}
	return false
}

// ParseCategory convierte un string (sin distinguir mayúsculas) en Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(upperTrim(s))
	return c, c.Valid()
}

func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
