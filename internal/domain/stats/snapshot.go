package stats

import "github.com/jhoicas/Agromercados-api/internal/domain/entity"

// Snapshot resultado inmutable de las estadísticas para un instante dado.
// Los nombres de las claves JSON forman parte del contrato con el dashboard.
type Snapshot struct {
	Users        UserStats        `json:"users"`
	Products     ProductStats     `json:"products"`
	Markets      MarketStats      `json:"markets"`
	Comments     CommentStats     `json:"comments"`
	BaseProducts BaseProductStats `json:"baseProducts"`
}

// MonthCount una barra del histograma mensual. Month con formato YYYY-MM.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// RoleCounts usuarios por rol.
type RoleCounts struct {
	Admin   int `json:"admin"`
	Manager int `json:"manager"`
	Regular int `json:"regular"`
}

type UserStats struct {
	Total   int          `json:"total"`
	ByRole  RoleCounts   `json:"byRole"`
	ByMonth []MonthCount `json:"byMonth"`
}

// ProductRank entrada de un ranking Top-N de productos.
type ProductRank struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	MarketID      string          `json:"marketId"`
	Category      entity.Category `json:"category"`
	CommentCount  int             `json:"commentCount"`
	AverageRating float64         `json:"averageRating"` // redondeado a 1 decimal; 0 sin comentarios
}

type ProductStats struct {
	Total         int                     `json:"total"`
	Active        int                     `json:"active"`
	Inactive      int                     `json:"inactive"`
	SASProgram    int                     `json:"sasProgram"`
	ByCategory    map[entity.Category]int `json:"byCategory"`
	ByMonth       []MonthCount            `json:"byMonth"`
	MostCommented []ProductRank           `json:"mostCommented"`
	TopRated      []ProductRank           `json:"topRated"`
}

type MarketStats struct {
	Total   int          `json:"total"`
	ByMonth []MonthCount `json:"byMonth"`
}

type CommentStats struct {
	Total              int          `json:"total"`
	AverageRating      float64      `json:"averageRating"`
	RatingDistribution map[int]int  `json:"ratingDistribution"`
	ByMonth            []MonthCount `json:"byMonth"`
}

type BaseProductStats struct {
	Total      int                     `json:"total"`
	ByCategory map[entity.Category]int `json:"byCategory"`
}

// Skipped cuántas entradas descartó el filtrado inicial por estar mal formadas.
type Skipped struct {
	Users        int
	Products     int
	Markets      int
	Comments     int
	BaseProducts int
}

// Total suma de entradas descartadas.
func (s Skipped) Total() int {
	return s.Users + s.Products + s.Markets + s.Comments + s.BaseProducts
}
