package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// TopN tamaño de los rankings mostCommented y topRated.
const TopN = 5

// productTally comentarios acumulados de un producto. La posición en el slice
// conserva el orden de entrada, que es el desempate de los rankings.
type productTally struct {
	product   *entity.Product
	count     int
	ratingSum int
}

// higherAverage compara medias sin dividir: a.sum/a.count > b.sum/b.count.
// Sin comentarios la media es 0 y las calificaciones válidas son >= 1.
func (a productTally) higherAverage(b productTally) bool {
	if a.count == 0 {
		return false
	}
	if b.count == 0 {
		return true
	}
	return a.ratingSum*b.count > b.ratingSum*a.count
}

func (a productTally) rank() ProductRank {
	return ProductRank{
		ID:            a.product.ID,
		Name:          a.product.Name,
		MarketID:      a.product.MarketID,
		Category:      a.product.Category,
		CommentCount:  a.count,
		AverageRating: AverageRating(a.ratingSum, a.count),
	}
}

// topBy ordena una copia de tallies con el criterio dado (estable) y devuelve los n primeros.
func topBy(tallies []productTally, n int, less func(a, b productTally) bool) []ProductRank {
	sorted := make([]productTally, len(tallies))
	copy(sorted, tallies)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]ProductRank, 0, len(sorted))
	for _, t := range sorted {
		out = append(out, t.rank())
	}
	return out
}

// AverageRating media redondeada a 1 decimal; 0 si count == 0.
func AverageRating(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(count))).
		Round(1).
		InexactFloat64()
}
