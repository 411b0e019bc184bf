// Package stats calcula el snapshot de estadísticas del directorio de mercados.
//
// Es un cálculo puro: recibe las colecciones ya cargadas y el instante de referencia,
// no hace I/O ni lee el reloj del sistema. Misma entrada y mismo now producen el mismo resultado.
package stats

import (
	"time"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// input colecciones ya depuradas por sanitize.
type input struct {
	users    []*entity.User
	products []*entity.Product
	markets  []*entity.Market
	comments []*entity.Comment
	bases    []*entity.ProductBase
}

// Compute devuelve el snapshot de estadísticas. Nunca falla: las entradas mal formadas se descartan.
func Compute(
	users []*entity.User,
	products []*entity.Product,
	markets []*entity.Market,
	comments []*entity.Comment,
	bases []*entity.ProductBase,
	now time.Time,
) Snapshot {
	snap, _ := Analyze(users, products, markets, comments, bases, now)
	return snap
}

// Analyze igual que Compute, pero informa además cuántas entradas se descartaron.
func Analyze(
	users []*entity.User,
	products []*entity.Product,
	markets []*entity.Market,
	comments []*entity.Comment,
	bases []*entity.ProductBase,
	now time.Time,
) (Snapshot, Skipped) {
	in, skipped := sanitize(users, products, markets, comments, bases)
	w := newMonthWindow(now, HistogramMonths)

	return Snapshot{
		Users:        userStats(in.users, w),
		Products:     productStats(in.products, in.comments, w),
		Markets:      marketStats(in.markets, w),
		Comments:     commentStats(in.comments, w),
		BaseProducts: baseProductStats(in.bases),
	}, skipped
}

// sanitize es el único punto de validación: descarta nulos, roles y categorías desconocidos,
// productos con ID repetido, calificaciones fuera de 1..5 y comentarios de productos inexistentes.
func sanitize(
	users []*entity.User,
	products []*entity.Product,
	markets []*entity.Market,
	comments []*entity.Comment,
	bases []*entity.ProductBase,
) (input, Skipped) {
	var in input
	var sk Skipped

	for _, u := range users {
		if u == nil || !u.Role.Valid() {
			sk.Users++
			continue
		}
		in.users = append(in.users, u)
	}

	known := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p == nil || p.ID == "" || !p.Category.Valid() {
			sk.Products++
			continue
		}
		if _, dup := known[p.ID]; dup {
			sk.Products++
			continue
		}
		known[p.ID] = struct{}{}
		in.products = append(in.products, p)
	}

	for _, m := range markets {
		if m == nil {
			sk.Markets++
			continue
		}
		in.markets = append(in.markets, m)
	}

	for _, c := range comments {
		if c == nil || !entity.ValidRating(c.Rating) {
			sk.Comments++
			continue
		}
		if _, ok := known[c.ProductID]; !ok {
			sk.Comments++
			continue
		}
		in.comments = append(in.comments, c)
	}

	for _, b := range bases {
		if b == nil || !b.Category.Valid() {
			sk.BaseProducts++
			continue
		}
		in.bases = append(in.bases, b)
	}

	return in, sk
}

func userStats(users []*entity.User, w monthWindow) UserStats {
	var s UserStats
	created := make([]time.Time, 0, len(users))
	for _, u := range users {
		switch u.Role {
		case entity.RoleAdmin:
			s.ByRole.Admin++
		case entity.RoleMarketManager:
			s.ByRole.Manager++
		case entity.RoleUser:
			s.ByRole.Regular++
		}
		created = append(created, u.CreatedAt)
	}
	s.Total = len(users)
	s.ByMonth = w.histogram(created)
	return s
}

func productStats(products []*entity.Product, comments []*entity.Comment, w monthWindow) ProductStats {
	s := ProductStats{
		Total:      len(products),
		ByCategory: emptyCategoryCounts(),
	}

	tallies := make([]productTally, len(products))
	pos := make(map[string]int, len(products))
	created := make([]time.Time, 0, len(products))
	for i, p := range products {
		if p.IsAvailable {
			s.Active++
		}
		if p.SASProgram {
			s.SASProgram++
		}
		s.ByCategory[p.Category]++
		created = append(created, p.CreatedAt)
		tallies[i] = productTally{product: p}
		pos[p.ID] = i
	}
	s.Inactive = s.Total - s.Active
	s.ByMonth = w.histogram(created)

	for _, c := range comments {
		i := pos[c.ProductID]
		tallies[i].count++
		tallies[i].ratingSum += c.Rating
	}

	s.MostCommented = topBy(tallies, TopN, func(a, b productTally) bool { return a.count > b.count })
	s.TopRated = topBy(tallies, TopN, productTally.higherAverage)
	return s
}

func marketStats(markets []*entity.Market, w monthWindow) MarketStats {
	created := make([]time.Time, 0, len(markets))
	for _, m := range markets {
		created = append(created, m.CreatedAt)
	}
	return MarketStats{Total: len(markets), ByMonth: w.histogram(created)}
}

func commentStats(comments []*entity.Comment, w monthWindow) CommentStats {
	s := CommentStats{
		Total:              len(comments),
		RatingDistribution: make(map[int]int, entity.MaxRating),
	}
	for r := entity.MinRating; r <= entity.MaxRating; r++ {
		s.RatingDistribution[r] = 0
	}

	sum := 0
	created := make([]time.Time, 0, len(comments))
	for _, c := range comments {
		s.RatingDistribution[c.Rating]++
		sum += c.Rating
		created = append(created, c.CreatedAt)
	}
	s.AverageRating = AverageRating(sum, len(comments))
	s.ByMonth = w.histogram(created)
	return s
}

func baseProductStats(bases []*entity.ProductBase) BaseProductStats {
	s := BaseProductStats{Total: len(bases), ByCategory: emptyCategoryCounts()}
	for _, b := range bases {
		s.ByCategory[b.Category]++
	}
	return s
}

func emptyCategoryCounts() map[entity.Category]int {
	m := make(map[entity.Category]int, len(entity.Categories()))
	for _, c := range entity.Categories() {
		m[c] = 0
	}
	return m
}
