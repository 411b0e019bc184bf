package stats_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/stats"
)

// now de referencia para todos los tests: 16 de octubre de 2026, 10:30 UTC.
var testNow = time.Date(2026, time.October, 16, 10, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func product(id string, cat entity.Category, available, sas bool, created time.Time) *entity.Product {
	return &entity.Product{
		ID: id, MarketID: "m1", Name: "Producto " + id, Category: cat,
		IsAvailable: available, SASProgram: sas, CreatedAt: created,
	}
}

func comment(productID string, rating int, created time.Time) *entity.Comment {
	return &entity.Comment{ID: fmt.Sprintf("c-%s-%d-%d", productID, rating, created.Unix()), ProductID: productID, Rating: rating, CreatedAt: created}
}

func sumCounts[K comparable](m map[K]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrada vacía
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_EntradaVacia(t *testing.T) {
	snap := stats.Compute(nil, nil, nil, nil, nil, testNow)

	assert.Zero(t, snap.Users.Total)
	assert.Equal(t, stats.RoleCounts{}, snap.Users.ByRole)
	assert.Zero(t, snap.Products.Total)
	assert.Zero(t, snap.Products.Active)
	assert.Zero(t, snap.Products.Inactive)
	assert.Zero(t, snap.Products.SASProgram)
	assert.Zero(t, snap.Markets.Total)
	assert.Zero(t, snap.Comments.Total)
	assert.Zero(t, snap.Comments.AverageRating)
	assert.Zero(t, snap.BaseProducts.Total)

	for _, c := range entity.Categories() {
		v, ok := snap.Products.ByCategory[c]
		assert.True(t, ok, "byCategory de productos debe incluir %s", c)
		assert.Zero(t, v)
		v, ok = snap.BaseProducts.ByCategory[c]
		assert.True(t, ok, "byCategory del catálogo debe incluir %s", c)
		assert.Zero(t, v)
	}
	for r := 1; r <= 5; r++ {
		v, ok := snap.Comments.RatingDistribution[r]
		assert.True(t, ok, "ratingDistribution debe incluir %d", r)
		assert.Zero(t, v)
	}

	require.NotNil(t, snap.Products.MostCommented)
	require.NotNil(t, snap.Products.TopRated)
	assert.Empty(t, snap.Products.MostCommented)
	assert.Empty(t, snap.Products.TopRated)

	for _, h := range [][]stats.MonthCount{snap.Users.ByMonth, snap.Products.ByMonth, snap.Markets.ByMonth, snap.Comments.ByMonth} {
		assert.Len(t, h, stats.HistogramMonths)
	}
}

func TestCompute_EntradaVacia_JSONSinNulos(t *testing.T) {
	raw, err := json.Marshal(stats.Compute(nil, nil, nil, nil, nil, testNow))
	require.NoError(t, err)

	body := string(raw)
	assert.NotContains(t, body, "null", "ningún campo debe serializarse como null")
	assert.Contains(t, body, `"mostCommented":[]`)
	assert.Contains(t, body, `"ratingDistribution":{"1":0,"2":0,"3":0,"4":0,"5":0}`)
	assert.Contains(t, body, `"byCategory":{"CARNE_EMBUTIDO":0,"FRUTA":0,"HORTALIZA":0,"OTRO":0,"VIANDA":0}`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y mercados
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_UsuariosPorRolYMes(t *testing.T) {
	users := []*entity.User{
		{ID: "a", Role: entity.RoleAdmin, CreatedAt: day(2025, time.January, 3)},       // fuera de ventana
		{ID: "b", Role: entity.RoleMarketManager, CreatedAt: day(2026, time.May, 1)},   // primer mes de la ventana
		{ID: "c", Role: entity.RoleUser, CreatedAt: day(2026, time.October, 15)},       // mes actual
		{ID: "d", Role: entity.RoleUser, CreatedAt: day(2026, time.October, 1)},        // mes actual
		{ID: "e", Role: entity.RoleUser, CreatedAt: day(2026, time.April, 30)},         // justo antes de la ventana
	}

	snap := stats.Compute(users, nil, nil, nil, nil, testNow)

	assert.Equal(t, 5, snap.Users.Total, "el total incluye usuarios fuera de la ventana")
	assert.Equal(t, stats.RoleCounts{Admin: 1, Manager: 1, Regular: 3}, snap.Users.ByRole)
	assert.Equal(t, []stats.MonthCount{
		{Month: "2026-05", Count: 1},
		{Month: "2026-06", Count: 0},
		{Month: "2026-07", Count: 0},
		{Month: "2026-08", Count: 0},
		{Month: "2026-09", Count: 0},
		{Month: "2026-10", Count: 2},
	}, snap.Users.ByMonth)
}

func TestCompute_MercadosPorMes(t *testing.T) {
	markets := []*entity.Market{
		{ID: "m1", CreatedAt: day(2026, time.August, 10)},
		{ID: "m2", CreatedAt: day(2026, time.August, 20)},
		{ID: "m3", CreatedAt: day(2024, time.August, 20)},
	}
	snap := stats.Compute(nil, nil, markets, nil, nil, testNow)

	assert.Equal(t, 3, snap.Markets.Total)
	assert.Equal(t, stats.MonthCount{Month: "2026-08", Count: 2}, snap.Markets.ByMonth[3])
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_ProductosContadores(t *testing.T) {
	products := []*entity.Product{
		product("p1", entity.CategoryFruta, true, true, day(2026, time.October, 2)),
		product("p2", entity.CategoryFruta, false, false, day(2026, time.September, 2)),
		product("p3", entity.CategoryVianda, true, false, day(2026, time.June, 2)),
		product("p4", entity.CategoryCarneEmbutido, true, true, day(2023, time.June, 2)),
	}
	snap := stats.Compute(nil, products, nil, nil, nil, testNow)

	assert.Equal(t, 4, snap.Products.Total)
	assert.Equal(t, 3, snap.Products.Active)
	assert.Equal(t, 1, snap.Products.Inactive)
	assert.Equal(t, 2, snap.Products.SASProgram)
	assert.Equal(t, map[entity.Category]int{
		entity.CategoryFruta:         2,
		entity.CategoryHortaliza:     0,
		entity.CategoryVianda:        1,
		entity.CategoryCarneEmbutido: 1,
		entity.CategoryOtro:          0,
	}, snap.Products.ByCategory)
	assert.Equal(t, snap.Products.Total, sumCounts(snap.Products.ByCategory),
		"byCategory debe sumar products.total")
}

// Escenario de extremo a extremo: conteos [5,2,0] y calificaciones [[5,5,4,3,2],[1,1],[]].
func TestCompute_RankingsEscenarioCompleto(t *testing.T) {
	c := day(2026, time.October, 1)
	products := []*entity.Product{
		product("sin-comentarios", entity.CategoryOtro, true, false, c),
		product("dos-comentarios", entity.CategoryFruta, true, false, c),
		product("cinco-comentarios", entity.CategoryHortaliza, true, false, c),
	}
	var comments []*entity.Comment
	for _, r := range []int{5, 5, 4, 3, 2} {
		comments = append(comments, comment("cinco-comentarios", r, c))
	}
	for _, r := range []int{1, 1} {
		comments = append(comments, comment("dos-comentarios", r, c))
	}

	snap := stats.Compute(nil, products, nil, comments, nil, testNow)

	mc := snap.Products.MostCommented
	require.Len(t, mc, 3)
	assert.Equal(t, []string{"cinco-comentarios", "dos-comentarios", "sin-comentarios"}, []string{mc[0].ID, mc[1].ID, mc[2].ID})
	assert.Equal(t, []int{5, 2, 0}, []int{mc[0].CommentCount, mc[1].CommentCount, mc[2].CommentCount})

	tr := snap.Products.TopRated
	require.Len(t, tr, 3)
	assert.Equal(t, []string{"cinco-comentarios", "dos-comentarios", "sin-comentarios"}, []string{tr[0].ID, tr[1].ID, tr[2].ID})
	assert.Equal(t, []float64{3.8, 1.0, 0}, []float64{tr[0].AverageRating, tr[1].AverageRating, tr[2].AverageRating})

	assert.Equal(t, 7, snap.Comments.Total)
	assert.Equal(t, 3.0, snap.Comments.AverageRating, "21/7 = 3.0")
}

func TestCompute_RankingsLimitadosAlTopN(t *testing.T) {
	var products []*entity.Product
	var comments []*entity.Comment
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("p%d", i)
		products = append(products, product(id, entity.CategoryFruta, true, false, testNow))
		for j := 0; j <= i; j++ {
			comments = append(comments, comment(id, 1+(i+j)%5, testNow))
		}
	}

	snap := stats.Compute(nil, products, nil, comments, nil, testNow)

	require.Len(t, snap.Products.MostCommented, stats.TopN)
	require.Len(t, snap.Products.TopRated, stats.TopN)
	for i := 1; i < stats.TopN; i++ {
		assert.GreaterOrEqual(t, snap.Products.MostCommented[i-1].CommentCount, snap.Products.MostCommented[i].CommentCount)
		assert.GreaterOrEqual(t, snap.Products.TopRated[i-1].AverageRating, snap.Products.TopRated[i].AverageRating)
	}
	assert.Equal(t, "p7", snap.Products.MostCommented[0].ID)
}

func TestCompute_EmpatesConservanOrdenDeEntrada(t *testing.T) {
	c := day(2026, time.October, 1)
	products := []*entity.Product{
		product("primero", entity.CategoryFruta, true, false, c),
		product("segundo", entity.CategoryFruta, true, false, c),
		product("tercero", entity.CategoryFruta, true, false, c),
	}
	comments := []*entity.Comment{
		comment("tercero", 4, c), comment("tercero", 4, c),
		comment("segundo", 4, c), comment("segundo", 4, c),
		comment("primero", 4, c), comment("primero", 4, c),
	}

	snap := stats.Compute(nil, products, nil, comments, nil, testNow)

	for _, ranking := range [][]stats.ProductRank{snap.Products.MostCommented, snap.Products.TopRated} {
		require.Len(t, ranking, 3)
		assert.Equal(t, "primero", ranking[0].ID)
		assert.Equal(t, "segundo", ranking[1].ID)
		assert.Equal(t, "tercero", ranking[2].ID)
	}
}

func TestCompute_TopRatedComparaMediaExacta(t *testing.T) {
	// Ambas medias se muestran como 4.2; el orden usa la media sin redondear (55/13 > 21/5).
	c := day(2026, time.October, 1)
	products := []*entity.Product{
		product("media-4.20", entity.CategoryFruta, true, false, c),
		product("media-4.23", entity.CategoryFruta, true, false, c),
	}
	var comments []*entity.Comment
	for _, r := range []int{5, 5, 4, 3, 4} { // 21/5 = 4.2
		comments = append(comments, comment("media-4.20", r, c))
	}
	for i := 0; i < 13; i++ { // 3×5 + 10×4 = 55; 55/13 ≈ 4.23
		r := 4
		if i < 3 {
			r = 5
		}
		comments = append(comments, comment("media-4.23", r, c.Add(time.Duration(i)*time.Minute)))
	}

	snap := stats.Compute(nil, products, nil, comments, nil, testNow)

	require.Len(t, snap.Products.TopRated, 2)
	assert.Equal(t, "media-4.23", snap.Products.TopRated[0].ID)
	assert.Equal(t, 4.2, snap.Products.TopRated[0].AverageRating)
	assert.Equal(t, 4.2, snap.Products.TopRated[1].AverageRating)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comentarios
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_ComentariosDistribucionYMedia(t *testing.T) {
	products := []*entity.Product{product("p1", entity.CategoryFruta, true, false, testNow)}
	comments := []*entity.Comment{
		comment("p1", 5, day(2026, time.October, 1)),
		comment("p1", 4, day(2026, time.September, 1)),
		comment("p1", 4, day(2026, time.July, 1)),
		comment("p1", 2, day(2025, time.July, 1)),
	}

	snap := stats.Compute(nil, products, nil, comments, nil, testNow)

	assert.Equal(t, 4, snap.Comments.Total)
	assert.Equal(t, map[int]int{1: 0, 2: 1, 3: 0, 4: 2, 5: 1}, snap.Comments.RatingDistribution)
	assert.Equal(t, 3.8, snap.Comments.AverageRating, "15/4 = 3.75 → 3.8")
	assert.Equal(t, snap.Comments.Total, sumCounts(snap.Comments.RatingDistribution))
	assert.Equal(t, 3, snap.Comments.ByMonth[0].Count+snap.Comments.ByMonth[2].Count+snap.Comments.ByMonth[4].Count+snap.Comments.ByMonth[5].Count)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas mal formadas
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalyze_DescartaEntradasMalFormadas(t *testing.T) {
	users := []*entity.User{nil, {ID: "u1", Role: "BODEGUERO"}, {ID: "u2", Role: entity.RoleUser}}
	products := []*entity.Product{
		nil,
		product("p1", entity.CategoryFruta, true, false, testNow),
		product("p1", entity.CategoryFruta, true, false, testNow), // ID repetido
		product("p2", "LACTEO", true, false, testNow),             // categoría desconocida
		product("", entity.CategoryOtro, true, false, testNow),    // sin ID
	}
	comments := []*entity.Comment{
		comment("p1", 5, testNow),
		comment("p1", 0, testNow),           // fuera de rango
		comment("p1", 7, testNow),           // fuera de rango
		comment("no-existe", 3, testNow),    // producto inexistente
		comment("p2", 3, testNow),           // producto descartado
		nil,
	}
	markets := []*entity.Market{nil, {ID: "m1", CreatedAt: testNow}}
	bases := []*entity.ProductBase{{ID: "b1", Category: entity.CategoryVianda}, {ID: "b2", Category: ""}, nil}

	snap, skipped := stats.Analyze(users, products, markets, comments, bases, testNow)

	assert.Equal(t, stats.Skipped{Users: 2, Products: 4, Markets: 1, Comments: 5, BaseProducts: 2}, skipped)
	assert.Equal(t, 14, skipped.Total())

	assert.Equal(t, 1, snap.Users.Total)
	assert.Equal(t, 1, snap.Products.Total)
	assert.Equal(t, 1, snap.Markets.Total)
	assert.Equal(t, 1, snap.Comments.Total)
	assert.Equal(t, 5.0, snap.Comments.AverageRating)
	assert.Equal(t, 1, snap.BaseProducts.Total)
	assert.Equal(t, 1, snap.BaseProducts.ByCategory[entity.CategoryVianda])
	assert.Equal(t, snap.Comments.Total, sumCounts(snap.Comments.RatingDistribution))
	assert.LessOrEqual(t, snap.Comments.AverageRating, 5.0)
	assert.GreaterOrEqual(t, snap.Comments.AverageRating, 0.0)
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinismo
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_Idempotente(t *testing.T) {
	c := day(2026, time.August, 5)
	users := []*entity.User{{ID: "u1", Role: entity.RoleAdmin, CreatedAt: c}}
	products := []*entity.Product{
		product("p1", entity.CategoryFruta, true, true, c),
		product("p2", entity.CategoryHortaliza, false, false, c),
	}
	comments := []*entity.Comment{comment("p1", 3, c), comment("p2", 5, c), comment("p2", 4, c)}
	markets := []*entity.Market{{ID: "m1", CreatedAt: c}}
	bases := []*entity.ProductBase{{ID: "b1", Category: entity.CategoryOtro}}

	first, err := json.Marshal(stats.Compute(users, products, markets, comments, bases, testNow))
	require.NoError(t, err)
	second, err := json.Marshal(stats.Compute(users, products, markets, comments, bases, testNow))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "misma entrada y mismo now → JSON idéntico")
}

func TestCompute_NoModificaLaEntrada(t *testing.T) {
	c := day(2026, time.October, 1)
	products := []*entity.Product{
		product("a", entity.CategoryFruta, true, false, c),
		product("b", entity.CategoryFruta, true, false, c),
	}
	comments := []*entity.Comment{comment("b", 5, c)}

	_ = stats.Compute(nil, products, nil, comments, nil, testNow)

	assert.Equal(t, "a", products[0].ID, "el ranking ordena una copia, no la entrada")
	assert.Equal(t, "b", products[1].ID)
}
