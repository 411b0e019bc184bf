// Package pdf genera el reporte de estadísticas del directorio de mercados.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: usuarios | mercados | productos | comentarios      │
//	│  USUARIOS POR ROL / PRODUCTOS POR CATEGORÍA                  │
//	│  HISTOGRAMA: altas por mes (últimos 6 meses)                 │
//	│  RANKINGS: más comentados | mejor valorados                  │
//	│  DISTRIBUCIÓN DE CALIFICACIONES                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Agromercados-api/internal/application/ports"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/stats"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 125, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var categoryLabels = map[entity.Category]string{
	entity.CategoryFruta:         "Frutas",
	entity.CategoryHortaliza:     "Hortalizas",
	entity.CategoryVianda:        "Viandas",
	entity.CategoryCarneEmbutido: "Cárnicos y embutidos",
	entity.CategoryOtro:          "Otros",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.StatsReportGenerator = (*MarotoStatsReport)(nil)

// MarotoStatsReport implementa ports.StatsReportGenerator usando Maroto v2.
type MarotoStatsReport struct {
	title string
}

// NewMarotoStatsReport construye el generador. title aparece en la cabecera y en los metadatos.
func NewMarotoStatsReport(title string) *MarotoStatsReport {
	if title == "" {
		title = "Agromercados"
	}
	return &MarotoStatsReport{title: title}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoStatsReport) Generate(snap stats.Snapshot, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title+" - Estadísticas", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Usuarios por rol"))
	m.AddRows(
		pairRow("Administradores", itoa(snap.Users.ByRole.Admin)),
		pairRow("Gestores de mercado", itoa(snap.Users.ByRole.Manager)),
		pairRow("Usuarios", itoa(snap.Users.ByRole.Regular)),
	)

	m.AddRows(sectionTitle("Productos"))
	m.AddRows(
		pairRow("Disponibles", itoa(snap.Products.Active)),
		pairRow("No disponibles", itoa(snap.Products.Inactive)),
		pairRow("Programa SAS", itoa(snap.Products.SASProgram)),
	)
	for _, c := range entity.Categories() {
		m.AddRows(pairRow(categoryLabels[c], itoa(snap.Products.ByCategory[c])))
	}

	m.AddRows(sectionTitle("Altas por mes"))
	m.AddRows(histogramHeaderRow())
	for _, r := range histogramRows(snap) {
		m.AddRows(r)
	}

	m.AddRows(sectionTitle("Productos más comentados"))
	m.AddRows(rankingRows(snap.Products.MostCommented)...)

	m.AddRows(sectionTitle("Productos mejor valorados"))
	m.AddRows(rankingRows(snap.Products.TopRated)...)

	m.AddRows(sectionTitle(fmt.Sprintf("Calificaciones (media %.1f)", snap.Comments.AverageRating)))
	for r := entity.MaxRating; r >= entity.MinRating; r-- {
		m.AddRows(pairRow(stars(r), itoa(snap.Comments.RatingDistribution[r])))
	}

	m.AddRows(sectionTitle("Catálogo de productos base"))
	m.AddRows(pairRow("Plantillas", itoa(snap.BaseProducts.Total)))
	for _, c := range entity.Categories() {
		m.AddRows(pairRow(categoryLabels[c], itoa(snap.BaseProducts.ByCategory[c])))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de estadísticas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// summaryRow: cuatro totales principales.
func summaryRow(snap stats.Snapshot) core.Row {
	box := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(formatThousands(value), props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 2,
			}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 11, Color: colorGray}),
		)
	}
	return row.New(18).Add(
		box("Usuarios", snap.Users.Total),
		box("Mercados", snap.Markets.Total),
		box("Productos", snap.Products.Total),
		box("Comentarios", snap.Comments.Total),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3}),
	))
}

func pairRow(label, value string) core.Row {
	return row.New(5).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 8, Left: 2, Top: 0.5})),
		col.New(4).Add(text.New(value, props.Text{Size: 8, Align: align.Right, Right: 2, Top: 0.5})),
	)
}

func histogramHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Mes", 3, align.Left),
		h("Usuarios", 3, align.Right),
		h("Mercados", 2, align.Right),
		h("Productos", 2, align.Right),
		h("Comentarios", 2, align.Right),
	)
}

// histogramRows: una fila por mes; las cuatro series comparten la misma ventana.
func histogramRows(snap stats.Snapshot) []core.Row {
	rows := make([]core.Row, 0, len(snap.Products.ByMonth))
	for i, mc := range snap.Products.ByMonth {
		cell := func(v string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(v, props.Text{Size: 8, Align: a, Left: 1, Right: 1}))
		}
		rows = append(rows, row.New(5).Add(
			cell(mc.Month, 3, align.Left),
			cell(itoa(countAt(snap.Users.ByMonth, i)), 3, align.Right),
			cell(itoa(countAt(snap.Markets.ByMonth, i)), 2, align.Right),
			cell(itoa(mc.Count), 2, align.Right),
			cell(itoa(countAt(snap.Comments.ByMonth, i)), 2, align.Right),
		))
	}
	return rows
}

func rankingRows(ranks []stats.ProductRank) []core.Row {
	if len(ranks) == 0 {
		return []core.Row{row.New(5).Add(col.New(12).Add(
			text.New("Sin datos", props.Text{Size: 8, Left: 2, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(ranks))
	for i, r := range ranks {
		rows = append(rows, row.New(5).Add(
			col.New(1).Add(text.New(itoa(i+1)+".", props.Text{Size: 8, Align: align.Right})),
			col.New(7).Add(text.New(r.Name, props.Text{Size: 8, Left: 2})),
			col.New(2).Add(text.New(itoa(r.CommentCount)+" coment.", props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(fmt.Sprintf("%.1f", r.AverageRating), props.Text{Size: 8, Align: align.Right, Right: 2})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func countAt(months []stats.MonthCount, i int) int {
	if i < len(months) {
		return months[i].Count
	}
	return 0
}

func itoa(n int) string { return strconv.Itoa(n) }

func stars(n int) string {
	if n == 1 {
		return "1 estrella"
	}
	return itoa(n) + " estrellas"
}

// formatThousands inserta puntos de miles. Ej: 25000 → "25.000".
func formatThousands(v int) string {
	if v < 0 {
		return "-" + formatThousands(-v)
	}
	s := strconv.Itoa(v)
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
