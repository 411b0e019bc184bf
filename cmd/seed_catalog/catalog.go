package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// seedNamespace fija los UUID del catálogo: el mismo nombre produce siempre el mismo id.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("agromercados/product-bases"))

type baseItem struct {
	ID          string
	Name        string
	Category    entity.Category
	Unit        string
	Description string
	Nutrition   string
	Price       decimal.Decimal
}

// parseCatalog lee <catalogo><producto nombre=".." categoria=".." unidad=".." precio=".."> con
// hijos opcionales <descripcion> y <nutricion>. Descarta entradas sin nombre o con categoría
// desconocida; ante nombres repetidos gana la última.
func parseCatalog(r io.Reader) ([]baseItem, int, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") || strings.EqualFold(charset, "latin1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, 0, fmt.Errorf("decodificar XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, 0, fmt.Errorf("documento vacío")
	}

	byName := make(map[string]baseItem)
	skipped := 0
	for _, el := range root.SelectElements("producto") {
		name := strings.TrimSpace(el.SelectAttrValue("nombre", ""))
		cat, ok := entity.ParseCategory(el.SelectAttrValue("categoria", ""))
		if name == "" || !ok {
			skipped++
			continue
		}
		price := decimal.Zero
		if raw := strings.TrimSpace(el.SelectAttrValue("precio", "")); raw != "" {
			p, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
			if err != nil || p.IsNegative() {
				skipped++
				continue
			}
			price = p.Round(2)
		}
		byName[name] = baseItem{
			ID:          uuid.NewSHA1(seedNamespace, []byte(strings.ToLower(name))).String(),
			Name:        name,
			Category:    cat,
			Unit:        strings.TrimSpace(el.SelectAttrValue("unidad", "")),
			Description: childText(el, "descripcion"),
			Nutrition:   childText(el, "nutricion"),
			Price:       price,
		}
	}

	items := make([]baseItem, 0, len(byName))
	for _, it := range byName {
		items = append(items, it)
	}
	// salida estable
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, skipped, nil
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

func writeSQL(w io.Writer, items []baseItem, source string) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos base\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", source)
	if len(items) == 0 {
		b.WriteString("-- sin entradas\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO product_bases (id, name, category, unit, description, nutrition, reference_price) VALUES\n")
	for i, it := range items {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', '%s', %s)",
			it.ID, escapeSQL(it.Name), it.Category, escapeSQL(it.Unit),
			escapeSQL(it.Description), escapeSQL(it.Nutrition), it.Price.StringFixed(2))
		if i < len(items)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString("ON CONFLICT (name) DO UPDATE SET\n")
	b.WriteString("  category = EXCLUDED.category,\n")
	b.WriteString("  unit = EXCLUDED.unit,\n")
	b.WriteString("  description = EXCLUDED.description,\n")
	b.WriteString("  nutrition = EXCLUDED.nutrition,\n")
	b.WriteString("  reference_price = EXCLUDED.reference_price,\n")
	b.WriteString("  updated_at = now();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
