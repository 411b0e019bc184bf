// Package feed publica el catálogo de un mercado como documento XML.
//
// Estructura:
//
//	<catalog version="1">
//	  <market id="…" updated="…">
//	    <name/> <municipality/> <address/> <description/> <image/>
//	    <schedule><day n="1" open="07:00" close="13:00"/>…</schedule>
//	  </market>
//	  <products count="N">
//	    <product id="…" category="FRUTA" sas="true" base="…">
//	      <name/> <unit/> <price currency="CUP">12.50</price> <description/> <image/>
//	    </product>
//	  </products>
//	</catalog>
//
// El ETag es el SHA-256 de la forma canónica (C14N) del documento: cambia solo si cambia el contenido.
package feed

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Agromercados-api/internal/application/ports"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

// CatalogVersion versión del formato del feed.
const CatalogVersion = "1"

var _ ports.CatalogFeedBuilder = (*CatalogXMLBuilder)(nil)

// CatalogXMLBuilder construye el feed con etree.
type CatalogXMLBuilder struct {
	currency string
}

// NewCatalogXMLBuilder construye el builder. currency se informa en cada precio.
func NewCatalogXMLBuilder(currency string) *CatalogXMLBuilder {
	if currency == "" {
		currency = "CUP"
	}
	return &CatalogXMLBuilder{currency: currency}
}

// Build serializa mercado, horarios y productos; devuelve el documento y su ETag.
func (b *CatalogXMLBuilder) Build(market *entity.Market, schedules []*entity.MarketSchedule, products []*entity.Product) ([]byte, string, error) {
	if market == nil {
		return nil, "", fmt.Errorf("feed: mercado nil")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("catalog")
	root.CreateAttr("version", CatalogVersion)

	m := root.CreateElement("market")
	m.CreateAttr("id", market.ID)
	m.CreateAttr("updated", market.UpdatedAt.UTC().Format(time.RFC3339))
	addText(m, "name", market.Name)
	addText(m, "municipality", market.Municipality)
	addText(m, "address", market.Address)
	addText(m, "description", market.Description)
	addText(m, "image", market.ImageURL)

	if len(schedules) > 0 {
		sch := m.CreateElement("schedule")
		for _, s := range schedules {
			day := sch.CreateElement("day")
			day.CreateAttr("n", strconv.Itoa(s.DayOfWeek))
			day.CreateAttr("open", s.OpenTime)
			day.CreateAttr("close", s.CloseTime)
		}
	}

	ps := root.CreateElement("products")
	ps.CreateAttr("count", strconv.Itoa(len(products)))
	for _, p := range products {
		el := ps.CreateElement("product")
		el.CreateAttr("id", p.ID)
		el.CreateAttr("category", string(p.Category))
		el.CreateAttr("sas", strconv.FormatBool(p.SASProgram))
		if p.BaseID != "" {
			el.CreateAttr("base", p.BaseID)
		}
		addText(el, "name", p.Name)
		addText(el, "unit", p.Unit)
		price := el.CreateElement("price")
		price.CreateAttr("currency", b.currency)
		price.SetText(p.Price.StringFixed(2))
		addText(el, "description", p.Description)
		addText(el, "image", p.ImageURL)
	}

	doc.Indent(2)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("feed: serializar: %w", err)
	}
	etag, err := ETag(body)
	if err != nil {
		return nil, "", err
	}
	return body, etag, nil
}

// ETag calcula el ETag fuerte del documento a partir de su forma canónica (sin declaración
// ni indentación), de modo que el formato de serialización no lo altera.
func ETag(body []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return "", fmt.Errorf("feed: parsear: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return "", fmt.Errorf("feed: documento sin raíz")
	}
	rootOnly := etree.NewDocument()
	rootOnly.SetRoot(root.Copy())
	rootOnly.Unindent()
	raw, err := rootOnly.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("feed: serializar raíz: %w", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("feed: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return `"` + hex.EncodeToString(sum[:16]) + `"`, nil
}

// addText crea el hijo solo si hay contenido.
func addText(parent *etree.Element, tag, value string) {
	if value == "" {
		return
	}
	parent.CreateElement(tag).SetText(value)
}
