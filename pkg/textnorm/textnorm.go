// Package textnorm normaliza texto en español para búsquedas insensibles a tildes y mayúsculas.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s sin diacríticos, en minúsculas y con espacios colapsados.
// Ej: "  Plátano   Macho " → "platano macho", "Güira de Melena" → "guira de melena".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}

// Contains indica si needle aparece en haystack tras normalizar ambos con Fold.
// Un needle vacío siempre coincide.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}

// LikePattern construye un patrón ILIKE ('%texto%') a partir del término normalizado,
// escapando los comodines de SQL.
func LikePattern(term string) string {
	f := Fold(term)
	if f == "" {
		return ""
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(f) + "%"
}
