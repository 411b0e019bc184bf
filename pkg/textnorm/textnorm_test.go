package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Agromercados-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"  Plátano   Macho ": "platano macho",
		"Güira de Melena":    "guira de melena",
		"AJÍ CACHUCHA":       "aji cachucha",
		"Ñame":               "name",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, textnorm.Fold(in), "Fold(%q)", in)
	}
}

func TestContains_IgnoraTildesYMayusculas(t *testing.T) {
	assert.True(t, textnorm.Contains("Mercado Agropecuario Cuatro Caminos", "cuatro camínos"))
	assert.True(t, textnorm.Contains("Boniato", ""), "el término vacío siempre coincide")
	assert.False(t, textnorm.Contains("Malanga", "yuca"))
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%50\% descuento%`, textnorm.LikePattern("50% Descuento"))
	assert.Equal(t, `%col\_rizada%`, textnorm.LikePattern("Col_Rizada"))
	assert.Equal(t, "", textnorm.LikePattern("   "))
}
