package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	cases := map[string]string{
		"a1-r01-s01-b01":  "A1-R01-S01-B01",
		"  sku1 \t":       "SKU1",
		"７５０１２３":          "750123", // dígitos de ancho completo
		"":                "",
		"   ":             "",
		"Recv-01":         "RECV-01",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeCode(in), "input %q", in)
	}
}

func TestNormalizeCodes_DescartaVacios(t *testing.T) {
	got := NormalizeCodes([]string{"a1", " ", "", "b2 "})
	assert.Equal(t, []string{"A1", "B2"}, got)
}
