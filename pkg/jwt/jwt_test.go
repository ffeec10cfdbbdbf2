package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	id := Identity{UserID: "u-1", Email: "ana@example.com", Name: "Ana", Role: "operator"}

	token, err := Generate("secret", "wh-mapping", 60, id)
	require.NoError(t, err)

	got, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secret", "wh-mapping", 60, Identity{UserID: "u-1"})
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate("secret", "wh-mapping", -1, Identity{UserID: "u-1"})
	require.NoError(t, err)

	_, err = Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "wh-mapping", 60, Identity{})
	assert.Error(t, err)
}
