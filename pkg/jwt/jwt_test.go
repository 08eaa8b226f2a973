package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(testSecret, "US100001", "admin", "elbaul-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "US100001", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID, "cada token lleva su jti")
	assert.InDelta(t, time.Hour.Seconds(), claims.TTL(time.Now()).Seconds(), 5)
}

func TestGenerate_JTIUnicoPorToken(t *testing.T) {
	a, err := Generate(testSecret, "US100001", "cliente", "elbaul-test", 60)
	require.NoError(t, err)
	b, err := Generate(testSecret, "US100001", "cliente", "elbaul-test", 60)
	require.NoError(t, err)

	ca, err := Parse(testSecret, a)
	require.NoError(t, err)
	cb, err := Parse(testSecret, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(testSecret, "US100001", "admin", "elbaul-test", -1)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(testSecret, "US100001", "admin", "elbaul-test", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "US100001", "admin", "elbaul-test", 60)
	assert.Error(t, err)
}
