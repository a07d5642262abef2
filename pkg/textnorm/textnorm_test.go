package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Logistica-bff/pkg/textnorm"
)

func TestFold_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "logistica", textnorm.Fold("  Logística "))
	assert.Equal(t, "bodega nino", textnorm.Fold("Bodega Niño"))
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Bodega Norte", "norte"))
	assert.True(t, textnorm.Contains("Área Logística", "area log"))
	assert.True(t, textnorm.Contains("cualquier cosa", ""))
	assert.False(t, textnorm.Contains("Bodega Sur", "norte"))
}

func TestUpper(t *testing.T) {
	assert.Equal(t, "JEFE_AREA", textnorm.Upper(" jefe_area "))
}
