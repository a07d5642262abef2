package querykey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Logistica-bff/internal/application/querykey"
)

func TestBuilder_FormatoConTenant(t *testing.T) {
	b := querykey.NewBuilder("logistica")

	assert.Equal(t, "logistica:areas", b.Areas().String())
	assert.Equal(t, "logistica:area:a1", b.Area("a1").String())
	assert.Equal(t, "logistica:warehouse-supervisors:w1", b.WarehouseSupervisors("w1").String())
}

func TestBuilder_FiltrosEstables(t *testing.T) {
	b := querykey.NewBuilder("t")

	k1 := b.Boxes(map[string]string{"status": "EN_USO", "warehouseId": "w1", "search": ""})
	k2 := b.Boxes(map[string]string{"warehouseId": "w1", "status": "EN_USO"})

	assert.Equal(t, k1.String(), k2.String())
	assert.Equal(t, "t:boxes:status=EN_USO:warehouseId=w1", k1.String())
}

func TestKey_HasPrefix(t *testing.T) {
	b := querykey.NewBuilder("t")

	filtrada := b.Users(map[string]string{"role": "SUPERVISOR"})
	assert.True(t, filtrada.HasPrefix(b.Users(nil)), "invalidar la lista invalida sus variantes filtradas")
	assert.False(t, b.Areas().HasPrefix(b.Area("x")))
	assert.False(t, b.Area("a1").HasPrefix(b.Areas()), "area y areas son tipos distintos")
	assert.False(t, querykey.NewBuilder("otro").Areas().HasPrefix(b.Areas()))
}
