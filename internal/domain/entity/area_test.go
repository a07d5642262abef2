package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func arbolLogistica() []entity.Area {
	return []entity.Area{{
		ID: "a-log", Name: "Logística", Level: 0, Status: entity.AreaStatusActive, NodeType: entity.AreaNodeRoot,
		SubAreasCount: 1,
		Children: []entity.Area{{
			ID: "a-norte", Name: "Bodega Norte", Level: 1, ParentID: strPtr("a-log"),
			Status: entity.AreaStatusActive, NodeType: entity.AreaNodeChild,
		}},
	}}
}

func TestLevelFor(t *testing.T) {
	root := &entity.Area{ID: "r", Level: 0}
	child := &entity.Area{ID: "c", Level: 1}

	assert.Equal(t, 0, entity.LevelFor(nil))
	assert.Equal(t, 1, entity.LevelFor(root))
	assert.Equal(t, 2, entity.LevelFor(child))
	assert.Equal(t, entity.AreaNodeRoot, entity.NodeTypeFor(nil))
	assert.Equal(t, entity.AreaNodeChild, entity.NodeTypeFor(root))
}

func TestValidateHierarchy_NivelesDelArbol(t *testing.T) {
	flat := entity.FlattenAreas(arbolLogistica())
	require.Len(t, flat, 2)
	idx := entity.IndexAreas(flat)

	for _, a := range flat {
		assert.NoError(t, a.ValidateHierarchy(idx), "área %s debe ser consistente", a.Name)
	}

	mal := entity.Area{ID: "x", Level: 3, ParentID: strPtr("a-log")}
	assert.ErrorIs(t, mal.ValidateHierarchy(idx), domain.ErrInvalidHierarchy)

	raizMal := entity.Area{ID: "y", Level: 1}
	assert.ErrorIs(t, raizMal.ValidateHierarchy(idx), domain.ErrInvalidHierarchy)

	huerfana := entity.Area{ID: "z", Level: 1, ParentID: strPtr("no-existe")}
	assert.ErrorIs(t, huerfana.ValidateHierarchy(idx), domain.ErrNotFound)
}

func TestIsLeaf(t *testing.T) {
	flat := entity.FlattenAreas(arbolLogistica())
	idx := entity.IndexAreas(flat)

	assert.False(t, idx["a-log"].IsLeaf(), "Logística tiene un hijo")
	assert.True(t, idx["a-norte"].IsLeaf())

	soloContador := entity.Area{ID: "c", SubAreasCount: 2}
	assert.False(t, soloContador.IsLeaf(), "el contador del backend basta para no ser hoja")
}

func TestActiveTargets_ProyectaHistorial(t *testing.T) {
	history := []entity.Assignment{
		{ID: "1", TargetID: "a1", IsActive: true},
		{ID: "2", TargetID: "a2", IsActive: false},
		{ID: "3", TargetID: "a3", IsActive: true},
		{ID: "4", TargetID: "a1", IsActive: true},
	}
	assert.Equal(t, []string{"a1", "a3"}, entity.ActiveTargets(history))
}

func TestUser_HasActiveAreaAssignment(t *testing.T) {
	u := entity.User{
		Status: entity.UserStatusEnabled,
		AreaAssignments: []entity.Assignment{
			{TargetID: "a1", IsActive: false},
			{TargetID: "a2", IsActive: true},
		},
	}
	assert.False(t, u.HasActiveAreaAssignment("a1"), "una asignación revocada no cuenta")
	assert.True(t, u.HasActiveAreaAssignment("a2"))
	assert.Equal(t, entity.UserStatusDisabled, u.ToggledStatus())
}
