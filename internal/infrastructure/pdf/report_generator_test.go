package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/infrastructure/pdf"
)

func TestAssignmentHistory_GeneraPDF(t *testing.T) {
	revoked := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	g := pdf.NewGenerator("logistica")

	doc, err := g.AssignmentHistory(context.Background(), usecase.AssignmentReport{
		User: entity.User{ID: "u1", Name: "Ana", LastName: "Pérez", Role: role.Jefe, Status: entity.UserStatusEnabled},
		Entries: []entity.AssignmentHistoryEntry{
			{ID: "1", Kind: entity.AssignmentKindArea, TargetName: "Bodega Norte", AssignedAt: revoked.Add(-48 * time.Hour), IsActive: true},
			{ID: "2", Kind: entity.AssignmentKindArea, TargetID: "a9", AssignedAt: revoked.Add(-24 * time.Hour), RevokedAt: &revoked},
		},
		GeneratedAt: revoked,
		GeneratedBy: "admin",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestBoxLabel_RequiereQR(t *testing.T) {
	g := pdf.NewGenerator("logistica")

	_, err := g.BoxLabel(context.Background(), &entity.Box{ID: "b1"})
	assert.Error(t, err)

	doc, err := g.BoxLabel(context.Background(), &entity.Box{ID: "b1", QRCode: "BOX-0001", Name: "Herramientas"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}
