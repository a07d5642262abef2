package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

// AssignmentReport datos del PDF de historial de asignaciones.
type AssignmentReport struct {
	User        entity.User
	Entries     []entity.AssignmentHistoryEntry
	GeneratedAt time.Time
	GeneratedBy string
}

// DocumentRenderer puerto de generación de documentos imprimibles.
type DocumentRenderer interface {
	AssignmentHistory(ctx context.Context, in AssignmentReport) ([]byte, error)
	BoxLabel(ctx context.Context, b *entity.Box) ([]byte, error)
}

// ReportUseCase documentos PDF del panel.
type ReportUseCase struct {
	catalog  *Catalog
	users    *UserUseCase
	boxes    *BoxUseCase
	renderer DocumentRenderer
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(catalog *Catalog, users *UserUseCase, boxes *BoxUseCase, renderer DocumentRenderer) *ReportUseCase {
	return &ReportUseCase{catalog: catalog, users: users, boxes: boxes, renderer: renderer, now: time.Now}
}

// AssignmentHistoryPDF historial de asignaciones de un usuario visible. Devuelve el PDF y
// un nombre de archivo sugerido.
func (uc *ReportUseCase) AssignmentHistoryPDF(ctx context.Context, actor visibility.Actor, userID string) ([]byte, string, error) {
	u, err := uc.users.visibleUser(ctx, actor, userID)
	if err != nil {
		return nil, "", err
	}
	entries, err := uc.users.assignmentHistory(ctx, actor, userID)
	if err != nil {
		return nil, "", err
	}
	by := actor.ID
	if p, err := uc.catalog.Profile(ctx, actor.ID); err == nil && p.FullName() != "" {
		by = p.FullName()
	}
	now := uc.now()
	doc, err := uc.renderer.AssignmentHistory(ctx, AssignmentReport{
		User:        *u,
		Entries:     entries,
		GeneratedAt: now,
		GeneratedBy: by,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte de asignaciones: %w", err)
	}
	return doc, fmt.Sprintf("asignaciones-%s-%s.pdf", u.ID, now.Format("20060102")), nil
}

// BoxLabelPDF etiqueta con QR de una caja visible.
func (uc *ReportUseCase) BoxLabelPDF(ctx context.Context, actor visibility.Actor, boxID string) ([]byte, string, error) {
	b, err := uc.boxes.Box(ctx, actor, boxID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.renderer.BoxLabel(ctx, b)
	if err != nil {
		return nil, "", fmt.Errorf("etiqueta de caja: %w", err)
	}
	return doc, fmt.Sprintf("caja-%s.pdf", b.QRCode), nil
}
