// Package pdf genera los documentos imprimibles del panel: el historial de asignaciones
// de un usuario y la etiqueta QR de una caja.
//
// Layout del historial (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + tenant    │  fecha de emisión              │
//	│  USUARIO: nombre, rol, RUT, estado                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | Destino | Asignado | Revocado | Estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: activas / revocadas                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRevoked = &props.Color{Red: 160, Green: 40, Blue: 40}
)

const dateLayout = "02/01/2006 15:04"

// Generator implementa usecase.DocumentRenderer con Maroto v2.
type Generator struct {
	tenant string
}

var _ usecase.DocumentRenderer = (*Generator)(nil)

// NewGenerator construye el generador.
func NewGenerator(tenant string) *Generator { return &Generator{tenant: tenant} }

// AssignmentHistory genera el PDF del historial de asignaciones.
func (g *Generator) AssignmentHistory(_ context.Context, in usecase.AssignmentReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de asignaciones", true).
		WithAuthor(in.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(in.GeneratedAt))
	m.AddRows(userRow(in.User))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(in.Entries) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin asignaciones registradas.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(entryRows(in.Entries)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(in.Entries))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar historial: %w", err)
	}
	return doc.GetBytes(), nil
}

// BoxLabel genera la etiqueta imprimible de una caja con su código QR.
func (g *Generator) BoxLabel(_ context.Context, b *entity.Box) ([]byte, error) {
	if b.QRCode == "" {
		return nil, fmt.Errorf("pdf: la caja %s no tiene código QR", b.ID)
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta "+b.QRCode, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(
		row.New(10).Add(col.New(12).Add(
			text.New(nonEmpty(b.Name, b.QRCode), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center}),
		)),
		row.New(70).Add(col.New(12).Add(code.NewQr(b.QRCode, props.Rect{Percent: 90, Center: true}))),
		row.New(6).Add(col.New(12).Add(
			text.New(b.QRCode, props.Text{Size: 8, Align: align.Center, Color: colorGray}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New("Bodega: "+nonEmpty(b.WarehouseName, b.WarehouseID), props.Text{Size: 8, Align: align.Center}),
		)),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *Generator) headerRow(at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("HISTORIAL DE ASIGNACIONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tenant: "+g.tenant, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Emitido: "+at.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func userRow(u entity.User) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New(u.FullName(), props.Text{Style: fontstyle.Bold, Size: 11, Top: 1}),
		text.New(fmt.Sprintf("Rol: %s   |   RUT: %s   |   Email: %s   |   Estado: %s",
			u.Role, nonEmpty(u.RUT, "-"), nonEmpty(u.Email, "-"), nonEmpty(u.Status, "-"),
		), props.Text{Size: 8, Top: 8, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 2),
		h("Destino", 4),
		h("Asignado", 2),
		h("Revocado", 2),
		h("Estado", 2),
	)
}

func entryRows(entries []entity.AssignmentHistoryEntry) []core.Row {
	out := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		state, color := "ACTIVA", colorPrimary
		if !e.IsActive {
			state, color = "REVOCADA", colorRevoked
		}
		revoked := "-"
		if e.RevokedAt != nil {
			revoked = e.RevokedAt.Format(dateLayout)
		}
		cell := func(s string, size int) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1}))
		}
		out = append(out, row.New(7).Add(
			cell(kindLabel(e.Kind), 2),
			cell(nonEmpty(e.TargetName, e.TargetID), 4),
			cell(e.AssignedAt.Format(dateLayout), 2),
			cell(revoked, 2),
			col.New(2).Add(text.New(state, props.Text{Size: 8, Top: 1, Left: 1, Style: fontstyle.Bold, Color: color})),
		))
	}
	return out
}

func summaryRow(entries []entity.AssignmentHistoryEntry) core.Row {
	active := 0
	for _, e := range entries {
		if e.IsActive {
			active++
		}
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Activas: %d   |   Revocadas: %d   |   Total: %d", active, len(entries)-active, len(entries)),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2}),
	))
}

func kindLabel(kind string) string {
	switch kind {
	case entity.AssignmentKindArea:
		return "Área"
	case entity.AssignmentKindWarehouse:
		return "Bodega"
	default:
		return kind
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
