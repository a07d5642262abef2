package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
)

var _ repository.BoxRepository = (*BoxRepo)(nil)

// BoxRepo implementación del puerto BoxRepository sobre /boxes.
type BoxRepo struct {
	c *Client
}

// NewBoxRepository construye el adaptador.
func NewBoxRepository(c *Client) *BoxRepo {
	return &BoxRepo{c: c}
}

func (r *BoxRepo) one(op string, call func(out *boxDTO) error) (*entity.Box, error) {
	var out boxDTO
	if err := call(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b := out.toEntity()
	return &b, nil
}

// List cajas filtradas.
func (r *BoxRepo) List(ctx context.Context, f repository.BoxFilter) ([]entity.Box, error) {
	q := url.Values{}
	if f.WarehouseID != "" {
		q.Set("warehouseId", f.WarehouseID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	var out []boxDTO
	if err := r.c.get(ctx, "/boxes", q, &out); err != nil {
		return nil, fmt.Errorf("listar cajas: %w", err)
	}
	return boxesToEntities(out), nil
}

// GetByID detalle de una caja.
func (r *BoxRepo) GetByID(ctx context.Context, id string) (*entity.Box, error) {
	return r.one("obtener caja", func(out *boxDTO) error {
		return r.c.get(ctx, pathf("/boxes/%s", id), nil, out)
	})
}

// GetByQR caja por código QR.
func (r *BoxRepo) GetByQR(ctx context.Context, qrCode string) (*entity.Box, error) {
	return r.one("obtener caja por QR", func(out *boxDTO) error {
		return r.c.get(ctx, pathf("/boxes/qr/%s", qrCode), nil, out)
	})
}

// Create crea una caja.
func (r *BoxRepo) Create(ctx context.Context, in repository.BoxWrite) (*entity.Box, error) {
	return r.one("crear caja", func(out *boxDTO) error {
		return r.c.post(ctx, "/boxes", toBoxWrite(in), out)
	})
}

// Update actualiza una caja.
func (r *BoxRepo) Update(ctx context.Context, id string, in repository.BoxWrite) (*entity.Box, error) {
	return r.one("actualizar caja", func(out *boxDTO) error {
		return r.c.patch(ctx, pathf("/boxes/%s", id), toBoxWrite(in), out)
	})
}

// Delete elimina una caja.
func (r *BoxRepo) Delete(ctx context.Context, id string) error {
	if err := r.c.delete(ctx, pathf("/boxes/%s", id), nil); err != nil {
		return fmt.Errorf("eliminar caja: %w", err)
	}
	return nil
}

// Move traslada la caja a otra bodega.
func (r *BoxRepo) Move(ctx context.Context, id, toWarehouseID, reason string) (*entity.Box, error) {
	body := map[string]string{"warehouseId": toWarehouseID, "reason": reason}
	return r.one("mover caja", func(out *boxDTO) error {
		return r.c.patch(ctx, pathf("/boxes/%s/move", id), body, out)
	})
}

// ChangeStatus cambia el estado de la caja.
func (r *BoxRepo) ChangeStatus(ctx context.Context, id, status, reason string) (*entity.Box, error) {
	body := map[string]string{"status": status, "reason": reason}
	return r.one("cambiar estado de caja", func(out *boxDTO) error {
		return r.c.patch(ctx, pathf("/boxes/%s/status", id), body, out)
	})
}

// Deactivate da de baja la caja sin borrarla.
func (r *BoxRepo) Deactivate(ctx context.Context, id, reason string) (*entity.Box, error) {
	body := map[string]string{"reason": reason}
	return r.one("desactivar caja", func(out *boxDTO) error {
		return r.c.patch(ctx, pathf("/boxes/%s/deactivate", id), body, out)
	})
}

// History movimientos y cambios de estado de la caja.
func (r *BoxRepo) History(ctx context.Context, id string) ([]entity.BoxHistoryEntry, error) {
	var out []boxHistoryDTO
	if err := r.c.get(ctx, pathf("/boxes/%s/history", id), nil, &out); err != nil {
		return nil, fmt.Errorf("historial de caja: %w", err)
	}
	list := make([]entity.BoxHistoryEntry, 0, len(out))
	for _, h := range out {
		list = append(list, entity.BoxHistoryEntry{
			ID:              h.ID,
			BoxID:           h.BoxID,
			Action:          h.Action,
			FromWarehouseID: h.FromWarehouseID,
			ToWarehouseID:   h.ToWarehouseID,
			PreviousStatus:  h.PreviousStatus,
			NewStatus:       h.NewStatus,
			PerformedBy:     h.PerformedBy,
			CreatedAt:       h.CreatedAt,
			Details:         h.Details,
		})
	}
	return list, nil
}

// AddEquipment agrega un equipo a la caja.
func (r *BoxRepo) AddEquipment(ctx context.Context, boxID string, in repository.BoxItemWrite) (*entity.Box, error) {
	return r.one("agregar equipo", func(out *boxDTO) error {
		return r.c.post(ctx, pathf("/boxes/%s/equipments", boxID), boxItemWriteDTO(in), out)
	})
}

// RemoveEquipment quita un equipo de la caja.
func (r *BoxRepo) RemoveEquipment(ctx context.Context, boxID, equipmentID string) error {
	if err := r.c.delete(ctx, pathf("/boxes/%s/equipments/%s", boxID, equipmentID), nil); err != nil {
		return fmt.Errorf("quitar equipo: %w", err)
	}
	return nil
}

// AddMaterial agrega un material a la caja.
func (r *BoxRepo) AddMaterial(ctx context.Context, boxID string, in repository.BoxItemWrite) (*entity.Box, error) {
	return r.one("agregar material", func(out *boxDTO) error {
		return r.c.post(ctx, pathf("/boxes/%s/materials", boxID), boxItemWriteDTO(in), out)
	})
}

// RemoveMaterial quita un material de la caja.
func (r *BoxRepo) RemoveMaterial(ctx context.Context, boxID, materialID string) error {
	if err := r.c.delete(ctx, pathf("/boxes/%s/materials/%s", boxID, materialID), nil); err != nil {
		return fmt.Errorf("quitar material: %w", err)
	}
	return nil
}

func toBoxWrite(in repository.BoxWrite) boxWriteDTO {
	return boxWriteDTO{
		QRCode:      in.QRCode,
		Name:        in.Name,
		Description: in.Description,
		WarehouseID: in.WarehouseID,
		WeightKg:    in.WeightKg,
	}
}
