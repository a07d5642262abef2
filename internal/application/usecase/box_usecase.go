package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/application/dto"
	"github.com/jhoicas/Logistica-bff/internal/application/querykey"
	"github.com/jhoicas/Logistica-bff/internal/domain"
	"github.com/jhoicas/Logistica-bff/internal/domain/entity"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/domain/role"
	"github.com/jhoicas/Logistica-bff/internal/domain/visibility"
)

// BoxUseCase cajas trazables: lectura por bodega visible, escritura para ADMIN y JEFE.
type BoxUseCase struct {
	catalog *Catalog
	repo    repository.BoxRepository
	sync    *cachesync.Synchronizer
	log     zerolog.Logger
}

// NewBoxUseCase construye el caso de uso.
func NewBoxUseCase(catalog *Catalog, repo repository.BoxRepository, sync *cachesync.Synchronizer, log zerolog.Logger) *BoxUseCase {
	return &BoxUseCase{catalog: catalog, repo: repo, sync: sync, log: log}
}

// List cajas de las bodegas visibles.
func (uc *BoxUseCase) List(ctx context.Context, actor visibility.Actor, f repository.BoxFilter) ([]dto.BoxResponse, error) {
	s, err := uc.catalog.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if f.WarehouseID != "" && !s.WarehouseVisible(f.WarehouseID) {
		return nil, domain.ErrNotFound
	}
	if f.Status != "" && !entity.ValidBoxStatus(f.Status) {
		return nil, domain.ErrInvalidInput
	}
	key := uc.sync.Keys().Boxes(map[string]string{
		"warehouseId": f.WarehouseID,
		"status":      f.Status,
		"search":      strings.TrimSpace(f.Search),
	})
	boxes, err := cachesync.Fetch(ctx, uc.sync, key, func(ctx context.Context) ([]entity.Box, error) {
		return uc.repo.List(ctx, f)
	})
	if err != nil {
		if boxes, err = degradeList[entity.Box](uc.log, "boxes", err); err != nil {
			return nil, err
		}
	}
	if actor.Role != role.Admin {
		visible := make([]entity.Box, 0, len(boxes))
		for _, b := range boxes {
			if s.WarehouseVisible(b.WarehouseID) {
				visible = append(visible, b)
			}
		}
		boxes = visible
	}
	return toBoxResponses(boxes), nil
}

// Get detalle de una caja.
func (uc *BoxUseCase) Get(ctx context.Context, actor visibility.Actor, id string) (*dto.BoxResponse, error) {
	b, err := uc.visibleBox(ctx, actor, uc.sync.Keys().Box(id), func(ctx context.Context) (*entity.Box, error) {
		return uc.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	out := toBoxResponse(b)
	return &out, nil
}

// GetByQR busca una caja por su código QR.
func (uc *BoxUseCase) GetByQR(ctx context.Context, actor visibility.Actor, qr string) (*dto.BoxResponse, error) {
	qr = strings.TrimSpace(qr)
	if qr == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.visibleBox(ctx, actor, uc.sync.Keys().BoxQR(qr), func(ctx context.Context) (*entity.Box, error) {
		return uc.repo.GetByQR(ctx, qr)
	})
	if err != nil {
		return nil, err
	}
	out := toBoxResponse(b)
	return &out, nil
}

// Box entidad de una caja visible (para la etiqueta PDF).
func (uc *BoxUseCase) Box(ctx context.Context, actor visibility.Actor, id string) (*entity.Box, error) {
	return uc.visibleBox(ctx, actor, uc.sync.Keys().Box(id), func(ctx context.Context) (*entity.Box, error) {
		return uc.repo.GetByID(ctx, id)
	})
}

func (uc *BoxUseCase) visibleBox(ctx context.Context, actor visibility.Actor, key querykey.Key, load func(context.Context) (*entity.Box, error)) (*entity.Box, error) {
	b, err := cachesync.Fetch(ctx, uc.sync, key, load)
	if err != nil {
		return nil, degradeOne(uc.log, "box", err)
	}
	if err := uc.checkWarehouse(ctx, actor, b.WarehouseID, false); err != nil {
		return nil, err
	}
	return b, nil
}

// checkWarehouse exige que la bodega sea visible y, para escribir, que el actor pueda gestionarla.
func (uc *BoxUseCase) checkWarehouse(ctx context.Context, actor visibility.Actor, warehouseID string, write bool) error {
	f := visibility.New(actor)
	if write && !f.CanWrite() {
		return domain.ErrForbidden
	}
	if actor.Role == role.Admin {
		return nil
	}
	w, err := uc.catalog.Warehouse(ctx, warehouseID)
	if err != nil {
		return degradeOne(uc.log, "box-warehouse", err)
	}
	if len(f.VisibleWarehouses([]entity.Warehouse{*w})) == 0 {
		return domain.ErrNotFound
	}
	if write && !f.CanManageWarehouse(w) {
		return domain.ErrForbidden
	}
	return nil
}

// History movimientos y cambios de estado de una caja.
func (uc *BoxUseCase) History(ctx context.Context, actor visibility.Actor, id string) ([]dto.BoxHistoryResponse, error) {
	if _, err := uc.Box(ctx, actor, id); err != nil {
		return nil, err
	}
	entries, err := cachesync.Fetch(ctx, uc.sync, uc.sync.Keys().BoxHistory(id), func(ctx context.Context) ([]entity.BoxHistoryEntry, error) {
		return uc.repo.History(ctx, id)
	})
	if err != nil {
		if entries, err = degradeList[entity.BoxHistoryEntry](uc.log, "box-history", err); err != nil {
			return nil, err
		}
	}
	return toBoxHistory(entries), nil
}

// Create registra una caja en una bodega gestionable.
func (uc *BoxUseCase) Create(ctx context.Context, actor visibility.Actor, in dto.CreateBoxRequest) (*dto.BoxResponse, error) {
	if strings.TrimSpace(in.QRCode) == "" || strings.TrimSpace(in.Name) == "" || in.WarehouseID == "" || in.WeightKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkWarehouse(ctx, actor, in.WarehouseID, true); err != nil {
		return nil, err
	}
	b, err := uc.repo.Create(ctx, repository.BoxWrite{
		QRCode:      strings.TrimSpace(in.QRCode),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		WarehouseID: in.WarehouseID,
		WeightKg:    in.WeightKg,
	})
	return uc.commit(ctx, actor, cachesync.CreateBox, cachesync.Target{WarehouseID: in.WarehouseID}, b, &in.WeightKg, err)
}

// Update edita nombre, descripción o peso de una caja.
func (uc *BoxUseCase) Update(ctx context.Context, actor visibility.Actor, id string, in dto.UpdateBoxRequest) (*dto.BoxResponse, error) {
	current, err := uc.writableBox(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	w := repository.BoxWrite{
		QRCode:      current.QRCode,
		Name:        current.Name,
		Description: current.Description,
		WarehouseID: current.WarehouseID,
		WeightKg:    current.WeightKg,
	}
	if in.Name != nil {
		w.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		w.Description = *in.Description
	}
	if in.WeightKg != nil {
		if in.WeightKg.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		w.WeightKg = *in.WeightKg
	}
	if w.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.repo.Update(ctx, id, w)
	return uc.commit(ctx, actor, cachesync.UpdateBox, boxTarget(current), b, &w.WeightKg, err)
}

// Delete elimina una caja.
func (uc *BoxUseCase) Delete(ctx context.Context, actor visibility.Actor, id string) error {
	current, err := uc.writableBox(ctx, actor, id)
	if err != nil {
		return err
	}
	err = uc.repo.Delete(ctx, id)
	uc.sync.CommitWeighted(ctx, actor.ID, cachesync.DeleteBox, boxTarget(current), &current.WeightKg, err)
	return err
}

// Move traslada una caja a otra bodega; el actor debe gestionar origen y destino.
func (uc *BoxUseCase) Move(ctx context.Context, actor visibility.Actor, id string, in dto.MoveBoxRequest) (*dto.BoxResponse, error) {
	if in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.writableBox(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if current.WarehouseID == in.WarehouseID {
		return nil, domain.ErrConflict
	}
	if err := uc.checkWarehouse(ctx, actor, in.WarehouseID, true); err != nil {
		return nil, err
	}
	b, err := uc.repo.Move(ctx, id, in.WarehouseID, strings.TrimSpace(in.Reason))
	t := cachesync.Target{BoxID: id, WarehouseID: in.WarehouseID, PreviousWarehouseID: current.WarehouseID}
	return uc.commit(ctx, actor, cachesync.MoveBox, t, b, &current.WeightKg, err)
}

// ChangeStatus cambia el estado operativo de una caja.
func (uc *BoxUseCase) ChangeStatus(ctx context.Context, actor visibility.Actor, id string, in dto.ChangeBoxStatusRequest) (*dto.BoxResponse, error) {
	if !entity.ValidBoxStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.writableBox(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	b, err := uc.repo.ChangeStatus(ctx, id, in.Status, strings.TrimSpace(in.Reason))
	return uc.commit(ctx, actor, cachesync.ChangeBoxStatus, boxTarget(current), b, &current.WeightKg, err)
}

// Deactivate da de baja una caja sin borrarla.
func (uc *BoxUseCase) Deactivate(ctx context.Context, actor visibility.Actor, id, reason string) (*dto.BoxResponse, error) {
	current, err := uc.writableBox(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	b, err := uc.repo.Deactivate(ctx, id, strings.TrimSpace(reason))
	return uc.commit(ctx, actor, cachesync.DeactivateBox, boxTarget(current), b, &current.WeightKg, err)
}

// AddEquipment guarda un equipo en la caja.
func (uc *BoxUseCase) AddEquipment(ctx context.Context, actor visibility.Actor, id string, in dto.BoxItemRequest) (*dto.BoxResponse, error) {
	return uc.addItem(ctx, actor, id, in, cachesync.AddBoxEquipment, uc.repo.AddEquipment)
}

// AddMaterial guarda un material en la caja.
func (uc *BoxUseCase) AddMaterial(ctx context.Context, actor visibility.Actor, id string, in dto.BoxItemRequest) (*dto.BoxResponse, error) {
	return uc.addItem(ctx, actor, id, in, cachesync.AddBoxMaterial, uc.repo.AddMaterial)
}

func (uc *BoxUseCase) addItem(
	ctx context.Context,
	actor visibility.Actor,
	id string,
	in dto.BoxItemRequest,
	m cachesync.Mutation,
	add func(context.Context, string, repository.BoxItemWrite) (*entity.Box, error),
) (*dto.BoxResponse, error) {
	if in.ProductID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.writableBox(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	b, err := add(ctx, id, repository.BoxItemWrite{ProductID: in.ProductID, Quantity: in.Quantity})
	var weight *decimal.Decimal
	if b != nil {
		weight = &b.WeightKg
	}
	return uc.commit(ctx, actor, m, boxTarget(current), b, weight, err)
}

// RemoveEquipment saca un equipo de la caja.
func (uc *BoxUseCase) RemoveEquipment(ctx context.Context, actor visibility.Actor, id, equipmentID string) error {
	return uc.removeItem(ctx, actor, id, equipmentID, cachesync.RemoveBoxEquipment, uc.repo.RemoveEquipment)
}

// RemoveMaterial saca un material de la caja.
func (uc *BoxUseCase) RemoveMaterial(ctx context.Context, actor visibility.Actor, id, materialID string) error {
	return uc.removeItem(ctx, actor, id, materialID, cachesync.RemoveBoxMaterial, uc.repo.RemoveMaterial)
}

func (uc *BoxUseCase) removeItem(
	ctx context.Context,
	actor visibility.Actor,
	id, itemID string,
	m cachesync.Mutation,
	remove func(context.Context, string, string) error,
) error {
	current, err := uc.writableBox(ctx, actor, id)
	if err != nil {
		return err
	}
	err = remove(ctx, id, itemID)
	uc.sync.Commit(ctx, actor.ID, m, boxTarget(current), err)
	return err
}

func (uc *BoxUseCase) writableBox(ctx context.Context, actor visibility.Actor, id string) (*entity.Box, error) {
	if !visibility.New(actor).CanWrite() {
		return nil, domain.ErrForbidden
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, actor, b.WarehouseID, true); err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *BoxUseCase) commit(ctx context.Context, actor visibility.Actor, m cachesync.Mutation, t cachesync.Target, b *entity.Box, weight *decimal.Decimal, err error) (*dto.BoxResponse, error) {
	if b != nil && t.BoxID == "" {
		t.BoxID = b.ID
	}
	uc.sync.CommitWeighted(ctx, actor.ID, m, t, weight, err)
	if err != nil {
		return nil, err
	}
	out := toBoxResponse(b)
	return &out, nil
}

func boxTarget(b *entity.Box) cachesync.Target {
	return cachesync.Target{BoxID: b.ID, WarehouseID: b.WarehouseID}
}
