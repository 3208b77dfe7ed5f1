package service

import (
	"context"
	"errors"
	"fmt"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/state"
	"go-gestion-ws/internal/ws"
	"go-gestion-ws/pkg/validator"
)

type InventoryService interface {
	ListProducts() []model.Product
	CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error)
	// UpdateProduct replaces the matching product. A missing id is a silent
	// no-op reported through the boolean.
	UpdateProduct(ctx context.Context, p model.Product) (model.Product, bool, error)
	// DeleteProduct removes the product. A missing id is a silent no-op; the
	// confirmation fires only on a real removal.
	DeleteProduct(ctx context.Context, id string) bool
}

type inventoryService struct {
	store    *state.Store
	notifier ws.Notifier
}

func NewInventoryService(store *state.Store, notifier ws.Notifier) InventoryService {
	return &inventoryService{store: store, notifier: notifier}
}

func firstValidationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

func (s *inventoryService) ListProducts() []model.Product {
	return s.store.Products()
}

func (s *inventoryService) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return model.Product{}, firstValidationError(errs)
	}

	p := s.store.AddProduct(ctx, in)
	s.notifier.Notify(ws.Notification{
		Title:       "Producto agregado",
		Description: fmt.Sprintf("Se ha agregado %s al inventario.", p.Name),
	})
	return p, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, p model.Product) (model.Product, bool, error) {
	if p.ID == "" {
		return model.Product{}, false, errors.New("product id is required")
	}
	if errs := validator.ValidateStruct(p); len(errs) > 0 {
		return model.Product{}, false, firstValidationError(errs)
	}

	updated, ok := s.store.UpdateProduct(ctx, p)
	if !ok {
		return model.Product{}, false, nil
	}
	s.notifier.Notify(ws.Notification{
		Title:       "Producto actualizado",
		Description: fmt.Sprintf("Se ha actualizado %s en el inventario.", updated.Name),
	})
	return updated, true, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, id string) bool {
	removed, ok := s.store.DeleteProduct(ctx, id)
	if !ok {
		return false
	}
	s.notifier.Notify(ws.Notification{
		Title:       "Producto eliminado",
		Description: fmt.Sprintf("Se ha eliminado %s del inventario.", removed.Name),
	})
	return true
}
