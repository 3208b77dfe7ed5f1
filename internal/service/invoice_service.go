package service

import (
	"context"
	"errors"
	"fmt"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/state"
	"go-gestion-ws/internal/ws"
	"go-gestion-ws/pkg/pdf"
	"go-gestion-ws/pkg/validator"
)

var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceItemInput is a form line: product reference plus quantity. Name,
// price and line total are snapshotted from the current product.
type InvoiceItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// InvoiceInput is the invoice creation form.
type InvoiceInput struct {
	ClientID *string             `json:"clientId,omitempty"`
	Client   string              `json:"client" validate:"required"`
	Date     string              `json:"date"`
	Status   model.InvoiceStatus `json:"status" validate:"required,oneof=Pagada Pendiente Cancelada"`
	Items    []InvoiceItemInput  `json:"items"`
	// Total is only honored for invoices without line items; with items the
	// total is always computed (subtotal + ITBIS).
	Total float64 `json:"total" validate:"gte=0"`
}

type InvoiceService interface {
	ListInvoices() []model.Invoice
	GetInvoice(id string) (model.Invoice, bool)
	CreateInvoice(ctx context.Context, in InvoiceInput) (model.Invoice, error)
	UpdateInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, bool, error)
	DeleteInvoice(ctx context.Context, id string) bool
	ExportPDF(ctx context.Context, id string) ([]byte, error)
}

type invoiceService struct {
	store    *state.Store
	settings SettingsService
	notifier ws.Notifier
}

func NewInvoiceService(store *state.Store, settings SettingsService, notifier ws.Notifier) InvoiceService {
	return &invoiceService{store: store, settings: settings, notifier: notifier}
}

func (s *invoiceService) ListInvoices() []model.Invoice {
	return s.store.Invoices()
}

func (s *invoiceService) GetInvoice(id string) (model.Invoice, bool) {
	return s.store.FindInvoice(id)
}

func (s *invoiceService) productIndex() map[string]model.Product {
	products := s.store.Products()
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}

// buildItems snapshots product name and price per line and computes totals.
func (s *invoiceService) buildItems(inputs []InvoiceItemInput) ([]model.InvoiceItem, error) {
	byID := s.productIndex()

	items := make([]model.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		p, ok := byID[in.ProductID]
		if !ok {
			return nil, fmt.Errorf("unknown product %q", in.ProductID)
		}
		items = append(items, model.InvoiceItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    in.Quantity,
			Price:       p.Price,
		})
	}
	return items, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, in InvoiceInput) (model.Invoice, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return model.Invoice{}, firstValidationError(errs)
	}

	inv := model.Invoice{
		ClientID:   in.ClientID,
		ClientName: in.Client,
		Date:       in.Date,
		Status:     in.Status,
		Total:      in.Total,
	}

	if len(in.Items) > 0 {
		items, err := s.buildItems(in.Items)
		if err != nil {
			return model.Invoice{}, err
		}
		_, _, total := model.RecomputeItems(items)
		inv.Items = items
		inv.Total = total
	}

	created, bumped := s.store.AddInvoice(ctx, inv)
	s.notifier.Notify(ws.Notification{
		Title:       "Factura creada",
		Description: fmt.Sprintf("Se ha creado la factura %s.", created.ID),
	})
	if bumped != nil {
		// Cascaded purchase-total bump on the matched client.
		s.notifier.Notify(ws.Notification{
			Title:       "Cliente actualizado",
			Description: fmt.Sprintf("Se ha actualizado la información de %s.", bumped.Name),
		})
	}
	return created, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, bool, error) {
	if inv.ID == "" {
		return model.Invoice{}, false, errors.New("invoice id is required")
	}
	if errs := validator.ValidateStruct(inv); len(errs) > 0 {
		return model.Invoice{}, false, firstValidationError(errs)
	}

	// Status transitions are unconstrained; a full replace refreshes each
	// line's name and price from the current product before recomputing the
	// totals. Lines whose product no longer exists keep their old snapshot.
	if len(inv.Items) > 0 {
		byID := s.productIndex()
		for i := range inv.Items {
			if p, ok := byID[inv.Items[i].ProductID]; ok {
				inv.Items[i].ProductName = p.Name
				inv.Items[i].Price = p.Price
			}
		}
		_, _, total := model.RecomputeItems(inv.Items)
		inv.Total = total
	}

	updated, ok := s.store.UpdateInvoice(ctx, inv)
	if !ok {
		return model.Invoice{}, false, nil
	}
	s.notifier.Notify(ws.Notification{
		Title:       "Factura actualizada",
		Description: fmt.Sprintf("Se ha actualizado la factura %s.", updated.ID),
	})
	return updated, true, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) bool {
	removed, ok := s.store.DeleteInvoice(ctx, id)
	if !ok {
		return false
	}
	s.notifier.Notify(ws.Notification{
		Title:       "Factura eliminada",
		Description: fmt.Sprintf("Se ha eliminado la factura %s.", removed.ID),
	})
	return true
}

func (s *invoiceService) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	inv, ok := s.store.FindInvoice(id)
	if !ok {
		return nil, ErrInvoiceNotFound
	}
	settings := s.settings.Get(ctx)
	return pdf.RenderInvoice(&inv, settings.Company)
}
