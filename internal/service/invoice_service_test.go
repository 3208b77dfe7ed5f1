package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/state"
	"go-gestion-ws/internal/store"
	"go-gestion-ws/internal/ws"
)

type fixture struct {
	state     *state.Store
	snapshots *store.MemStore
	rec       *ws.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	snapshots := store.NewMemStore()
	s, err := state.New(context.Background(), snapshots)
	require.NoError(t, err)
	s.WithClock(func() time.Time {
		return time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)
	})
	return &fixture{state: s, snapshots: snapshots, rec: &ws.Recorder{}}
}

func (f *fixture) invoiceService() InvoiceService {
	settings := NewSettingsService(f.state, f.snapshots, f.rec)
	return NewInvoiceService(f.state, settings, f.rec)
}

func TestCreateInvoiceComputesTotalsFromItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	keyboard := f.state.AddProduct(ctx, model.ProductInput{Name: "Teclado", Category: "Periféricos", Stock: 20, Price: 50})
	svc := f.invoiceService()

	inv, err := svc.CreateInvoice(ctx, InvoiceInput{
		Client: "Acme",
		Status: model.InvoicePendiente,
		Items: []InvoiceItemInput{
			{ProductID: keyboard.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	// subtotal 100, ITBIS 16, total 116
	assert.InDelta(t, 116.0, inv.Total, 0.001)
	require.Len(t, inv.Items, 1)
	item := inv.Items[0]
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, "Teclado", item.ProductName)
	assert.InDelta(t, 50.0, item.Price, 0.001)
	assert.InDelta(t, 100.0, item.Total, 0.001)
	assert.Equal(t, "INV-2026-001", inv.ID)
}

func TestCreateInvoiceUnknownProductFails(t *testing.T) {
	f := newFixture(t)
	svc := f.invoiceService()

	_, err := svc.CreateInvoice(context.Background(), InvoiceInput{
		Client: "Acme",
		Status: model.InvoicePendiente,
		Items:  []InvoiceItemInput{{ProductID: "PRD999", Quantity: 1}},
	})
	assert.ErrorContains(t, err, "unknown product")
}

func TestCreateInvoiceCascadeNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.state.AddClient(ctx, model.ClientInput{Name: "Acme"})
	svc := f.invoiceService()

	_, err := svc.CreateInvoice(ctx, InvoiceInput{Client: "Acme", Status: model.InvoicePagada, Total: 100})
	require.NoError(t, err)

	events := f.rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "Factura creada", events[0].Title)
	assert.Equal(t, "Cliente actualizado", events[1].Title)
	assert.InDelta(t, 100.0, f.state.Clients()[0].TotalPurchases, 0.001)
}

func TestCreateInvoiceWithoutItemsHonorsTotal(t *testing.T) {
	f := newFixture(t)
	svc := f.invoiceService()

	inv, err := svc.CreateInvoice(context.Background(), InvoiceInput{
		Client: "Acme",
		Status: model.InvoiceCancelada,
		Total:  42.5,
	})
	require.NoError(t, err)
	assert.InDelta(t, 42.5, inv.Total, 0.001)
	assert.Empty(t, inv.Items)
}

func TestCreateInvoiceRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	svc := f.invoiceService()

	_, err := svc.CreateInvoice(context.Background(), InvoiceInput{Client: "Acme", Status: "Borrador"})
	assert.Error(t, err)
}

func TestUpdateInvoiceAllowsAnyStatusTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.invoiceService()

	inv, err := svc.CreateInvoice(ctx, InvoiceInput{Client: "Acme", Status: model.InvoiceCancelada, Total: 10})
	require.NoError(t, err)

	// No transition table: Cancelada back to Pendiente is allowed.
	inv.Status = model.InvoicePendiente
	updated, found, err := svc.UpdateInvoice(ctx, inv)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.InvoicePendiente, updated.Status)
}

func TestUpdateInvoiceRefreshesItemSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.state.AddProduct(ctx, model.ProductInput{Name: "Teclado", Category: "Periféricos", Stock: 20, Price: 50})
	svc := f.invoiceService()

	inv, err := svc.CreateInvoice(ctx, InvoiceInput{
		Client: "Acme",
		Status: model.InvoicePendiente,
		Items:  []InvoiceItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// A later price change on the product reaches the invoice on its next
	// edit; the stale denormalized copy is not kept.
	p.Price = 80
	_, ok := f.state.UpdateProduct(ctx, p)
	require.True(t, ok)

	inv.Items[0].Quantity = 3
	updated, found, err := svc.UpdateInvoice(ctx, inv)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, updated.Items, 1)
	assert.InDelta(t, 80.0, updated.Items[0].Price, 0.001)
	assert.InDelta(t, 240.0, updated.Items[0].Total, 0.001)
	assert.InDelta(t, 278.4, updated.Total, 0.001) // 240 + 16% ITBIS
}

func TestDeleteInvoiceMissingIsSilent(t *testing.T) {
	f := newFixture(t)
	svc := f.invoiceService()

	assert.False(t, svc.DeleteInvoice(context.Background(), "INV-2026-999"))
	assert.Zero(t, f.rec.Count())
}

func TestExportPDFProducesDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.state.AddProduct(ctx, model.ProductInput{Name: "Monitor", Category: "Electrónicos", Stock: 4, Price: 120})
	svc := f.invoiceService()

	inv, err := svc.CreateInvoice(ctx, InvoiceInput{
		Client: "Acme",
		Status: model.InvoicePagada,
		Items:  []InvoiceItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	doc, err := svc.ExportPDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestExportPDFMissingInvoice(t *testing.T) {
	f := newFixture(t)
	svc := f.invoiceService()

	_, err := svc.ExportPDF(context.Background(), "INV-2026-404")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
