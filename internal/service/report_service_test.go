package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gestion-ws/internal/model"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.state.AddProduct(ctx, model.ProductInput{Name: "A", Category: "Electrónicos", Stock: 0, Price: 10})
	f.state.AddProduct(ctx, model.ProductInput{Name: "B", Category: "Electrónicos", Stock: 3, Price: 20})
	f.state.AddProduct(ctx, model.ProductInput{Name: "C", Category: "Oficina", Stock: 12, Price: 5})
	f.state.AddClient(ctx, model.ClientInput{Name: "Acme"})
	f.state.AddInvoice(ctx, model.Invoice{ClientName: "Acme", Total: 116, Status: model.InvoicePagada})
	f.state.AddInvoice(ctx, model.Invoice{ClientName: "Acme", Total: 58, Status: model.InvoicePendiente})
	f.state.AddInvoice(ctx, model.Invoice{ClientName: "Acme", Total: 999, Status: model.InvoiceCancelada})

	stats := NewReportService(f.state).GetDashboardStats()
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalClients)
	assert.Equal(t, 3, stats.TotalInvoices)
	assert.InDelta(t, 116.0, stats.Revenue, 0.001)
	assert.InDelta(t, 58.0, stats.PendingAmount, 0.001)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 1, stats.NoStockCount)
	assert.InDelta(t, 120.0, stats.InventoryValue, 0.001) // 3*20 + 12*5
}

func TestMonthlySalesBucketsByInvoiceDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.state.AddInvoice(ctx, model.Invoice{ClientName: "A", Date: "10/01/2026", Total: 100, Status: model.InvoicePagada})
	f.state.AddInvoice(ctx, model.Invoice{ClientName: "A", Date: "20/01/2026", Total: 50, Status: model.InvoicePendiente})
	f.state.AddInvoice(ctx, model.Invoice{ClientName: "A", Date: "05/03/2026", Total: 30, Status: model.InvoicePagada})
	// Cancelled and unparseable dates are skipped.
	f.state.AddInvoice(ctx, model.Invoice{ClientName: "A", Date: "15/01/2026", Total: 999, Status: model.InvoiceCancelada})
	f.state.AddInvoice(ctx, model.Invoice{ClientName: "A", Date: "sin fecha", Total: 999, Status: model.InvoicePagada})

	series := NewReportService(f.state).GetMonthlySales(2026)
	require.Len(t, series, 12)
	assert.Equal(t, "Ene", series[0].Month)
	assert.InDelta(t, 150.0, series[0].Sales, 0.001)
	assert.InDelta(t, 30.0, series[2].Sales, 0.001)
	assert.Zero(t, series[1].Sales)
}

func TestCategoryDistributionSorted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, category := range []string{"Oficina", "Electrónicos", "Electrónicos"} {
		f.state.AddProduct(ctx, model.ProductInput{Name: "P", Category: category, Stock: 1, Price: 1})
	}

	shares := NewReportService(f.state).GetCategoryDistribution()
	require.Len(t, shares, 2)
	assert.Equal(t, CategoryShare{Name: "Electrónicos", Value: 2}, shares[0])
	assert.Equal(t, CategoryShare{Name: "Oficina", Value: 1}, shares[1])
}

func TestTopClientsOrderedByPurchases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.state.AddClient(ctx, model.ClientInput{Name: "Chico"})
	f.state.AddClient(ctx, model.ClientInput{Name: "Grande"})
	f.state.AddInvoice(ctx, model.Invoice{ClientName: "Grande", Total: 500, Status: model.InvoicePagada})
	f.state.AddInvoice(ctx, model.Invoice{ClientName: "Chico", Total: 50, Status: model.InvoicePagada})

	top := NewReportService(f.state).GetTopClients(1)
	require.Len(t, top, 1)
	assert.Equal(t, "Grande", top[0].Name)
	assert.InDelta(t, 500.0, top[0].TotalPurchases, 0.001)
}
