package service

import (
	"sort"
	"time"

	"go-gestion-ws/internal/alert"
	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/state"
)

// DashboardStats is the overview card data.
type DashboardStats struct {
	TotalProducts  int     `json:"total_products"`
	TotalClients   int     `json:"total_clients"`
	TotalInvoices  int     `json:"total_invoices"`
	Revenue        float64 `json:"revenue"`         // sum of Pagada invoices
	PendingAmount  float64 `json:"pending_amount"`  // sum of Pendiente invoices
	LowStockCount  int     `json:"low_stock_count"` // 0 < stock <= alert threshold
	NoStockCount   int     `json:"no_stock_count"`
	InventoryValue float64 `json:"inventory_value"` // sum of price*stock
}

// MonthlySales is one point of the sales chart.
type MonthlySales struct {
	Month string  `json:"name"`
	Sales float64 `json:"ventas"`
}

// CategoryShare is one slice of the category distribution.
type CategoryShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TopClient is one row of the best-clients report.
type TopClient struct {
	Name           string  `json:"name"`
	TotalPurchases float64 `json:"totalPurchases"`
}

type ReportService interface {
	GetDashboardStats() DashboardStats
	GetMonthlySales(year int) []MonthlySales
	GetCategoryDistribution() []CategoryShare
	GetTopClients(limit int) []TopClient
}

type reportService struct {
	store *state.Store
}

func NewReportService(store *state.Store) ReportService {
	return &reportService{store: store}
}

func (s *reportService) GetDashboardStats() DashboardStats {
	products := s.store.Products()
	clients := s.store.Clients()
	invoices := s.store.Invoices()

	stats := DashboardStats{
		TotalProducts: len(products),
		TotalClients:  len(clients),
		TotalInvoices: len(invoices),
	}
	for _, p := range products {
		stats.InventoryValue += p.Price * float64(p.Stock)
		switch {
		case p.Stock == 0:
			stats.NoStockCount++
		case p.Stock <= alert.LowStockThreshold:
			stats.LowStockCount++
		}
	}
	for _, inv := range invoices {
		switch inv.Status {
		case model.InvoicePagada:
			stats.Revenue += inv.Total
		case model.InvoicePendiente:
			stats.PendingAmount += inv.Total
		}
	}
	return stats
}

var spanishMonths = []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// GetMonthlySales aggregates Pagada and Pendiente invoice totals per month
// of the given year. Invoices with unparseable dates are skipped.
func (s *reportService) GetMonthlySales(year int) []MonthlySales {
	totals := make([]float64, 12)
	for _, inv := range s.store.Invoices() {
		if inv.Status == model.InvoiceCancelada {
			continue
		}
		t, err := time.Parse(model.InvoiceDateLayout, inv.Date)
		if err != nil || t.Year() != year {
			continue
		}
		totals[int(t.Month())-1] += inv.Total
	}

	series := make([]MonthlySales, 12)
	for i, total := range totals {
		series[i] = MonthlySales{Month: spanishMonths[i], Sales: total}
	}
	return series
}

func (s *reportService) GetCategoryDistribution() []CategoryShare {
	counts := map[string]int{}
	for _, p := range s.store.Products() {
		counts[p.Category]++
	}

	shares := make([]CategoryShare, 0, len(counts))
	for name, value := range counts {
		shares = append(shares, CategoryShare{Name: name, Value: value})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Value != shares[j].Value {
			return shares[i].Value > shares[j].Value
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

func (s *reportService) GetTopClients(limit int) []TopClient {
	clients := s.store.Clients()
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].TotalPurchases > clients[j].TotalPurchases
	})

	if limit <= 0 || limit > len(clients) {
		limit = len(clients)
	}
	top := make([]TopClient, 0, limit)
	for _, c := range clients[:limit] {
		top = append(top, TopClient{Name: c.Name, TotalPurchases: c.TotalPurchases})
	}
	return top
}
