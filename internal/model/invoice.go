package model

import (
	"fmt"
	"time"
)

type InvoiceStatus string

const (
	InvoicePagada    InvoiceStatus = "Pagada"
	InvoicePendiente InvoiceStatus = "Pendiente"
	InvoiceCancelada InvoiceStatus = "Cancelada"
)

// TaxRate is the ITBIS fraction applied on top of the item subtotal.
const TaxRate = 0.16

// InvoiceDateLayout is the display format used everywhere an invoice date is
// rendered or stored.
const InvoiceDateLayout = "02/01/2006"

type Invoice struct {
	ID string `json:"id"`
	// ClientID links the invoice to a client record. A nil ClientID means the
	// invoice was issued against a free-text name only.
	ClientID   *string       `json:"clientId,omitempty"`
	ClientName string        `json:"client" validate:"required"`
	Date       string        `json:"date"`
	Total      float64       `json:"total"`
	Status     InvoiceStatus `json:"status" validate:"required,oneof=Pagada Pendiente Cancelada"`
	Items      []InvoiceItem `json:"items,omitempty"`
}

type InvoiceItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// RecomputeItems reassigns local item ids, refreshes line totals and returns
// subtotal, tax and grand total. Item ids are local to the invoice
// ("item-1", "item-2", ...).
func RecomputeItems(items []InvoiceItem) (subtotal, tax, total float64) {
	for i := range items {
		items[i].ID = fmt.Sprintf("item-%d", i+1)
		items[i].Total = items[i].Price * float64(items[i].Quantity)
		subtotal += items[i].Total
	}
	tax = subtotal * TaxRate
	total = subtotal + tax
	return subtotal, tax, total
}

// SubtotalAndTax splits an invoice grand total back into its subtotal and tax
// parts, for invoices stored without line items.
func (inv *Invoice) SubtotalAndTax() (subtotal, tax float64) {
	if len(inv.Items) > 0 {
		for _, it := range inv.Items {
			subtotal += it.Total
		}
		return subtotal, inv.Total - subtotal
	}
	subtotal = inv.Total / (1 + TaxRate)
	return subtotal, inv.Total - subtotal
}

// FormatInvoiceDate renders a time in the invoice display format.
func FormatInvoiceDate(t time.Time) string {
	return t.Format(InvoiceDateLayout)
}
