// Package state owns the in-memory product, client and invoice collections.
// Every mutation runs the pure transition first, then flushes the affected
// snapshots through the persistence adapter via an explicit change hook.
package state

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/store"
)

// Counters are the monotonic ID counters persisted alongside the collections.
// They only ever grow, so ids stay unique across deletions and restarts.
type Counters struct {
	Product int            `json:"product"`
	Client  int            `json:"client"`
	Invoice map[string]int `json:"invoice"` // keyed by year
}

// Store is the domain state store. Construct one per process and inject it
// into consumers; collections are never reachable for direct mutation.
type Store struct {
	mu        sync.Mutex
	snapshots store.Store
	now       func() time.Time

	products []model.Product
	clients  []model.Client
	invoices []model.Invoice
	counters Counters

	observers []func([]model.Product)
}

// New hydrates a Store from the snapshot adapter. Missing snapshots seed
// empty collections and zeroed counters.
func New(ctx context.Context, snapshots store.Store) (*Store, error) {
	s := &Store{
		snapshots: snapshots,
		now:       time.Now,
		counters:  Counters{Invoice: map[string]int{}},
	}

	if _, err := snapshots.Load(ctx, store.KeyProducts, &s.products); err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if _, err := snapshots.Load(ctx, store.KeyClients, &s.clients); err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	if _, err := snapshots.Load(ctx, store.KeyInvoices, &s.invoices); err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	if _, err := snapshots.Load(ctx, store.KeyCounters, &s.counters); err != nil {
		return nil, fmt.Errorf("load counters: %w", err)
	}
	if s.counters.Invoice == nil {
		s.counters.Invoice = map[string]int{}
	}
	return s, nil
}

// WithClock overrides the clock used for invoice ids and dates. Test hook.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// OnProductsChanged registers an observer invoked with a copy of the product
// collection after every mutation that touches it.
func (s *Store) OnProductsChanged(fn func([]model.Product)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// persist flushes a snapshot. Persistence is fire-and-forget: failures are
// logged, never surfaced to the mutation caller.
func (s *Store) persist(ctx context.Context, key string, value any) {
	if err := s.snapshots.Save(ctx, key, value); err != nil {
		log.Printf("state: persist %s failed: %v", key, err)
	}
}

// ---------------------------------------------------------------- products

func (s *Store) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Product(nil), s.products...)
}

// AddProduct assigns the next PRD id, derives the status and prepends the
// product (most-recent-first ordering).
func (s *Store) AddProduct(ctx context.Context, in model.ProductInput) model.Product {
	s.mu.Lock()
	s.counters.Product++
	p := model.Product{
		ID:       fmt.Sprintf("PRD%03d", s.counters.Product),
		Name:     in.Name,
		Category: in.Category,
		Stock:    in.Stock,
		Price:    in.Price,
		Status:   model.StatusForStock(in.Stock),
	}
	s.products = append([]model.Product{p}, s.products...)
	s.persist(ctx, store.KeyProducts, s.products)
	s.persist(ctx, store.KeyCounters, s.counters)
	snapshot := append([]model.Product(nil), s.products...)
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
	return p
}

// UpdateProduct replaces the matching-id entry in place, recomputing the
// status from the given stock. Returns false on a missing id (silent no-op).
func (s *Store) UpdateProduct(ctx context.Context, p model.Product) (model.Product, bool) {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.Product{}, false
	}
	p.Status = model.StatusForStock(p.Stock)
	s.products[idx] = p
	s.persist(ctx, store.KeyProducts, s.products)
	snapshot := append([]model.Product(nil), s.products...)
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
	return p, true
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (model.Product, bool) {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.Product{}, false
	}
	removed := s.products[idx]
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.persist(ctx, store.KeyProducts, s.products)
	snapshot := append([]model.Product(nil), s.products...)
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
	return removed, true
}

// ----------------------------------------------------------------- clients

func (s *Store) Clients() []model.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Client(nil), s.clients...)
}

func (s *Store) FindClient(id string) (model.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return model.Client{}, false
}

func (s *Store) AddClient(ctx context.Context, in model.ClientInput) model.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters.Client++
	c := model.Client{
		ID:             fmt.Sprintf("CLI%03d", s.counters.Client),
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		TotalPurchases: 0,
	}
	s.clients = append([]model.Client{c}, s.clients...)
	s.persist(ctx, store.KeyClients, s.clients)
	s.persist(ctx, store.KeyCounters, s.counters)
	return c
}

func (s *Store) UpdateClient(ctx context.Context, c model.Client) (model.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateClientLocked(ctx, c)
}

func (s *Store) updateClientLocked(ctx context.Context, c model.Client) (model.Client, bool) {
	for i := range s.clients {
		if s.clients[i].ID == c.ID {
			s.clients[i] = c
			s.persist(ctx, store.KeyClients, s.clients)
			return c, true
		}
	}
	return model.Client{}, false
}

func (s *Store) DeleteClient(ctx context.Context, id string) (model.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == id {
			removed := s.clients[i]
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			s.persist(ctx, store.KeyClients, s.clients)
			return removed, true
		}
	}
	return model.Client{}, false
}

// ---------------------------------------------------------------- invoices

func (s *Store) Invoices() []model.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Invoice(nil), s.invoices...)
}

func (s *Store) FindInvoice(id string) (model.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return model.Invoice{}, false
}

// AddInvoice assigns the next INV-{year}-NNN id, prepends the invoice and
// then bumps the purchase total of the referenced client: by ClientID when
// the invoice is linked, otherwise by exact name match. An unmatched client
// is not an error; the returned client is nil in that case.
func (s *Store) AddInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, *model.Client) {
	s.mu.Lock()
	year := fmt.Sprintf("%d", s.now().Year())
	s.counters.Invoice[year]++
	inv.ID = fmt.Sprintf("INV-%s-%03d", year, s.counters.Invoice[year])
	if inv.Date == "" {
		inv.Date = model.FormatInvoiceDate(s.now())
	}
	s.invoices = append([]model.Invoice{inv}, s.invoices...)
	s.persist(ctx, store.KeyInvoices, s.invoices)
	s.persist(ctx, store.KeyCounters, s.counters)

	var bumped *model.Client
	if c, ok := s.resolveClientLocked(inv); ok {
		c.TotalPurchases += inv.Total
		if updated, ok := s.updateClientLocked(ctx, c); ok {
			bumped = &updated
		}
	}
	s.mu.Unlock()
	return inv, bumped
}

func (s *Store) resolveClientLocked(inv model.Invoice) (model.Client, bool) {
	if inv.ClientID != nil {
		for _, c := range s.clients {
			if c.ID == *inv.ClientID {
				return c, true
			}
		}
		return model.Client{}, false
	}
	for _, c := range s.clients {
		if c.Name == inv.ClientName {
			return c, true
		}
	}
	return model.Client{}, false
}

func (s *Store) UpdateInvoice(ctx context.Context, inv model.Invoice) (model.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].ID == inv.ID {
			s.invoices[i] = inv
			s.persist(ctx, store.KeyInvoices, s.invoices)
			return inv, true
		}
	}
	return model.Invoice{}, false
}

func (s *Store) DeleteInvoice(ctx context.Context, id string) (model.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			removed := s.invoices[i]
			s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
			s.persist(ctx, store.KeyInvoices, s.invoices)
			return removed, true
		}
	}
	return model.Invoice{}, false
}

// ------------------------------------------------------------------- reset

// Reset clears all three collections, the counters and their persisted
// snapshots.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.products = nil
	s.clients = nil
	s.invoices = nil
	s.counters = Counters{Invoice: map[string]int{}}
	for _, key := range []string{store.KeyProducts, store.KeyClients, store.KeyInvoices, store.KeyCounters} {
		if err := s.snapshots.Delete(ctx, key); err != nil {
			log.Printf("state: clear %s failed: %v", key, err)
		}
	}
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(nil)
	}
}

// NextProductID previews the id the next AddProduct call will assign.
func (s *Store) NextProductID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("PRD%03d", s.counters.Product+1)
}

// NextClientID previews the id the next AddClient call will assign.
func (s *Store) NextClientID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("CLI%03d", s.counters.Client+1)
}

// NextInvoiceID previews the id the next AddInvoice call will assign.
func (s *Store) NextInvoiceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	year := fmt.Sprintf("%d", s.now().Year())
	return fmt.Sprintf("INV-%s-%03d", year, s.counters.Invoice[year]+1)
}
