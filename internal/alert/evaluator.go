// Package alert derives low-stock and no-stock subsets from the product
// collection and pushes one-shot toast alerts.
package alert

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/ws"
)

// LowStockThreshold is the alerting band: 0 < stock <= LowStockThreshold.
// Narrower than the "Bajo Stock" display status on purpose.
const LowStockThreshold = 5

// Evaluator watches product changes and fires at most one alert round per
// session. The latch is deliberate: once the user has been warned, further
// stock movement stays quiet until the next session.
type Evaluator struct {
	notifier ws.Notifier
	delay    time.Duration

	mu       sync.Mutex
	fired    bool
	lowStock []string
	noStock  []string
}

func NewEvaluator(notifier ws.Notifier) *Evaluator {
	return &Evaluator{notifier: notifier, delay: time.Second}
}

// WithDelay overrides the pause between the no-stock and low-stock toasts.
func (e *Evaluator) WithDelay(d time.Duration) *Evaluator {
	e.delay = d
	return e
}

// Evaluate recomputes both subsets and, on the first round with anything to
// report, fires the alerts: no-stock first, then low-stock after the delay
// (immediately when there was no no-stock toast).
func (e *Evaluator) Evaluate(products []model.Product) {
	var low, none []string
	for _, p := range products {
		switch {
		case p.Stock == 0:
			none = append(none, p.Name)
		case p.Stock <= LowStockThreshold:
			low = append(low, p.Name)
		}
	}

	e.mu.Lock()
	e.lowStock = low
	e.noStock = none
	if e.fired || (len(low) == 0 && len(none) == 0) {
		e.mu.Unlock()
		return
	}
	e.fired = true
	e.mu.Unlock()

	if len(none) > 0 {
		e.notifier.Notify(ws.Notification{
			Type:        "stock_alert",
			Title:       fmt.Sprintf("¡Alerta! %d productos sin stock", len(none)),
			Description: strings.Join(none, ", "),
			Variant:     "destructive",
		})
	}
	if len(low) > 0 {
		fire := func() {
			e.notifier.Notify(ws.Notification{
				Type:        "stock_alert",
				Title:       fmt.Sprintf("¡Alerta! %d productos con bajo stock", len(low)),
				Description: strings.Join(low, ", "),
				Variant:     "warning",
			})
		}
		if len(none) > 0 {
			time.AfterFunc(e.delay, fire)
		} else {
			fire()
		}
	}
}

// Fired reports whether the session latch has tripped.
func (e *Evaluator) Fired() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fired
}

// Reset re-arms the latch. Used when the session is torn down (and by tests).
func (e *Evaluator) Reset() {
	e.mu.Lock()
	e.fired = false
	e.mu.Unlock()
}

// LowStock returns the names in the current low-stock subset.
func (e *Evaluator) LowStock() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.lowStock...)
}

// NoStock returns the names in the current no-stock subset.
func (e *Evaluator) NoStock() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.noStock...)
}
