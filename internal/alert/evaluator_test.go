package alert

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/ws"
)

func products(stocks ...int) []model.Product {
	out := make([]model.Product, len(stocks))
	for i, stock := range stocks {
		out[i] = model.Product{
			ID:     fmt.Sprintf("PRD%03d", i+1),
			Name:   fmt.Sprintf("Producto %d", i+1),
			Stock:  stock,
			Status: model.StatusForStock(stock),
		}
	}
	return out
}

func TestFiresNoStockThenLowStockExactlyOnce(t *testing.T) {
	rec := &ws.Recorder{}
	e := NewEvaluator(rec).WithDelay(5 * time.Millisecond)

	e.Evaluate(products(3, 0))

	require.Eventually(t, func() bool { return rec.Count() == 2 }, time.Second, time.Millisecond)
	events := rec.Events()
	assert.Contains(t, events[0].Title, "sin stock")
	assert.Equal(t, "destructive", events[0].Variant)
	assert.Contains(t, events[1].Title, "bajo stock")
	assert.Equal(t, "warning", events[1].Variant)

	// The session latch suppresses every later round, even when more
	// products drop to zero.
	e.Evaluate(products(0, 0, 0))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, rec.Count())
	assert.True(t, e.Fired())
}

func TestLowStockOnlyFiresImmediately(t *testing.T) {
	rec := &ws.Recorder{}
	e := NewEvaluator(rec).WithDelay(time.Hour)

	e.Evaluate(products(2))

	require.Equal(t, 1, rec.Count())
	assert.Contains(t, rec.Events()[0].Title, "bajo stock")
}

func TestHealthyStockDoesNotTripLatch(t *testing.T) {
	rec := &ws.Recorder{}
	e := NewEvaluator(rec)

	e.Evaluate(products(20, 50))
	assert.Zero(t, rec.Count())
	assert.False(t, e.Fired())

	// The first round with something to report still fires.
	e.Evaluate(products(20, 4))
	assert.Equal(t, 1, rec.Count())
}

func TestSubsetsTrackCurrentState(t *testing.T) {
	e := NewEvaluator(ws.NopNotifier{})

	e.Evaluate([]model.Product{
		{Name: "Sin", Stock: 0},
		{Name: "Bajo", Stock: 5},
		{Name: "Bien", Stock: 6},
	})

	assert.Equal(t, []string{"Sin"}, e.NoStock())
	assert.Equal(t, []string{"Bajo"}, e.LowStock())
}

func TestResetReArmsLatch(t *testing.T) {
	rec := &ws.Recorder{}
	e := NewEvaluator(rec)

	e.Evaluate(products(1))
	require.Equal(t, 1, rec.Count())

	e.Reset()
	e.Evaluate(products(1))
	assert.Equal(t, 2, rec.Count())
}
