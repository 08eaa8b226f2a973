package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckoutCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CheckoutSucceeded(decimal.NewFromInt(130), 2)
	m.CheckoutSucceeded(decimal.RequireFromString("19.50"), 1)
	m.CheckoutFailed("insufficient_stock")
	m.CheckoutFailed("")
	m.OrderCancelled()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.checkouts.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkouts.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkouts.WithLabelValues("unknown")))
	assert.InDelta(t, 149.5, testutil.ToFloat64(m.checkoutAmount), 0.001)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancellations))
}

func TestObserveHTTP(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveHTTP("POST", "/api/ordenes/checkout", 201, 15*time.Millisecond)
	m.ObserveHTTP("POST", "/api/ordenes/checkout", 400, time.Millisecond)
	m.ObserveHTTP("GET", "", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/ordenes/checkout", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))
}

func TestNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CheckoutSucceeded(decimal.NewFromInt(1), 1)
		m.CheckoutFailed("x")
		m.OrderCancelled()
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
		New(nil).OrderCancelled()
	})
}
