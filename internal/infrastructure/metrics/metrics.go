package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/elbaul-api/internal/application/order"
)

const namespace = "elbaul"

var _ order.Metrics = (*Metrics)(nil)

// Metrics contadores del flujo de compra y de las peticiones HTTP.
// Un *Metrics nil o creado sin registerer no hace nada.
type Metrics struct {
	checkouts      *prometheus.CounterVec
	checkoutAmount prometheus.Counter
	checkoutItems  prometheus.Histogram
	cancellations  prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkouts por resultado (ok o motivo del rechazo).",
		}, []string{"result"}),
		checkoutAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_amount_total",
			Help:      "Suma de los totales de las órdenes creadas.",
		}),
		checkoutItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_items",
			Help:      "Líneas por orden creada.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_cancelled_total",
			Help:      "Órdenes canceladas.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.checkouts, m.checkoutAmount, m.checkoutItems, m.cancellations, m.httpRequests, m.httpDuration)
	return m
}

func (m *Metrics) CheckoutSucceeded(total decimal.Decimal, items int) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues("ok").Inc()
	m.checkoutAmount.Add(total.InexactFloat64())
	m.checkoutItems.Observe(float64(items))
}

func (m *Metrics) CheckoutFailed(reason string) {
	if m == nil || m.checkouts == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.checkouts.WithLabelValues(reason).Inc()
}

func (m *Metrics) OrderCancelled() {
	if m == nil || m.cancellations == nil {
		return
	}
	m.cancellations.Inc()
}

// ObserveHTTP registra una petición. route es el patrón de la ruta, no la URL, para acotar la cardinalidad.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.httpRequests == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
