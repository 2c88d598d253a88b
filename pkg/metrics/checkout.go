package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records sale commit outcomes at the register.
type CheckoutMetrics struct {
	duration  *prometheus.HistogramVec
	committed *prometheus.CounterVec
	aborted   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout commits in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"payment_method"})
	committed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_committed",
		Help: "Sales committed successfully.",
	}, []string{"payment_method"})
	aborted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_aborted",
		Help: "Checkout attempts rolled back, by rejection reason.",
	}, []string{"reason"})
	reg.MustRegister(duration, committed, aborted)
	return &CheckoutMetrics{
		duration:  duration,
		committed: committed,
		aborted:   aborted,
	}
}

// ObserveDuration records how long a commit took for the given payment method.
func (c *CheckoutMetrics) ObserveDuration(method string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(method)).Observe(duration.Seconds())
}

// IncCommitted increments the committed counter for the given payment method.
func (c *CheckoutMetrics) IncCommitted(method string) {
	if c == nil || c.committed == nil {
		return
	}
	c.committed.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncAborted increments the aborted counter for the given rejection reason.
func (c *CheckoutMetrics) IncAborted(reason string) {
	if c == nil || c.aborted == nil {
		return
	}
	c.aborted.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
