package metrics

import (
	"strconv"
	"time"

	"github.com/aussiebroadwan/assertgrant/internal/auth/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "assertgrant"

// Collector is a prometheus.Collector that counts assertion grant outcomes.
type Collector struct {
	grants        *prometheus.CounterVec
	grantDuration prometheus.Histogram
	tokensIssued  *prometheus.CounterVec
}

// NewCollector returns a new Collector.
func NewCollector() *Collector {
	return &Collector{
		grants: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "grants_total",
				Help:      "Assertion grant requests by OAuth2 error code and reason. Successful grants have code and reason \"ok\".",
			}, []string{"code", "reason"},
		),
		grantDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "grant_duration_seconds",
				Help:      "Time taken to process an assertion grant.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		tokensIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "tokens_issued_total",
				Help:      "Access tokens handed out, split by whether a live token was reused.",
			}, []string{"reused"},
		),
	}
}

// ObserveGrant records one finished grant.
func (c *Collector) ObserveGrant(out domain.GrantOutcome, elapsed time.Duration) {
	c.grantDuration.Observe(elapsed.Seconds())

	if out.OK() {
		c.grants.WithLabelValues("ok", "ok").Inc()
		c.tokensIssued.WithLabelValues(strconv.FormatBool(out.Reused)).Inc()
		return
	}
	c.grants.WithLabelValues(out.Err.Code, out.Err.Reason).Inc()
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.grants.Describe(ch)
	c.grantDuration.Describe(ch)
	c.tokensIssued.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.grants.Collect(ch)
	c.grantDuration.Collect(ch)
	c.tokensIssued.Collect(ch)
}
