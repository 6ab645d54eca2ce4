// Package metrics exposes capability exchange statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	uce "github.com/ghettovoice/gouce"
)

// Collector adapts a [uce.StatsRecorder] to a [prometheus.Collector].
// Register it with a prometheus registry:
//
//	reg.MustRegister(metrics.NewCollector(recorder))
type Collector struct {
	rec *uce.StatsRecorder

	coordsActive *prometheus.Desc
	coordsTotal  *prometheus.Desc
	requests     *prometheus.Desc
	capsDeliv    *prometheus.Desc
	capsSaved    *prometheus.Desc
	forbidden    *prometheus.Desc
}

// NewCollector creates a collector reading from the given recorder.
func NewCollector(rec *uce.StatsRecorder) *Collector {
	return &Collector{
		rec: rec,
		coordsActive: prometheus.NewDesc(
			"gouce_coordinators_active",
			"Current number of coordinators with in-flight sub-requests.",
			nil, nil,
		),
		coordsTotal: prometheus.NewDesc(
			"gouce_coordinators_total",
			"Total number of created coordinators.",
			nil, nil,
		),
		requests: prometheus.NewDesc(
			"gouce_requests_total",
			"Total number of finished sub-requests, by outcome.",
			[]string{"outcome"}, nil,
		),
		capsDeliv: prometheus.NewDesc(
			"gouce_capabilities_delivered_total",
			"Total number of capability records delivered to callers.",
			nil, nil,
		),
		capsSaved: prometheus.NewDesc(
			"gouce_capabilities_saved_total",
			"Total number of capability records persisted to the cache.",
			nil, nil,
		),
		forbidden: prometheus.NewDesc(
			"gouce_forbidden_events_total",
			"Total number of forbidden responses reported by the network.",
			nil, nil,
		),
	}
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.coordsActive
	ch <- c.coordsTotal
	ch <- c.requests
	ch <- c.capsDeliv
	ch <- c.capsSaved
	ch <- c.forbidden
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	report := c.rec.Report()

	ch <- prometheus.MustNewConstMetric(c.coordsActive, prometheus.GaugeValue,
		float64(report.CoordinatorsActive))
	ch <- prometheus.MustNewConstMetric(c.coordsTotal, prometheus.CounterValue,
		float64(report.CoordinatorsTotal))
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue,
		float64(report.RequestsSucceeded), "success")
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue,
		float64(report.RequestsFailed), "failure")
	ch <- prometheus.MustNewConstMetric(c.capsDeliv, prometheus.CounterValue,
		float64(report.CapabilitiesDelivered))
	ch <- prometheus.MustNewConstMetric(c.capsSaved, prometheus.CounterValue,
		float64(report.CapabilitiesSaved))
	ch <- prometheus.MustNewConstMetric(c.forbidden, prometheus.CounterValue,
		float64(report.ForbiddenEvents))
}
