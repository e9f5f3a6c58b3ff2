// Package cstrmetrics exposes the cstr export table to Prometheus.
package cstrmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rawbytedev/cstr"
)

// Collector reports buffers held by foreign code. It reads cstr.Stats on
// every scrape.
type Collector struct {
	buffers  *prometheus.Desc
	bytes    *prometheus.Desc
	exports  *prometheus.Desc
	reclaims *prometheus.Desc
	stats    func() cstr.ExportStats
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector over the process-wide export table.
func NewCollector() *Collector {
	return newCollector(cstr.Stats)
}

func newCollector(stats func() cstr.ExportStats) *Collector {
	return &Collector{
		buffers: prometheus.NewDesc(
			"cstr_exported_buffers",
			"C strings passed to foreign code with IntoRaw and not yet reclaimed",
			nil, nil,
		),
		bytes: prometheus.NewDesc(
			"cstr_exported_bytes",
			"Bytes held by exported C strings, terminators included",
			nil, nil,
		),
		exports: prometheus.NewDesc(
			"cstr_exports_total",
			"Total IntoRaw calls",
			nil, nil,
		),
		reclaims: prometheus.NewDesc(
			"cstr_reclaims_total",
			"Total FromRaw calls",
			nil, nil,
		),
		stats: stats,
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.buffers
	ch <- c.bytes
	ch <- c.exports
	ch <- c.reclaims
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.buffers, prometheus.GaugeValue, float64(s.Outstanding))
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(s.OutstandingBytes))
	ch <- prometheus.MustNewConstMetric(c.exports, prometheus.CounterValue, float64(s.Exports))
	ch <- prometheus.MustNewConstMetric(c.reclaims, prometheus.CounterValue, float64(s.Reclaims))
}
