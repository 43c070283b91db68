package calculator

import (
	"context"
	"time"

	"go-chi-calculator/internal/tape"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activeSessionsDesc = prometheus.NewDesc(
		"calculator_active_sessions",
		"Number of open keypad sessions.",
		nil, nil,
	)
	tapeEntriesDesc = prometheus.NewDesc(
		"calculator_tape_entries",
		"Number of calculations stored on the tape.",
		nil, nil,
	)
)

// Collector exposes registry and tape sizes to Prometheus at scrape time.
type Collector struct {
	sessions *Registry
	tape     tape.Store
}

// NewCollector returns a collector over sessions and store.
func NewCollector(sessions *Registry, store tape.Store) *Collector {
	return &Collector{sessions: sessions, tape: store}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- activeSessionsDesc
	ch <- tapeEntriesDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(activeSessionsDesc, prometheus.GaugeValue, float64(c.sessions.Len()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := c.tape.Count(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(tapeEntriesDesc, err)
		return
	}
	ch <- prometheus.MustNewConstMetric(tapeEntriesDesc, prometheus.GaugeValue, float64(n))
}
