package rotlog

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metricsNamespace prefixes every exported metric name
const metricsNamespace = "rotlog"

// Collector exports a Manager's Stats as Prometheus metrics.
// Values are read from the manager on each scrape.
type Collector struct {
	m *Manager

	enqueued       *prometheus.Desc
	filtered       *prometheus.Desc
	rejected       *prometheus.Desc
	processed      *prometheus.Desc
	fileWrites     *prometheus.Desc
	consoleWrites  *prometheus.Desc
	fileDropped    *prometheus.Desc
	rotations      *prometheus.Desc
	deletions      *prometheus.Desc
	lost           *prometheus.Desc
	queueDepth     *prometheus.Desc
	currentFileLen *prometheus.Desc
}

// NewCollector creates a collector for m. Every metric carries an "app"
// const label with the configured name.
func NewCollector(m *Manager) *Collector {
	labels := prometheus.Labels{"app": m.getConfig().Name}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", name), help, nil, labels)
	}

	return &Collector{
		m:              m,
		enqueued:       desc("events_enqueued_total", "Events accepted by the queue."),
		filtered:       desc("events_filtered_total", "Events dropped below the minimum level."),
		rejected:       desc("events_rejected_total", "Events recorded while the queue was closed."),
		processed:      desc("events_processed_total", "Events taken from the queue by the worker."),
		fileWrites:     desc("file_writes_total", "Lines written to the log file."),
		consoleWrites:  desc("console_writes_total", "Lines written to the console."),
		fileDropped:    desc("file_dropped_total", "Events dropped by the file sink after an I/O failure."),
		rotations:      desc("rotations_total", "Completed log file rotations."),
		deletions:      desc("deletions_total", "Log files removed by retention."),
		lost:           desc("events_lost_total", "Events discarded by a shutdown timeout."),
		queueDepth:     desc("queue_depth", "Events waiting for the worker."),
		currentFileLen: desc("current_file_bytes", "Bytes written to the active log file."),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.enqueued
	ch <- c.filtered
	ch <- c.rejected
	ch <- c.processed
	ch <- c.fileWrites
	ch <- c.consoleWrites
	ch <- c.fileDropped
	ch <- c.rotations
	ch <- c.deletions
	ch <- c.lost
	ch <- c.queueDepth
	ch <- c.currentFileLen
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.m.Stats()

	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	counter(c.enqueued, s.Enqueued)
	counter(c.filtered, s.Filtered)
	counter(c.rejected, s.Rejected)
	counter(c.processed, s.Processed)
	counter(c.fileWrites, s.FileWritten)
	counter(c.consoleWrites, s.ConsoleWritten)
	counter(c.fileDropped, s.FileDropped)
	counter(c.rotations, s.Rotations)
	counter(c.deletions, s.Deletions)
	counter(c.lost, s.Lost)

	ch <- prometheus.MustNewConstMetric(c.queueDepth, prometheus.GaugeValue, float64(s.QueueDepth))
	ch <- prometheus.MustNewConstMetric(c.currentFileLen, prometheus.GaugeValue, float64(s.CurrentFileSize))
}

var _ prometheus.Collector = (*Collector)(nil)
