// Package metrics exports live ring buffer occupancy as Prometheus
// metrics. It wraps a SendBuffer or RecvBuffer the same way
// exporter.TCPInfoCollector wraps a socket table: a thin Collector that
// reads current state on each scrape rather than keeping its own
// counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alta-network/alta/packet"
	"github.com/alta-network/alta/ringbuffer"
)

const namespace = "alta"

// BufferCollector reports occupancy and per-state counts for a single
// SendBuffer or RecvBuffer. role distinguishes the two in the exported
// labels, e.g. role="send" or role="recv".
type BufferCollector struct {
	role     string
	lowestID func() uint64
	occupied func() int
	countOf  func(packet.State) int

	lowestIDDesc *prometheus.Desc
	occupiedDesc *prometheus.Desc
	stateDesc    *prometheus.Desc
}

// NewSendBufferCollector returns a BufferCollector scraping sb.
func NewSendBufferCollector(sb *ringbuffer.SendBuffer) *BufferCollector {
	return newBufferCollector("send",
		func() uint64 { return uint64(sb.LowestID()) },
		sb.Occupied,
		sb.CountState,
	)
}

// NewRecvBufferCollector returns a BufferCollector scraping rb.
func NewRecvBufferCollector(rb *ringbuffer.RecvBuffer) *BufferCollector {
	return newBufferCollector("recv",
		func() uint64 { return uint64(rb.LowestID()) },
		rb.Occupied,
		rb.CountState,
	)
}

func newBufferCollector(role string, lowestID func() uint64, occupied func() int, countOf func(packet.State) int) *BufferCollector {
	return &BufferCollector{
		role:     role,
		lowestID: lowestID,
		occupied: occupied,
		countOf:  countOf,
		lowestIDDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "buffer_lowest_id"),
			"Smallest packet identifier still held in the buffer window.",
			nil, prometheus.Labels{"role": role},
		),
		occupiedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "buffer_occupied_entries"),
			"Number of slots in the buffer window currently holding an entry.",
			nil, prometheus.Labels{"role": role},
		),
		stateDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "buffer_entries_in_state"),
			"Number of buffered entries currently in a given lifecycle state.",
			[]string{"state"}, prometheus.Labels{"role": role},
		),
	}
}

// Describe implements prometheus.Collector.
func (c *BufferCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.lowestIDDesc
	ch <- c.occupiedDesc
	ch <- c.stateDesc
}

// Collect implements prometheus.Collector.
func (c *BufferCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.lowestIDDesc, prometheus.GaugeValue, float64(c.lowestID()))
	ch <- prometheus.MustNewConstMetric(c.occupiedDesc, prometheus.GaugeValue, float64(c.occupied()))

	for _, state := range []packet.State{
		packet.NotReady,
		packet.ReadyToSend,
		packet.Authenticated,
		packet.BadAuthentication,
	} {
		ch <- prometheus.MustNewConstMetric(
			c.stateDesc, prometheus.GaugeValue,
			float64(c.countOf(state)), state.String(),
		)
	}
}
