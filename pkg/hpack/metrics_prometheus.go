//go:build prometheus

package hpack

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dynamicTableSizeBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "hpack",
			Subsystem: "dynamic_table",
			Name:      "size_bytes",
			Help:      "Current accounted size of a dynamic table",
		},
		[]string{"role"},
	)

	dynamicTableCapacityBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "hpack",
			Subsystem: "dynamic_table",
			Name:      "capacity_bytes",
			Help:      "Configured capacity of a dynamic table",
		},
		[]string{"role"},
	)

	dynamicTableEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "hpack",
			Subsystem: "dynamic_table",
			Name:      "entries",
			Help:      "Number of entries currently held in a dynamic table",
		},
		[]string{"role"},
	)
)

// EncoderCollector implements prometheus.Collector over an Encoder's
// dynamic table, exposing the same size/capacity/entry-count surface the
// Encoder already tracks internally.
type EncoderCollector struct {
	enc *Encoder
}

// NewEncoderCollector wraps enc for Prometheus registration.
func NewEncoderCollector(enc *Encoder) *EncoderCollector {
	return &EncoderCollector{enc: enc}
}

func (c *EncoderCollector) Describe(ch chan<- *prometheus.Desc) {}

func (c *EncoderCollector) Collect(ch chan<- prometheus.Metric) {
	dynamicTableSizeBytes.WithLabelValues("encoder").Set(float64(c.enc.table.Size()))
	dynamicTableCapacityBytes.WithLabelValues("encoder").Set(float64(c.enc.table.MaxSize()))
	dynamicTableEntries.WithLabelValues("encoder").Set(float64(c.enc.table.Len()))

	dynamicTableSizeBytes.Collect(ch)
	dynamicTableCapacityBytes.Collect(ch)
	dynamicTableEntries.Collect(ch)
}

// DecoderCollector implements prometheus.Collector over a Decoder's
// dynamic table.
type DecoderCollector struct {
	dec *Decoder
}

// NewDecoderCollector wraps dec for Prometheus registration.
func NewDecoderCollector(dec *Decoder) *DecoderCollector {
	return &DecoderCollector{dec: dec}
}

func (c *DecoderCollector) Describe(ch chan<- *prometheus.Desc) {}

func (c *DecoderCollector) Collect(ch chan<- prometheus.Metric) {
	dynamicTableSizeBytes.WithLabelValues("decoder").Set(float64(c.dec.table.DynamicSize()))
	dynamicTableCapacityBytes.WithLabelValues("decoder").Set(float64(c.dec.table.DynamicMaxSize()))
	dynamicTableEntries.WithLabelValues("decoder").Set(float64(c.dec.table.DynamicLen()))

	dynamicTableSizeBytes.Collect(ch)
	dynamicTableCapacityBytes.Collect(ch)
	dynamicTableEntries.Collect(ch)
}
