// Package metrics exposes the decoder's progress and failure counts as
// Prometheus collectors, the ambient instrumentation layer spec.md treats
// as an external collaborator (spec.md §1).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector tracks the decoder's run-level counters. It satisfies
// prometheus.Collector so it can be registered with any registry, but also
// exposes plain increment methods for the pipeline to call inline without
// reaching into label machinery on every frame.
type Collector struct {
	framesDecoded   prometheus.Counter
	bytesConsumed   prometheus.Counter
	packetsDecoded  prometheus.Counter
	messagesDecoded prometheus.Counter
	truncatedFrames prometheus.Counter
	truncatedPackets prometheus.Counter
	unknownTemplates prometheus.Counter
}

// New constructs a Collector. namespace prefixes every metric name, e.g.
// "simba" yields "simba_frames_decoded_total".
func New(namespace string) *Collector {
	return &Collector{
		framesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_decoded_total",
			Help:      "PCAP frames successfully carved off the byte source.",
		}),
		bytesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_consumed_total",
			Help:      "Bytes consumed from the input capture.",
		}),
		packetsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simba_packets_decoded_total",
			Help:      "SIMBA market-data packets decoded.",
		}),
		messagesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simba_messages_decoded_total",
			Help:      "SBE messages decoded across all packets.",
		}),
		truncatedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "truncated_frames_total",
			Help:      "Frames skipped for running short of a declared header or payload length.",
		}),
		truncatedPackets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "truncated_packets_total",
			Help:      "SIMBA packets whose decode stopped on a short read.",
		}),
		unknownTemplates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_templates_total",
			Help:      "Messages skipped for carrying an undispatched template id.",
		}),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.counters() {
		ch <- m.Desc()
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.counters() {
		ch <- m
	}
}

func (c *Collector) counters() []prometheus.Counter {
	return []prometheus.Counter{
		c.framesDecoded, c.bytesConsumed, c.packetsDecoded,
		c.messagesDecoded, c.truncatedFrames, c.truncatedPackets, c.unknownTemplates,
	}
}

func (c *Collector) FrameDecoded()          { c.framesDecoded.Inc() }
func (c *Collector) BytesConsumed(n int)    { c.bytesConsumed.Add(float64(n)) }
func (c *Collector) PacketDecoded()         { c.packetsDecoded.Inc() }
func (c *Collector) MessagesDecoded(n int)  { c.messagesDecoded.Add(float64(n)) }
func (c *Collector) TruncatedFrame()        { c.truncatedFrames.Inc() }
func (c *Collector) TruncatedPacket()       { c.truncatedPackets.Inc() }
func (c *Collector) UnknownTemplates(n int) { c.unknownTemplates.Add(float64(n)) }
