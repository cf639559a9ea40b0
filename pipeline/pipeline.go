// Package pipeline drives the pull chain byte source -> PCAP framer ->
// network demultiplexer -> SIMBA decoder described in spec.md §2 and §5.
// It is the only component that wires the core packages together; it is
// itself an external collaborator relative to the core per spec.md §1.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/moex-tools/simba-decode/bytesource"
	"github.com/moex-tools/simba-decode/metrics"
	"github.com/moex-tools/simba-decode/netdemux"
	"github.com/moex-tools/simba-decode/pcap"
	"github.com/moex-tools/simba-decode/sbe"
)

// Record is one decoded SIMBA packet plus the PCAP/network context it was
// recovered from, the unit a Sink receives.
type Record struct {
	Sequence uint64
	Frame    pcap.PacketHeader
	Net      *netdemux.Result
	Packet   sbe.SimbaPacket
}

// Sink receives decoded records in strict input order (spec.md §5).
type Sink func(Record) error

// Options configures a Run. Log accepts both *logrus.Logger and
// *logrus.Entry, so a caller that pre-attaches fields (a run id, say) has
// those fields carried through every line this package itself logs.
type Options struct {
	ChunkSize int
	Metrics   *metrics.Collector
	Log       logrus.FieldLogger
}

// Run drives path through the full pull chain, calling sink once per
// decoded SIMBA packet. It stops and returns the first fatal error
// (bytesource.ErrIO, pcap.ErrBufferTooSmall) or sink error and otherwise
// runs to pcap.ErrEndOfStream, which it treats as success. A capture that
// ends mid-frame (pcap.ErrTruncatedFrame) is logged at Warn and also ends
// the run with a nil error.
func Run(path string, opts Options, sink Sink) error {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	src, err := bytesource.OpenAuto(path, opts.ChunkSize)
	if err != nil {
		return fmt.Errorf("pipeline: open %s: %w", path, err)
	}
	defer src.Close()

	framer, err := pcap.NewFramer(src)
	if err != nil {
		return fmt.Errorf("pipeline: parse global header: %w", err)
	}

	linkType := framer.GlobalHeader().Network

	for {
		hdr, frame, err := framer.NextFrame()
		if err != nil {
			if errors.Is(err, pcap.ErrEndOfStream) {
				return nil
			}

			if errors.Is(err, pcap.ErrTruncatedFrame) {
				log.WithError(err).Warn("truncated frame, stopping")

				return nil
			}

			return fmt.Errorf("pipeline: %w", err)
		}

		if opts.Metrics != nil {
			opts.Metrics.FrameDecoded()
			opts.Metrics.BytesConsumed(len(frame))
		}

		result, err := netdemux.Demux(frame, linkType)
		if err != nil {
			log.WithError(err).Debug("frame skipped")

			if opts.Metrics != nil && errors.Is(err, netdemux.ErrTruncatedFrame) {
				opts.Metrics.TruncatedFrame()
			}

			continue
		}

		if result == nil {
			continue
		}

		packet := sbe.Decode(result.Payload)

		if opts.Metrics != nil {
			opts.Metrics.PacketDecoded()
			opts.Metrics.MessagesDecoded(len(packet.Messages))

			if packet.Err != nil {
				opts.Metrics.TruncatedPacket()
			}
		}

		if packet.Err != nil {
			log.WithError(packet.Err).Warn("partial packet")
		}

		if packet.UnknownTemplates > 0 {
			log.WithField("count", packet.UnknownTemplates).Debug("unknown template skipped")

			if opts.Metrics != nil {
				opts.Metrics.UnknownTemplates(packet.UnknownTemplates)
			}
		}

		record := Record{
			Sequence: framer.FramesDecoded(),
			Frame:    hdr,
			Net:      result,
			Packet:   packet,
		}

		if err := sink(record); err != nil {
			return fmt.Errorf("pipeline: sink: %w", err)
		}
	}
}
