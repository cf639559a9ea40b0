// Package jsonemit writes decoded SIMBA packets, with their PCAP/network
// context, as a single JSON array, the external-collaborator output format spec.md §6 describes but
// leaves unspecified in its core scope (spec.md §1). The numeric, enum, and
// bitmask shapes come from MarshalJSON methods on the sbe package's own
// types; this package only owns the array framing and streaming.
package jsonemit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/moex-tools/simba-decode/pcap"
	"github.com/moex-tools/simba-decode/sbe"
)

// entry is the top-level JSON object written per record. Field names follow
// original_source/PCAP_JSON.hpp's naming.
type entry struct {
	Sequence     uint64             `json:"sequence"`
	TsSec        uint32             `json:"ts_sec"`
	TsUsec       uint32             `json:"ts_usec"`
	SrcAddr      string             `json:"src_addr"`
	SrcPort      uint16             `json:"src_port"`
	DstAddr      string             `json:"dst_addr"`
	DstPort      uint16             `json:"dst_port"`
	MsgSeqNum    uint32             `json:"msg_seq_num"`
	Incremental  bool               `json:"incremental"`
	TemplateName string             `json:"last_template"`
	Messages     []json.RawMessage  `json:"messages"`
	Truncated    bool               `json:"truncated"`
}

// message is the per-SBE-message wrapper distinguishing the template from
// its decoded body.
type message struct {
	Template string `json:"template"`
	Body     any    `json:"body"`
}

// Writer streams records out as a single JSON array, one record at a time,
// without holding the whole output in memory.
type Writer struct {
	w       *bufio.Writer
	wrote   bool
	closed  bool
}

// NewWriter wraps w and writes the opening '['.
func NewWriter(w io.Writer) (*Writer, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("[\n"); err != nil {
		return nil, fmt.Errorf("jsonemit: write array open: %w", err)
	}

	return &Writer{w: bw}, nil
}

// Frame is the subset of PCAP/network context a record carries; it is
// passed in alongside the decoded packet rather than importing the
// pipeline package, keeping jsonemit usable standalone.
type Frame struct {
	Sequence uint64
	Header   pcap.PacketHeader
	SrcAddr  string
	SrcPort  uint16
	DstAddr  string
	DstPort  uint16
}

// Write appends one decoded packet to the array, comma-separating from any
// prior entry.
func (w *Writer) Write(frame Frame, packet sbe.SimbaPacket) error {
	if w.wrote {
		if _, err := w.w.WriteString(",\n"); err != nil {
			return fmt.Errorf("jsonemit: write separator: %w", err)
		}
	}
	w.wrote = true

	msgs := make([]json.RawMessage, 0, len(packet.Messages))
	for _, m := range packet.Messages {
		raw, err := json.Marshal(message{
			Template: sbe.TemplateName(m.Header.TemplateID),
			Body:     m.Body,
		})
		if err != nil {
			return fmt.Errorf("jsonemit: marshal message: %w", err)
		}
		msgs = append(msgs, raw)
	}

	e := entry{
		Sequence:     frame.Sequence,
		TsSec:        frame.Header.TsSec,
		TsUsec:       frame.Header.TsUsec,
		SrcAddr:      frame.SrcAddr,
		SrcPort:      frame.SrcPort,
		DstAddr:      frame.DstAddr,
		DstPort:      frame.DstPort,
		MsgSeqNum:    packet.MarketDataHeader.MsgSeqNum,
		Incremental:  packet.MarketDataHeader.Incremental(),
		TemplateName: sbe.TemplateName(packet.LastMessageHeader.TemplateID),
		Messages:     msgs,
		Truncated:    packet.Err != nil,
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("jsonemit: marshal entry: %w", err)
	}

	if _, err := w.w.Write(raw); err != nil {
		return fmt.Errorf("jsonemit: write entry: %w", err)
	}

	return nil
}

// Close writes the closing ']' and flushes the underlying writer. It must
// be called exactly once, after the last Write.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if _, err := w.w.WriteString("\n]\n"); err != nil {
		return fmt.Errorf("jsonemit: write array close: %w", err)
	}

	return w.w.Flush()
}
