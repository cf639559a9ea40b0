package pcap

import "errors"

var (
	// ErrTruncatedHeader is returned when fewer bytes are available than a
	// fixed-size header requires.
	ErrTruncatedHeader = errors.New("pcap: truncated header")

	// ErrBufferTooSmall means a frame's incl_len exceeds the framer's
	// scratch buffer capacity. Fatal per spec.md §7.
	ErrBufferTooSmall = errors.New("pcap: record larger than scratch buffer")

	// ErrEndOfStream is returned by NextFrame once the byte source is
	// exhausted and no more frames can be produced. Not a failure.
	ErrEndOfStream = errors.New("pcap: end of stream")

	// ErrTruncatedFrame means the capture ended mid-header or mid-payload:
	// fewer bytes were available than a packet header or its incl_len
	// declared. Per-frame; the caller should log and stop.
	ErrTruncatedFrame = errors.New("pcap: truncated frame")
)
