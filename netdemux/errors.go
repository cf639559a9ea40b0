// Package netdemux strips Ethernet/IPv4/UDP/TCP headers off a captured
// link-layer frame to recover the SIMBA payload, per spec.md §3.3/§4.3.
package netdemux

import "errors"

var (
	// ErrTruncatedFrame means a header or its declared payload ran past
	// the end of the frame. Per-frame; reported and skipped.
	ErrTruncatedFrame = errors.New("netdemux: truncated frame")

	// ErrInvalidIPHeader means the IPv4 IHL was out of the valid [5, 15]
	// (20..60 byte) range. Per-frame; reported and skipped.
	ErrInvalidIPHeader = errors.New("netdemux: invalid ipv4 header length")
)
