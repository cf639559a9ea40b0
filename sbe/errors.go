// Package sbe decodes Moscow Exchange SIMBA market-data packets: the
// market-data packet header, the optional incremental header, and a
// sequence of SBE messages dispatched by template id (spec.md §4.4).
package sbe

import "errors"

// ErrTruncatedPacket is returned when a read inside a SIMBA message runs
// past the end of the payload. The packet is still returned, partial, with
// this error attached so a caller can report it without losing the bytes
// already decoded.
var ErrTruncatedPacket = errors.New("sbe: truncated packet")
