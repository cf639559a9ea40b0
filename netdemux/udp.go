package netdemux

import (
	"fmt"

	"github.com/moex-tools/simba-decode/internal/wire"
)

// UDPHeaderSize is the fixed size of a UDP datagram header.
const UDPHeaderSize = 8

type udpHeader struct {
	srcPort uint16
	dstPort uint16
	length  uint16
}

func parseUDP(seg []byte) (udpHeader, []byte, error) {
	if len(seg) < UDPHeaderSize {
		return udpHeader{}, nil, fmt.Errorf("%w: udp header (%d < %d)",
			ErrTruncatedFrame, len(seg), UDPHeaderSize)
	}

	h := udpHeader{
		srcPort: wire.Uint16BE(seg[0:2]),
		dstPort: wire.Uint16BE(seg[2:4]),
		length:  wire.Uint16BE(seg[4:6]),
	}

	payloadLen := int(h.length) - UDPHeaderSize
	if payloadLen < 0 {
		return h, nil, fmt.Errorf("%w: udp length %d shorter than header", ErrTruncatedFrame, h.length)
	}

	end := UDPHeaderSize + payloadLen
	if end > len(seg) {
		// Declared length overruns what the capture actually kept; hand back
		// what's there rather than fail a frame SnapLen legitimately trimmed.
		end = len(seg)
	}

	return h, seg[UDPHeaderSize:end], nil
}
