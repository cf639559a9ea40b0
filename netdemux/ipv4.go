package netdemux

import (
	"fmt"

	"github.com/moex-tools/simba-decode/internal/wire"
)

// IPv4 protocol numbers this decoder follows past the network layer.
const (
	ProtoTCP = 6
	ProtoUDP = 17
)

// minIPv4HeaderLen and maxIPv4HeaderLen bound IHL*4: IHL is a 4-bit field
// counting 32-bit words, so the header is between 20 and 60 bytes.
const (
	minIPv4HeaderLen = 20
	maxIPv4HeaderLen = 60
)

// ipv4Header is the parsed subset of an IPv4 header needed to locate and
// dispatch the transport-layer payload.
type ipv4Header struct {
	headerLen int
	totalLen  int
	protocol  uint8
	srcAddr   uint32
	dstAddr   uint32
}

func parseIPv4(seg []byte) (ipv4Header, []byte, error) {
	if len(seg) < minIPv4HeaderLen {
		return ipv4Header{}, nil, fmt.Errorf("%w: ipv4 header (%d < %d)",
			ErrTruncatedFrame, len(seg), minIPv4HeaderLen)
	}

	ihl := int(seg[0] & 0x0f)
	headerLen := ihl * 4

	if headerLen < minIPv4HeaderLen || headerLen > maxIPv4HeaderLen {
		return ipv4Header{}, nil, fmt.Errorf("%w: ihl=%d (%d bytes)", ErrInvalidIPHeader, ihl, headerLen)
	}

	if len(seg) < headerLen {
		return ipv4Header{}, nil, fmt.Errorf("%w: ipv4 header (%d < %d)",
			ErrTruncatedFrame, len(seg), headerLen)
	}

	h := ipv4Header{
		headerLen: headerLen,
		totalLen:  int(wire.Uint16BE(seg[2:4])),
		protocol:  seg[9],
		srcAddr:   wire.Uint32BE(seg[12:16]),
		dstAddr:   wire.Uint32BE(seg[16:20]),
	}

	end := h.totalLen
	if end < headerLen || end > len(seg) {
		// Some captures truncate below SnapLen or record a short IP total
		// length; fall back to whatever bytes the frame actually carries.
		end = len(seg)
	}

	return h, seg[headerLen:end], nil
}

// FormatIPv4 renders a 32-bit IPv4 address as a dotted-quad string.
func FormatIPv4(addr uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		byte(addr>>24), byte(addr>>16), byte(addr>>8), byte(addr))
}
