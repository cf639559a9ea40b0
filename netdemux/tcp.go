package netdemux

import (
	"fmt"

	"github.com/moex-tools/simba-decode/internal/wire"
)

// TCP header length is data_offset*4, bounded the same way an IPv4 IHL is:
// a 4-bit word count, so between 20 (no options) and 60 bytes.
const (
	minTCPHeaderLen = 20
	maxTCPHeaderLen = 60
)

type tcpHeader struct {
	srcPort   uint16
	dstPort   uint16
	headerLen int
}

func parseTCP(seg []byte) (tcpHeader, []byte, error) {
	if len(seg) < minTCPHeaderLen {
		return tcpHeader{}, nil, fmt.Errorf("%w: tcp header (%d < %d)",
			ErrTruncatedFrame, len(seg), minTCPHeaderLen)
	}

	dataOffset := int(seg[12]>>4) * 4

	if dataOffset < minTCPHeaderLen || dataOffset > maxTCPHeaderLen {
		return tcpHeader{}, nil, fmt.Errorf("netdemux: tcp data offset %d out of range", dataOffset)
	}

	if len(seg) < dataOffset {
		return tcpHeader{}, nil, fmt.Errorf("%w: tcp header (%d < %d)",
			ErrTruncatedFrame, len(seg), dataOffset)
	}

	h := tcpHeader{
		srcPort:   wire.Uint16BE(seg[0:2]),
		dstPort:   wire.Uint16BE(seg[2:4]),
		headerLen: dataOffset,
	}

	return h, seg[dataOffset:], nil
}
