package netdemux

import (
	"fmt"

	"github.com/moex-tools/simba-decode/internal/wire"
)

// EthernetHeaderSize is the fixed size of an untagged Ethernet II header.
const EthernetHeaderSize = 14

// EtherTypeIPv4 is the only ethertype this decoder follows into IP.
const EtherTypeIPv4 = 0x0800

// ethernetHeader is the parsed subset of an Ethernet II frame header this
// decoder cares about; source/destination MACs aren't needed downstream.
type ethernetHeader struct {
	etherType uint16
}

func parseEthernet(frame []byte) (ethernetHeader, []byte, error) {
	if len(frame) < EthernetHeaderSize {
		return ethernetHeader{}, nil, fmt.Errorf("%w: ethernet header (%d < %d)",
			ErrTruncatedFrame, len(frame), EthernetHeaderSize)
	}

	return ethernetHeader{
		etherType: wire.Uint16BE(frame[12:14]),
	}, frame[EthernetHeaderSize:], nil
}
