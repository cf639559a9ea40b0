package netdemux

import (
	"fmt"

	"github.com/moex-tools/simba-decode/pcap"
)

// Endpoint identifies the transport-layer source or destination a payload
// was addressed to, kept around for logging and the eventual JSON record.
type Endpoint struct {
	Addr string
	Port uint16
}

// Result is the transport payload recovered from a link-layer frame plus
// the addressing metadata a caller may want to attach to decoded records.
type Result struct {
	Src      Endpoint
	Dst      Endpoint
	Protocol uint8
	Payload  []byte
}

// Demux strips link/network/transport headers off frame according to
// linkType (a pcap.GlobalHeader.Network value) and returns the application
// payload plus its addressing. Only Ethernet-encapsulated IPv4 over TCP or
// UDP reaches a payload.
//
// A nil Result with a nil error means the frame carries nothing decodable
// and is skipped silently: a raw IP or 802.11 link type, a non-IPv4
// ethertype, or an IP protocol other than TCP/UDP. A non-nil error means an
// unsupported link type or a truncated or invalid header; the caller should
// log it and move to the next frame.
func Demux(frame []byte, linkType uint32) (*Result, error) {
	switch linkType {
	case pcap.LinkTypeEthernet:
		return demuxEthernet(frame)
	case pcap.LinkTypeRawIP, pcap.LinkTypeIEEE80211:
		return nil, nil
	default:
		return nil, fmt.Errorf("netdemux: unsupported link type %d", linkType)
	}
}

func demuxEthernet(frame []byte) (*Result, error) {
	eth, rest, err := parseEthernet(frame)
	if err != nil {
		return nil, err
	}

	if eth.etherType != EtherTypeIPv4 {
		return nil, nil
	}

	ip, rest, err := parseIPv4(rest)
	if err != nil {
		return nil, err
	}

	srcAddr := FormatIPv4(ip.srcAddr)
	dstAddr := FormatIPv4(ip.dstAddr)

	switch ip.protocol {
	case ProtoUDP:
		udp, payload, err := parseUDP(rest)
		if err != nil {
			return nil, err
		}

		return &Result{
			Src:      Endpoint{Addr: srcAddr, Port: udp.srcPort},
			Dst:      Endpoint{Addr: dstAddr, Port: udp.dstPort},
			Protocol: ip.protocol,
			Payload:  payload,
		}, nil
	case ProtoTCP:
		tcp, payload, err := parseTCP(rest)
		if err != nil {
			return nil, err
		}

		return &Result{
			Src:      Endpoint{Addr: srcAddr, Port: tcp.srcPort},
			Dst:      Endpoint{Addr: dstAddr, Port: tcp.dstPort},
			Protocol: ip.protocol,
			Payload:  payload,
		}, nil
	default:
		return nil, nil
	}
}
