// Package pcap parses the little-endian PCAP capture format: a global
// header followed by a stream of (packet header, captured bytes) frames,
// per spec.md §3.2/§4.2.
package pcap

import (
	"errors"
	"fmt"

	"github.com/moex-tools/simba-decode/internal/wire"
)

// GlobalHeaderSize is the fixed wire size of GlobalHeader.
const GlobalHeaderSize = 24

// PacketHeaderSize is the fixed wire size of PacketHeader.
const PacketHeaderSize = 16

// MagicLittleEndian is the only magic number this decoder accepts;
// PCAPNG and big-endian PCAP are out of scope (spec.md §1, §6.1).
const MagicLittleEndian = 0xA1B2C3D4

// Link types understood by the framer. Only LinkTypeEthernet is actually
// decoded; LinkTypeRawIP and LinkTypeIEEE80211 are accepted and silently
// skipped (spec.md §3.2); any other value skips the packet.
const (
	LinkTypeEthernet  = 1
	LinkTypeRawIP     = 101
	LinkTypeIEEE80211 = 105
)

// ErrUnsupportedMagic is returned when the global header's magic number
// isn't the little-endian PCAP magic.
var ErrUnsupportedMagic = errors.New("pcap: unsupported magic number (not little-endian pcap)")

// GlobalHeader is the 24-byte header at the start of every PCAP file.
type GlobalHeader struct {
	MagicNumber  uint32
	VersionMajor uint16
	VersionMinor uint16
	ThisZone     int32
	SigFigs      uint32
	SnapLen      uint32
	Network      uint32 // link type, selects the frame decoder
}

// ParseGlobalHeader decodes a GlobalHeader from the first GlobalHeaderSize
// bytes of buf. Callers must ensure len(buf) >= GlobalHeaderSize.
func ParseGlobalHeader(buf []byte) (GlobalHeader, error) {
	if len(buf) < GlobalHeaderSize {
		return GlobalHeader{}, fmt.Errorf("%w: short read (%d < %d)", ErrTruncatedHeader, len(buf), GlobalHeaderSize)
	}

	h := GlobalHeader{
		MagicNumber:  wire.Uint32LE(buf[0:4]),
		VersionMajor: wire.Uint16LE(buf[4:6]),
		VersionMinor: wire.Uint16LE(buf[6:8]),
		ThisZone:     wire.Int32LE(buf[8:12]),
		SigFigs:      wire.Uint32LE(buf[12:16]),
		SnapLen:      wire.Uint32LE(buf[16:20]),
		Network:      wire.Uint32LE(buf[20:24]),
	}

	if h.MagicNumber != MagicLittleEndian {
		return h, fmt.Errorf("%w: got 0x%08x", ErrUnsupportedMagic, h.MagicNumber)
	}

	return h, nil
}

// PacketHeader is the 16-byte per-packet header preceding each frame.
type PacketHeader struct {
	TsSec   uint32
	TsUsec  uint32
	InclLen uint32 // captured octets, <= GlobalHeader.SnapLen
	OrigLen uint32
}

// ParsePacketHeader decodes a PacketHeader from the first PacketHeaderSize
// bytes of buf. Callers must ensure len(buf) >= PacketHeaderSize.
func ParsePacketHeader(buf []byte) (PacketHeader, error) {
	if len(buf) < PacketHeaderSize {
		return PacketHeader{}, fmt.Errorf("%w: short read (%d < %d)", ErrTruncatedHeader, len(buf), PacketHeaderSize)
	}

	return PacketHeader{
		TsSec:   wire.Uint32LE(buf[0:4]),
		TsUsec:  wire.Uint32LE(buf[4:8]),
		InclLen: wire.Uint32LE(buf[8:12]),
		OrigLen: wire.Uint32LE(buf[12:16]),
	}, nil
}
