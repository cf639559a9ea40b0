// Package wire holds the byte-order helpers shared by the pcap, netdemux
// and sbe packages.
//
// SIMBA and PCAP are little-endian on the wire; Ethernet/IPv4/UDP/TCP are
// big-endian per IETF convention. Keeping the helpers for both orders in one place
// avoids repeating encoding/binary boilerplate at every call site, the same
// motivation as the teacher's own encoding.go (which exists because
// binary.BigEndian writes into a slice instead of appending to one).
package wire

import "encoding/binary"

// AppendUint16LE appends v to buf in little-endian order.
func AppendUint16LE(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}

// AppendUint32LE appends v to buf in little-endian order.
func AppendUint32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// AppendUint64LE appends v to buf in little-endian order.
func AppendUint64LE(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56),
	)
}

// Uint16LE reads a little-endian uint16 at buf[0:2]. Callers must bounds-check first.
func Uint16LE(buf []byte) uint16 { return binary.LittleEndian.Uint16(buf) }

// Uint32LE reads a little-endian uint32 at buf[0:4]. Callers must bounds-check first.
func Uint32LE(buf []byte) uint32 { return binary.LittleEndian.Uint32(buf) }

// Uint64LE reads a little-endian uint64 at buf[0:8]. Callers must bounds-check first.
func Uint64LE(buf []byte) uint64 { return binary.LittleEndian.Uint64(buf) }

// Int32LE reads a little-endian int32 at buf[0:4]. Callers must bounds-check first.
func Int32LE(buf []byte) int32 { return int32(Uint32LE(buf)) }

// Int64LE reads a little-endian int64 at buf[0:8]. Callers must bounds-check first.
func Int64LE(buf []byte) int64 { return int64(Uint64LE(buf)) }

// Uint16BE reads a big-endian uint16 at buf[0:2]. Callers must bounds-check first.
func Uint16BE(buf []byte) uint16 { return binary.BigEndian.Uint16(buf) }

// Uint32BE reads a big-endian uint32 at buf[0:4]. Callers must bounds-check first.
func Uint32BE(buf []byte) uint32 { return binary.BigEndian.Uint32(buf) }
