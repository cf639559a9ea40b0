package sbe

import "math"

// MarketID is the wire-implicit constant every SecurityDefinition and
// TradingSessionStatus record carries (spec.md §9); it never appears on
// the wire and is attached here rather than threaded through as state.
const MarketID = "MOEX"

// SecurityIDSource is the wire-implicit constant class of SecurityID values
// this schema uses throughout (spec.md §9).
const SecurityIDSource = '8'

// decimal5NullValue is the sentinel mantissa meaning "no value" for
// Decimal5NULL and Decimal2NULL fields.
const decimal5NullValue = math.MaxInt64

// MessageHeader precedes every SBE message body: 8 bytes, little-endian.
type MessageHeader struct {
	BlockLength uint16
	TemplateID  uint16
	SchemaID    uint16
	Version     uint16
}

// HeaderSize is the fixed wire size of MessageHeader.
const HeaderSize = 8

func parseMessageHeader(r *reader) MessageHeader {
	return MessageHeader{
		BlockLength: r.u16(),
		TemplateID:  r.u16(),
		SchemaID:    r.u16(),
		Version:     r.u16(),
	}
}

// GroupSize precedes a repeating group with an 8-bit entry count.
type GroupSize struct {
	BlockLength uint16
	NumInGroup  uint8
}

// GroupSizeSize is the fixed wire size of GroupSize.
const GroupSizeSize = 3

// GroupSize2 precedes a repeating group with a 16-bit entry count.
type GroupSize2 struct {
	BlockLength uint16
	NumInGroup  uint16
}

// GroupSize2Size is the fixed wire size of GroupSize2.
const GroupSize2Size = 4

// Decimal5 is a fixed-point price with an implicit exponent of -5 and no
// null sentinel.
type Decimal5 struct {
	Mantissa int64
}

// Exponent reports the fixed scale of a Decimal5.
func (Decimal5) Exponent() int { return -5 }

// Decimal5NULL is a Decimal5 whose mantissa may be the NULL_VALUE sentinel.
type Decimal5NULL struct {
	Mantissa int64
}

// Exponent reports the fixed scale of a Decimal5NULL.
func (Decimal5NULL) Exponent() int { return -5 }

// IsNull reports whether the field was absent on the wire.
func (d Decimal5NULL) IsNull() bool { return d.Mantissa == decimal5NullValue }

// Decimal2NULL is a fixed-point amount with an implicit exponent of -2 and
// a NULL_VALUE sentinel.
type Decimal2NULL struct {
	Mantissa int64
}

// Exponent reports the fixed scale of a Decimal2NULL.
func (Decimal2NULL) Exponent() int { return -2 }

// IsNull reports whether the field was absent on the wire.
func (d Decimal2NULL) IsNull() bool { return d.Mantissa == decimal5NullValue }

// DoubleNULL is an IEEE-754 double whose absence is encoded as a quiet NaN.
type DoubleNULL struct {
	Value float64
}

// IsNull reports whether the field was absent on the wire.
func (d DoubleNULL) IsNull() bool { return math.IsNaN(d.Value) }

// MarketDataPacketHeaderSize is the fixed wire size of MarketDataPacketHeader.
const MarketDataPacketHeaderSize = 16

// MsgFlagsIncrementalBit marks a packet as carrying an IncrementalPacketHeader.
const MsgFlagsIncrementalBit = 0x0008

// MarketDataPacketHeader opens every SIMBA packet.
type MarketDataPacketHeader struct {
	MsgSeqNum   uint32
	MsgSize     uint16
	MsgFlags    MsgFlagsSet
	SendingTime uint64
}

// Incremental reports whether MsgFlags carries the IncrementalPacket bit.
func (h MarketDataPacketHeader) Incremental() bool {
	return h.MsgFlags.raw&MsgFlagsIncrementalBit != 0
}

func parseMarketDataPacketHeader(r *reader) MarketDataPacketHeader {
	seqNum := r.u32()
	msgSize := r.u16()
	flags := r.u16()
	sendingTime := r.u64()

	return MarketDataPacketHeader{
		MsgSeqNum:   seqNum,
		MsgSize:     msgSize,
		MsgFlags:    decodeMsgFlagsSet(flags),
		SendingTime: sendingTime,
	}
}

// IncrementalPacketHeaderSize is the fixed wire size of IncrementalPacketHeader.
const IncrementalPacketHeaderSize = 12

// IncrementalPacketHeader is present iff MarketDataPacketHeader.Incremental().
type IncrementalPacketHeader struct {
	TransactTime             uint64
	ExchangeTradingSessionID uint32
}

func parseIncrementalPacketHeader(r *reader) IncrementalPacketHeader {
	return IncrementalPacketHeader{
		TransactTime:             r.u64(),
		ExchangeTradingSessionID: r.u32(),
	}
}
