package sbe

import "fmt"

// bitTag names one bit position of a bitmask field.
type bitTag struct {
	bit  uint
	name string
}

// tagsForBits decodes raw bit-by-bit against names, returning the set of
// named tags whose bit is set plus a raw numeric tag ("bit41") for any set
// bit that isn't in names, so no information from the wire is dropped
// (spec.md §4.4.7).
func tagsForBits(raw uint64, names []bitTag) []string {
	known := make(map[uint]string, len(names))
	for _, t := range names {
		known[t.bit] = t.name
	}

	var tags []string

	for bit := uint(0); bit < 64; bit++ {
		if raw&(1<<bit) == 0 {
			continue
		}

		if name, ok := known[bit]; ok {
			tags = append(tags, name)
		} else {
			tags = append(tags, fmt.Sprintf("bit%d", bit))
		}
	}

	return tags
}

// MsgFlagsSet is the bitmask carried in MarketDataPacketHeader.MsgFlags.
type MsgFlagsSet struct {
	raw uint16
}

var msgFlagsNames = []bitTag{
	{0, "LastFragment"},
	{1, "StartOfSnapshot"},
	{2, "EndOfSnapshot"},
	{3, "IncrementalPacket"},
	{4, "PossDupFlag"},
}

func decodeMsgFlagsSet(raw uint16) MsgFlagsSet { return MsgFlagsSet{raw: raw} }

// Raw returns the underlying bitmask value.
func (m MsgFlagsSet) Raw() uint16 { return m.raw }

// Tags returns the named and raw-numeric tags of every set bit.
func (m MsgFlagsSet) Tags() []string { return tagsForBits(uint64(m.raw), msgFlagsNames) }

// MDFlagsSet is the bitmask carried by OrderUpdate/OrderExecution/
// OrderBookSnapshotEntry.MDFlags.
type MDFlagsSet struct {
	raw uint64
}

var mdFlagsNames = []bitTag{
	{0, "Day"},
	{1, "IOC"},
	{2, "NonQuote"},
	{12, "EndOfTransaction"},
	{13, "DueToCrossCancel"},
	{14, "SecondLeg"},
	{19, "FOK"},
	{20, "Replace"},
	{21, "Cancel"},
	{22, "MassCancel"},
	{26, "Negotiated"},
	{27, "MultiLeg"},
	{29, "CrossTrade"},
	{31, "NegotiatedMatchByRef"},
	{32, "COD"},
	{41, "ActiveSide"},
	{42, "PassiveSide"},
	{45, "Synthetic"},
	{46, "RFS"},
	{57, "SyntheticPassive"},
	{60, "BOC"},
	{62, "DuringDiscreteAuction"},
}

func decodeMDFlagsSet(raw uint64) MDFlagsSet { return MDFlagsSet{raw: raw} }

// Raw returns the underlying bitmask value.
func (m MDFlagsSet) Raw() uint64 { return m.raw }

// Tags returns the named and raw-numeric tags of every set bit.
func (m MDFlagsSet) Tags() []string { return tagsForBits(m.raw, mdFlagsNames) }

// MDFlags2Set is reserved in the schema (always zero on the wire today)
// but decoded the same way so a future bit assignment needs no shape change.
type MDFlags2Set struct {
	raw uint64
}

func decodeMDFlags2Set(raw uint64) MDFlags2Set { return MDFlags2Set{raw: raw} }

// Raw returns the underlying bitmask value.
func (m MDFlags2Set) Raw() uint64 { return m.raw }

// Tags returns the named and raw-numeric tags of every set bit.
func (m MDFlags2Set) Tags() []string { return tagsForBits(m.raw, nil) }

// FlagsSet is the bitmask carried by SecurityDefinition.Flags.
type FlagsSet struct {
	raw uint64
}

var flagsSetNames = []bitTag{
	{0, "EveningOrMorningSession"},
	{4, "AnonymousTrading"},
	{5, "PrivateTrading"},
	{6, "DaySession"},
	{8, "MultiLeg"},
	{18, "Collateral"},
	{19, "IntradayExercise"},
}

func decodeFlagsSet(raw uint64) FlagsSet { return FlagsSet{raw: raw} }

// Raw returns the underlying bitmask value.
func (f FlagsSet) Raw() uint64 { return f.raw }

// Tags returns the named and raw-numeric tags of every set bit.
func (f FlagsSet) Tags() []string { return tagsForBits(f.raw, flagsSetNames) }
