package sbe_test

import (
	"math"
	"math/bits"
	"testing"

	"github.com/pion/randutil"
	"github.com/stretchr/testify/require"

	"github.com/moex-tools/simba-decode/internal/wire"
	"github.com/moex-tools/simba-decode/sbe"
)

// marketDataPacketHeader appends a MarketDataPacketHeader with the given flags.
func marketDataPacketHeader(buf []byte, seqNum uint32, msgSize, flags uint16, sendingTime uint64) []byte {
	buf = wire.AppendUint32LE(buf, seqNum)
	buf = wire.AppendUint16LE(buf, msgSize)
	buf = wire.AppendUint16LE(buf, flags)
	buf = wire.AppendUint64LE(buf, sendingTime)

	return buf
}

func incrementalPacketHeader(buf []byte, transactTime uint64, sessionID uint32) []byte {
	buf = wire.AppendUint64LE(buf, transactTime)
	buf = wire.AppendUint32LE(buf, sessionID)

	return buf
}

func messageHeader(buf []byte, blockLength, templateID, schemaID, version uint16) []byte {
	buf = wire.AppendUint16LE(buf, blockLength)
	buf = wire.AppendUint16LE(buf, templateID)
	buf = wire.AppendUint16LE(buf, schemaID)
	buf = wire.AppendUint16LE(buf, version)

	return buf
}

// buildOrderUpdatePacket assembles the S2 scenario's exact payload.
func buildOrderUpdatePacket() []byte {
	buf := marketDataPacketHeader(nil, 1, 24, 0x0008, 0)
	buf = incrementalPacketHeader(buf, 0, 6952)
	buf = messageHeader(buf, 50, 15, 19780, 4)

	buf = wire.AppendUint64LE(buf, 42)                 // MDEntryID
	buf = wire.AppendUint64LE(buf, uint64(123456789))  // MDEntryPx mantissa
	buf = wire.AppendUint64LE(buf, 10)                 // MDEntrySize
	buf = wire.AppendUint64LE(buf, 0x0001)             // MDFlags (Day)
	buf = wire.AppendUint64LE(buf, 0)                  // MDFlags2
	buf = wire.AppendUint32LE(buf, 100)                // SecurityID
	buf = wire.AppendUint32LE(buf, 7)                  // RptSeq
	buf = append(buf, 0)                               // MDUpdateAction=New
	buf = append(buf, '0')                             // MDEntryType=Bid

	return buf
}

func TestDecodeOrderUpdateScenarioS2(t *testing.T) {
	payload := buildOrderUpdatePacket()

	packet := sbe.Decode(payload)
	require.NoError(t, packet.Err)
	require.NotNil(t, packet.IncrementalHeader)
	require.Equal(t, uint32(6952), packet.IncrementalHeader.ExchangeTradingSessionID)
	require.Len(t, packet.Messages, 1)

	upd, ok := packet.Messages[0].Body.(sbe.OrderUpdate)
	require.True(t, ok)
	require.Equal(t, int64(42), upd.MDEntryID)
	require.Equal(t, int64(123456789), upd.MDEntryPx.Mantissa)
	require.Equal(t, "Bid", upd.MDEntryType.String())
	require.Equal(t, []string{"Day"}, upd.MDFlags.Tags())
}

func TestDecodeUnknownTemplateScenarioS3(t *testing.T) {
	buf := marketDataPacketHeader(nil, 1, 24, 0x0008, 0)
	buf = incrementalPacketHeader(buf, 0, 6952)
	buf = messageHeader(buf, 50, 99, 19780, 4)
	buf = append(buf, make([]byte, 50)...)

	packet := sbe.Decode(buf)
	require.NoError(t, packet.Err)
	require.Empty(t, packet.Messages)
	require.Equal(t, uint16(99), packet.LastMessageHeader.TemplateID)
}

func TestDecodeOrderBookSnapshotEmptyGroupScenarioS6(t *testing.T) {
	buf := marketDataPacketHeader(nil, 1, 0, 0, 0)
	buf = messageHeader(buf, 16, 17, 19780, 4)
	buf = wire.AppendUint32LE(buf, 100) // SecurityID
	buf = wire.AppendUint32LE(buf, 1)   // LastMsgSeqNumProcessed
	buf = wire.AppendUint32LE(buf, 2)   // RptSeq
	buf = wire.AppendUint32LE(buf, 3)   // ExchangeTradingSessionID
	buf = wire.AppendUint16LE(buf, 41)  // GroupSize.blockLength
	buf = append(buf, 0)                // GroupSize.numInGroup = 0

	packet := sbe.Decode(buf)
	require.NoError(t, packet.Err)
	require.Len(t, packet.Messages, 1)

	snap, ok := packet.Messages[0].Body.(sbe.OrderBookSnapshot)
	require.True(t, ok)
	require.Empty(t, snap.MDEntries)
	require.Equal(t, int32(100), snap.SecurityID)
}

func TestUnknownTemplateAdvancesByBlockLengthPlusHeaderProperty5(t *testing.T) {
	const k = 37

	buf := marketDataPacketHeader(nil, 1, 0, 0, 0)
	buf = messageHeader(buf, k, 99, 1, 1)
	buf = append(buf, make([]byte, k)...)
	// Second message so we can observe where offset landed.
	buf = messageHeader(buf, 4, sbe.TemplateSequenceReset, 1, 1)
	buf = wire.AppendUint32LE(buf, 55)

	packet := sbe.Decode(buf)
	require.NoError(t, packet.Err)
	require.Len(t, packet.Messages, 1)

	reset, ok := packet.Messages[0].Body.(sbe.SequenceReset)
	require.True(t, ok)
	require.Equal(t, uint32(55), reset.NewSeqNo)
}

func TestBitmaskRoundtripProperty6(t *testing.T) {
	v := uint64(1<<0 | 1<<12 | 1<<50)

	tags := decodeMDFlagsSetForTest(v)
	require.Contains(t, tags, "Day")
	require.Contains(t, tags, "EndOfTransaction")
	require.Contains(t, tags, "bit50")
}

// TestBitmaskRoundtripProperty6Random exercises property 6 (every set bit
// maps to exactly one tag, named or raw "bitN") against randomized bit
// patterns rather than the one fixed vector above, so the invariant is
// checked over a wider sample of the 64-bit space than hand-picked bits
// would cover.
func TestBitmaskRoundtripProperty6Random(t *testing.T) {
	gen := randutil.NewMathRandomGenerator()

	for i := 0; i < 200; i++ {
		v := gen.Uint64()

		tags := decodeMDFlagsSetForTest(v)
		require.Len(t, tags, bits.OnesCount64(v))
	}
}

// decodeMDFlagsSetForTest exercises the bitmask decode through a full
// OrderUpdate round trip rather than an unexported constructor, keeping the
// bit-set invariant tested at the package boundary.
func decodeMDFlagsSetForTest(v uint64) []string {
	buf := marketDataPacketHeader(nil, 1, 0, 0, 0)
	buf = messageHeader(buf, 50, sbe.TemplateOrderUpdate, 1, 1)
	buf = wire.AppendUint64LE(buf, 1)
	buf = wire.AppendUint64LE(buf, 0)
	buf = wire.AppendUint64LE(buf, 1)
	buf = wire.AppendUint64LE(buf, v)
	buf = wire.AppendUint64LE(buf, 0)
	buf = wire.AppendUint32LE(buf, 1)
	buf = wire.AppendUint32LE(buf, 1)
	buf = append(buf, 0, '0')

	packet := sbe.Decode(buf)
	upd := packet.Messages[0].Body.(sbe.OrderUpdate)

	return upd.MDFlags.Tags()
}

func TestGroupCardinalityProperty7(t *testing.T) {
	buf := marketDataPacketHeader(nil, 1, 0, 0, 0)
	buf = messageHeader(buf, 16, sbe.TemplateOrderBookSnapshot, 1, 1)
	buf = wire.AppendUint32LE(buf, 1)
	buf = wire.AppendUint32LE(buf, 1)
	buf = wire.AppendUint32LE(buf, 1)
	buf = wire.AppendUint32LE(buf, 1)
	buf = wire.AppendUint16LE(buf, 57)
	buf = append(buf, 2) // numInGroup = 2

	for i := 0; i < 2; i++ {
		buf = wire.AppendUint64LE(buf, uint64(i))
		buf = wire.AppendUint64LE(buf, 0)
		buf = wire.AppendUint64LE(buf, 0)
		buf = wire.AppendUint64LE(buf, 0)
		buf = wire.AppendUint64LE(buf, 0)
		buf = wire.AppendUint64LE(buf, 0)
		buf = wire.AppendUint64LE(buf, 0)
		buf = append(buf, '0')
	}

	packet := sbe.Decode(buf)
	require.NoError(t, packet.Err)

	snap := packet.Messages[0].Body.(sbe.OrderBookSnapshot)
	require.Len(t, snap.MDEntries, int(snap.NoMDEntries.NumInGroup))
	require.Equal(t, 2, len(snap.MDEntries))
}

func TestStringBoundaryProperty8(t *testing.T) {
	// SecurityDefinition's flat preamble is 298 bytes on the wire.
	const preamble = 298

	buf := marketDataPacketHeader(nil, 1, 0, 0, 0)
	buf = messageHeader(buf, preamble, sbe.TemplateSecurityDefinition, 1, 1)
	buf = append(buf, make([]byte, preamble)...)

	for i := 0; i < 5; i++ {
		buf = wire.AppendUint16LE(buf, 0) // GroupSize.blockLength
		buf = append(buf, 0)              // GroupSize.numInGroup = 0
	}

	buf = wire.AppendUint16LE(buf, 0) // SecurityDesc: length 0
	buf = wire.AppendUint16LE(buf, 3) // QuotationList: length 3
	buf = append(buf, 'A', 0, 'B')    // payload bytes, not NUL-terminated

	packet := sbe.Decode(buf)
	require.NoError(t, packet.Err)
	def := packet.Messages[0].Body.(sbe.SecurityDefinition)
	require.Empty(t, def.SecurityDesc)
	require.Equal(t, "A\x00B", def.QuotationList)
}

func TestTruncationDetectedProperty10(t *testing.T) {
	full := buildOrderUpdatePacket()

	// Cutting one byte off the end truncates the last field (MDEntryType)
	// mid-message: the decoder must signal it, not silently drop the field.
	packet := sbe.Decode(full[:len(full)-1])
	require.Error(t, packet.Err)
	require.Empty(t, packet.Messages)

	// Cutting mid-way through the fixed MarketDataPacketHeader must also
	// be reported rather than producing a zero-valued header silently.
	packet = sbe.Decode(full[:4])
	require.Error(t, packet.Err)
}

func TestDoubleNullSentinelIsNaN(t *testing.T) {
	d := sbe.DoubleNULL{Value: math.NaN()}
	require.True(t, d.IsNull())
}
