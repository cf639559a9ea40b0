package pipeline_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moex-tools/simba-decode/internal/wire"
	"github.com/moex-tools/simba-decode/pipeline"
	"github.com/moex-tools/simba-decode/sbe"
)

func globalHeader(network uint32) []byte {
	buf := wire.AppendUint32LE(nil, 0xA1B2C3D4)
	buf = wire.AppendUint16LE(buf, 2)
	buf = wire.AppendUint16LE(buf, 4)
	buf = wire.AppendUint32LE(buf, 0)
	buf = wire.AppendUint32LE(buf, 0)
	buf = wire.AppendUint32LE(buf, 262144)
	buf = wire.AppendUint32LE(buf, network)

	return buf
}

func packetHeader(inclLen uint32) []byte {
	buf := wire.AppendUint32LE(nil, 0)
	buf = wire.AppendUint32LE(buf, 0)
	buf = wire.AppendUint32LE(buf, inclLen)
	buf = wire.AppendUint32LE(buf, inclLen)

	return buf
}

// simbaOrderUpdatePayload builds one SIMBA packet carrying the S2 scenario's
// OrderUpdate message, but without S2's incremental flag and header
// (non-incremental, single message).
func simbaOrderUpdatePayload() []byte {
	buf := wire.AppendUint32LE(nil, 1) // MsgSeqNum
	buf = wire.AppendUint16LE(buf, 0)  // MsgSize (unused on decode)
	buf = wire.AppendUint16LE(buf, 0)  // MsgFlags, non-incremental
	buf = wire.AppendUint64LE(buf, 0)  // SendingTime

	buf = wire.AppendUint16LE(buf, 50)                        // BlockLength
	buf = wire.AppendUint16LE(buf, sbe.TemplateOrderUpdate)    // TemplateID
	buf = wire.AppendUint16LE(buf, 19780)                      // SchemaID
	buf = wire.AppendUint16LE(buf, 4)                          // Version

	buf = wire.AppendUint64LE(buf, 42)            // MDEntryID
	buf = wire.AppendUint64LE(buf, 123456789)      // MDEntryPx mantissa
	buf = wire.AppendUint64LE(buf, 10)             // MDEntrySize
	buf = wire.AppendUint64LE(buf, 0x0001)         // MDFlags (Day)
	buf = wire.AppendUint64LE(buf, 0)              // MDFlags2
	buf = wire.AppendUint32LE(buf, 100)            // SecurityID
	buf = wire.AppendUint32LE(buf, 7)              // RptSeq
	buf = append(buf, 0)                           // MDUpdateAction=New
	buf = append(buf, '0')                         // MDEntryType=Bid

	return buf
}

func buildEthIPv4UDPFrame(payload []byte) []byte {
	frame := make([]byte, 0, 14+20+8+len(payload))
	frame = append(frame, make([]byte, 12)...)
	frame = binary.BigEndian.AppendUint16(frame, 0x0800)

	frame = append(frame, 0x45, 0x00)
	totalLen := 20 + 8 + len(payload)
	frame = binary.BigEndian.AppendUint16(frame, uint16(totalLen))
	frame = append(frame, 0, 0, 0, 0)
	frame = append(frame, 64, 17, 0, 0)
	frame = binary.BigEndian.AppendUint32(frame, 0xC0A80101)
	frame = binary.BigEndian.AppendUint32(frame, 0x0A000001)

	frame = binary.BigEndian.AppendUint16(frame, 15000)
	frame = binary.BigEndian.AppendUint16(frame, 20000)
	frame = binary.BigEndian.AppendUint16(frame, uint16(8+len(payload)))
	frame = append(frame, 0, 0)
	frame = append(frame, payload...)

	return frame
}

func writeCapture(t *testing.T, frames ...[]byte) string {
	t.Helper()

	buf := globalHeader(1) // LinkTypeEthernet
	for _, f := range frames {
		buf = append(buf, packetHeader(uint32(len(f)))...)
		buf = append(buf, f...)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "capture.pcap")
	require.NoError(t, os.WriteFile(path, buf, 0o600))

	return path
}

func TestRunEmptyCaptureProducesNoRecords(t *testing.T) {
	path := writeCapture(t)

	var records int
	err := pipeline.Run(path, pipeline.Options{ChunkSize: 64}, func(pipeline.Record) error {
		records++
		return nil
	})

	require.NoError(t, err)
	require.Zero(t, records)
}

func TestRunDecodesOrderUpdateRecord(t *testing.T) {
	frame := buildEthIPv4UDPFrame(simbaOrderUpdatePayload())
	path := writeCapture(t, frame)

	// The frame is 116 bytes; the framer's scratch buffer is ChunkSize*1.2,
	// so 128 (scratch 153) still fits it while making it straddle two chunks.
	var got []pipeline.Record
	err := pipeline.Run(path, pipeline.Options{ChunkSize: 128}, func(r pipeline.Record) error {
		got = append(got, r)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NoError(t, got[0].Packet.Err)
	require.Equal(t, "10.0.0.1", got[0].Net.Dst.Addr)

	upd, ok := got[0].Packet.Messages[0].Body.(sbe.OrderUpdate)
	require.True(t, ok)
	require.Equal(t, int64(42), upd.MDEntryID)
}

func TestRunIsIdempotentAcrossRuns(t *testing.T) {
	frame := buildEthIPv4UDPFrame(simbaOrderUpdatePayload())
	path := writeCapture(t, frame)

	var fingerprints []uint64
	var packets []sbe.SimbaPacket

	for i := 0; i < 2; i++ {
		err := pipeline.Run(path, pipeline.Options{ChunkSize: 128}, func(r pipeline.Record) error {
			fingerprints = append(fingerprints, sbe.Fingerprint(&r.Packet))
			packets = append(packets, r.Packet)
			return nil
		})
		require.NoError(t, err)
	}

	require.Len(t, fingerprints, 2)
	require.Equal(t, fingerprints[0], fingerprints[1])

	// The fingerprint equality above is only meaningful if it actually
	// tracks decode output; confirm the two runs produced equal records.
	require.Len(t, packets, 2)
	require.Equal(t, packets[0], packets[1])
}
