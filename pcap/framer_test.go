package pcap_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moex-tools/simba-decode/bytesource"
	"github.com/moex-tools/simba-decode/internal/wire"
	"github.com/moex-tools/simba-decode/pcap"
)

func globalHeader(network uint32) []byte {
	buf := wire.AppendUint32LE(nil, pcap.MagicLittleEndian)
	buf = wire.AppendUint16LE(buf, 2)
	buf = wire.AppendUint16LE(buf, 4)
	buf = wire.AppendUint32LE(buf, 0)
	buf = wire.AppendUint32LE(buf, 0)
	buf = wire.AppendUint32LE(buf, 262144)
	buf = wire.AppendUint32LE(buf, network)

	return buf
}

func packetHeader(inclLen uint32) []byte {
	buf := wire.AppendUint32LE(nil, 1)
	buf = wire.AppendUint32LE(buf, 2)
	buf = wire.AppendUint32LE(buf, inclLen)
	buf = wire.AppendUint32LE(buf, inclLen)

	return buf
}

func writeFile(t *testing.T, data []byte) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "capture.pcap")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func openFramer(t *testing.T, path string, chunkSize int) *pcap.Framer {
	t.Helper()

	src, err := bytesource.Open(path, chunkSize)
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })

	f, err := pcap.NewFramer(src)
	require.NoError(t, err)

	return f
}

// TestFramerConsumptionLaw covers testable property 1: total bytes
// consumed equals GlobalHeaderSize + sum(PacketHeaderSize+incl_len) across
// every frame, and that sum equals the file size exactly when the capture
// ends cleanly on a frame boundary.
func TestFramerConsumptionLaw(t *testing.T) {
	payloads := [][]byte{
		{1, 2, 3, 4, 5},
		make([]byte, 40),
		{9},
	}

	buf := globalHeader(pcap.LinkTypeEthernet)
	for _, p := range payloads {
		buf = append(buf, packetHeader(uint32(len(p)))...)
		buf = append(buf, p...)
	}

	path := writeFile(t, buf)

	// A small chunk size forces the refill algorithm to straddle chunk
	// boundaries mid-frame, exercising the carryover path as well as the
	// single-chunk case. It must still leave room (chunkSize*1.2 scratch
	// capacity) for the largest single frame used below.
	for _, chunkSize := range []int{48, 1024} {
		f := openFramer(t, path, chunkSize)

		consumed := pcap.GlobalHeaderSize
		count := 0

		for {
			hdr, frame, err := f.NextFrame()
			if errors.Is(err, pcap.ErrEndOfStream) {
				break
			}

			require.NoError(t, err)

			consumed += pcap.PacketHeaderSize + len(frame)
			require.Equal(t, hdr.InclLen, uint32(len(frame)))
			count++
		}

		require.Equal(t, len(payloads), count)
		require.Equal(t, len(buf), consumed)
		require.Equal(t, uint64(len(payloads)), f.FramesDecoded())
	}
}

// TestFramerHeaderSizesProperty3 pins the packed wire layout sizes this
// package's fixed offsets depend on.
func TestFramerHeaderSizesProperty3(t *testing.T) {
	require.Equal(t, 24, pcap.GlobalHeaderSize)
	require.Equal(t, 16, pcap.PacketHeaderSize)
}

// TestFramerTruncatedFrameVsCleanEndOfStream distinguishes a capture that
// ends exactly on a frame boundary (ErrEndOfStream, a successful finish)
// from one that stops mid-header or mid-payload (ErrTruncatedFrame, a
// corrupt capture).
func TestFramerTruncatedFrameVsCleanEndOfStream(t *testing.T) {
	payload := []byte{1, 2, 3, 4}

	clean := globalHeader(pcap.LinkTypeEthernet)
	clean = append(clean, packetHeader(uint32(len(payload)))...)
	clean = append(clean, payload...)

	f := openFramer(t, writeFile(t, clean), 1024)

	_, _, err := f.NextFrame()
	require.NoError(t, err)

	_, _, err = f.NextFrame()
	require.ErrorIs(t, err, pcap.ErrEndOfStream)

	truncatedHeader := globalHeader(pcap.LinkTypeEthernet)
	truncatedHeader = append(truncatedHeader, packetHeader(uint32(len(payload)))...)
	truncatedHeader = append(truncatedHeader, make([]byte, pcap.PacketHeaderSize-1)...)

	f = openFramer(t, writeFile(t, truncatedHeader), 1024)

	_, _, err = f.NextFrame()
	require.NoError(t, err)

	_, _, err = f.NextFrame()
	require.ErrorIs(t, err, pcap.ErrTruncatedFrame)

	truncatedPayload := globalHeader(pcap.LinkTypeEthernet)
	truncatedPayload = append(truncatedPayload, packetHeader(uint32(len(payload)))...)
	truncatedPayload = append(truncatedPayload, payload[:len(payload)-1]...)

	f = openFramer(t, writeFile(t, truncatedPayload), 1024)

	_, _, err = f.NextFrame()
	require.ErrorIs(t, err, pcap.ErrTruncatedFrame)
}

// TestFramerBufferTooSmall exercises ErrBufferTooSmall: a frame declaring
// incl_len larger than the framer's scratch buffer capacity is fatal
// rather than silently truncated.
func TestFramerBufferTooSmall(t *testing.T) {
	const chunkSize = 64

	// scratch capacity is chunkSize*1.2; a payload well past that can never
	// fit regardless of how many chunks are pulled in to satisfy it.
	payload := make([]byte, chunkSize*3)

	buf := globalHeader(pcap.LinkTypeEthernet)
	buf = append(buf, packetHeader(uint32(len(payload)))...)
	buf = append(buf, payload...)

	f := openFramer(t, writeFile(t, buf), chunkSize)

	_, _, err := f.NextFrame()
	require.ErrorIs(t, err, pcap.ErrBufferTooSmall)
}
