package bytesource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moex-tools/simba-decode/bytesource"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "capture.bin")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestChunkedSourceFetchesWholeFileAcrossChunks(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}

	path := writeTempFile(t, data)

	src, err := bytesource.Open(path, 30)
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, int64(100), src.FileSize())

	var got []byte

	for {
		chunk, ok, err := src.FetchNextChunk()
		require.NoError(t, err)

		if !ok {
			break
		}

		got = append(got, chunk...)
	}

	require.Equal(t, data, got)
}

func TestChunkedSourceEmptyFile(t *testing.T) {
	path := writeTempFile(t, nil)

	src, err := bytesource.Open(path, 16)
	require.NoError(t, err)
	defer src.Close()

	_, ok, err := src.FetchNextChunk()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenMissingFileIsFatal(t *testing.T) {
	_, err := bytesource.Open(filepath.Join(t.TempDir(), "missing.bin"), 16)
	require.ErrorIs(t, err, bytesource.ErrIO)
}

func TestDetectCompression(t *testing.T) {
	cases := []struct {
		name string
		hdr  []byte
		want bytesource.Codec
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, bytesource.CodecGzip},
		{"lz4", []byte{0x04, 0x22, 0x4d, 0x18}, bytesource.CodecLZ4},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd}, bytesource.CodecZstd},
		{"plain", []byte{0xd4, 0xc3, 0xb2, 0xa1}, bytesource.CodecNone},
		{"short", []byte{0x1f}, bytesource.CodecNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, bytesource.DetectCompression(tc.hdr))
		})
	}
}
