package bytesource

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"github.com/valyala/gozstd"
)

// Codec identifies the compression format detected on a capture file.
type Codec int

const (
	// CodecNone means the file is a plain, seekable capture.
	CodecNone Codec = iota
	// CodecGzip is a gzip-compressed capture (.pcap.gz).
	CodecGzip
	// CodecLZ4 is an LZ4-framed capture (.pcap.lz4).
	CodecLZ4
	// CodecZstd is a zstd-compressed capture (.pcap.zst).
	CodecZstd
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectCompression sniffs the first bytes of a file and reports which
// compression codec, if any, it was written with.
func DetectCompression(header []byte) Codec {
	switch {
	case hasPrefix(header, zstdMagic):
		return CodecZstd
	case hasPrefix(header, lz4Magic):
		return CodecLZ4
	case hasPrefix(header, gzipMagic):
		return CodecGzip
	default:
		return CodecNone
	}
}

func hasPrefix(b, magic []byte) bool {
	if len(b) < len(magic) {
		return false
	}

	for i, m := range magic {
		if b[i] != m {
			return false
		}
	}

	return true
}

// OpenAuto opens path, transparently decompressing it if its header matches
// a known codec. Plain captures take the mmap fast path via Open; compressed
// captures fall back to sequential io.Reader chunking, since decompression
// breaks the random-access assumption the mmap window relies on.
func OpenAuto(path string, chunkSize int) (Source, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}

	peek := make([]byte, 4)
	n, _ := io.ReadFull(f, peek)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()

		return nil, fmt.Errorf("%w: seek %s: %w", ErrIO, path, err)
	}

	switch DetectCompression(peek[:n]) {
	case CodecGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()

			return nil, fmt.Errorf("%w: gzip header %s: %w", ErrIO, path, err)
		}

		return newReaderSource(f, gz, chunkSize), nil
	case CodecLZ4:
		return newReaderSource(f, lz4.NewReader(f), chunkSize), nil
	case CodecZstd:
		return newReaderSource(f, gozstd.NewReader(f), chunkSize), nil
	default:
		f.Close()

		return Open(path, chunkSize)
	}
}

// readerSource chunks a streaming, non-seekable decompressed reader. It
// satisfies Source but cannot report a real FileSize, since a compressed
// capture's decompressed length isn't known up front.
type readerSource struct {
	file      *os.File
	reader    *bufio.Reader
	chunkSize int
	done      bool
}

func newReaderSource(file *os.File, r io.Reader, chunkSize int) *readerSource {
	return &readerSource{
		file:      file,
		reader:    bufio.NewReaderSize(r, chunkSize),
		chunkSize: chunkSize,
	}
}

// FileSize is unknown ahead of time for a compressed, streamed capture;
// callers must rely on FetchNextChunk's ok return instead of size math.
func (r *readerSource) FileSize() int64 { return -1 }

// ChunkSize reports the configured read size, used by pcap.Framer to size
// its scratch buffer the same way it would for a mmap'd ChunkedSource.
func (r *readerSource) ChunkSize() int { return r.chunkSize }

func (r *readerSource) FetchNextChunk() ([]byte, bool, error) {
	if r.done {
		return nil, false, nil
	}

	buf := make([]byte, r.chunkSize)

	n, err := io.ReadFull(r.reader, buf)
	switch {
	case err == nil:
		return buf, true, nil
	case err == io.ErrUnexpectedEOF || err == io.EOF:
		r.done = true
		if n == 0 {
			return nil, false, nil
		}

		return buf[:n], true, nil
	default:
		return nil, false, fmt.Errorf("%w: decompress: %w", ErrIO, err)
	}
}

func (r *readerSource) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil

	if err != nil {
		return fmt.Errorf("%w: close: %w", ErrIO, err)
	}

	return nil
}
