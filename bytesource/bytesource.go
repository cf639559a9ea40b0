// Package bytesource exposes a file's contents as a sequence of chunks
// backed by a rolling memory mapping, per spec.md §3.1/§4.1.
//
// A ChunkedSource owns at most one mapped region at a time; the previous
// mapping is unmapped before the next chunk is mapped, matching the
// scoped-resource model the original IOMapper (see original_source/) used
// RAII for.
package bytesource

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultChunkSize is the default mapped window size, 128 MiB per spec.md §3.1.
const DefaultChunkSize = 128 * 1024 * 1024

var (
	// ErrIO wraps any open/stat/mmap/munmap failure. Fatal per spec.md §7.
	ErrIO = errors.New("bytesource: io error")
)

// Source is the chunked byte stream contract the pcap framer pulls from.
// ChunkedSource (mmap, random access) and Source implementations returned
// by OpenCompressed (sequential, streaming) both satisfy it.
type Source interface {
	FileSize() int64
	FetchNextChunk() ([]byte, bool, error)
	Close() error
}

// ChunkedSource maps a file in successive fixed-size windows.
//
// It is not safe for concurrent use: only one goroutine may call
// FetchNextChunk/Close at a time.
type ChunkedSource struct {
	file          *os.File
	fileSize      int64
	chunkSize     int
	currentOffset int64

	mapped []byte // current mapping, or nil
}

// Open constructs a ChunkedSource over path, mapping chunks of chunkSize
// bytes at a time. If chunkSize is <= 0, DefaultChunkSize is used.
func Open(path string, chunkSize int) (*ChunkedSource, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}

	return &ChunkedSource{
		file:      f,
		fileSize:  info.Size(),
		chunkSize: chunkSize,
	}, nil
}

// FileSize returns the total file size in bytes, queried at construction.
func (c *ChunkedSource) FileSize() int64 { return c.fileSize }

// ChunkSize returns the configured chunk size.
func (c *ChunkedSource) ChunkSize() int { return c.chunkSize }

// FetchNextChunk maps the next window of the file and returns it. ok is
// false once the file is exhausted; err is non-nil only on a fatal mmap/IO
// failure.
//
// The slice returned by FetchNextChunk is only valid until the next call to
// FetchNextChunk or Close: the previous mapping is released before the next
// one is established, mirroring the single-mapping-at-a-time contract of
// the original memory mapper.
func (c *ChunkedSource) FetchNextChunk() (chunk []byte, ok bool, err error) {
	if c.currentOffset >= c.fileSize {
		c.releaseMapping()

		return nil, false, nil
	}

	remaining := c.fileSize - c.currentOffset
	size := int64(c.chunkSize)
	if remaining < size {
		size = remaining
	}

	c.releaseMapping()

	// mmap offsets must be page-aligned: map from the page boundary at or
	// below currentOffset and hand back the window starting at currentOffset.
	pageSize := int64(unix.Getpagesize())
	alignedOffset := c.currentOffset - c.currentOffset%pageSize
	delta := int(c.currentOffset - alignedOffset)

	mapped, err := unix.Mmap(int(c.file.Fd()), alignedOffset, delta+int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, false, fmt.Errorf("%w: mmap at offset %d size %d: %w", ErrIO, c.currentOffset, size, err)
	}

	c.mapped = mapped
	c.currentOffset += size

	return mapped[delta:], true, nil
}

func (c *ChunkedSource) releaseMapping() {
	if c.mapped == nil {
		return
	}

	_ = unix.Munmap(c.mapped)
	c.mapped = nil
}

// Close releases the current mapping and the underlying file handle.
// Safe to call multiple times.
func (c *ChunkedSource) Close() error {
	c.releaseMapping()

	if c.file == nil {
		return nil
	}

	err := c.file.Close()
	c.file = nil

	if err != nil {
		return fmt.Errorf("%w: close: %w", ErrIO, err)
	}

	return nil
}
