package pcap

import (
	"errors"
	"fmt"

	"github.com/moex-tools/simba-decode/bytesource"
	"github.com/moex-tools/simba-decode/internal/seq"
)

// scratchSlack is the extra capacity reserved in the framer's scratch
// buffer beyond one chunk, so a frame straddling a chunk boundary can be
// reassembled contiguously (spec.md §3.1, §4.2).
const scratchSlack = 1.2

// Framer parses PCAP global/packet headers off a bytesource.Source and
// yields successive captured frames.
//
// Framer holds a scratch buffer sized chunkSize*1.2 that it exclusively
// owns; NextFrame's returned slice aliases either the source's current
// mapped chunk or this scratch buffer and is only valid until the next
// NextFrame call.
type Framer struct {
	src    bytesource.Source
	global GlobalHeader

	scratch    []byte
	cursor     int // index into scratch OR into mappedChunk, depending on source
	unproc     int // bytes available starting at cursor
	usingChunk []byte
	exhausted  bool

	seqGen seq.FrameSequencer
}

// NewFramer constructs a Framer over src and parses the global header.
func NewFramer(src bytesource.Source) (*Framer, error) {
	f := &Framer{
		src:     src,
		scratch: make([]byte, 0, int(float64(chunkSizeOf(src))*scratchSlack)),
		seqGen:  seq.New(),
	}

	if err := f.fillFrom(src); err != nil {
		return nil, err
	}

	if err := f.ensureUnprocessed(GlobalHeaderSize); err != nil {
		return nil, err
	}

	hdr, err := ParseGlobalHeader(f.current()[:GlobalHeaderSize])
	if err != nil {
		return nil, err
	}

	f.global = hdr
	f.advance(GlobalHeaderSize)

	return f, nil
}

func chunkSizeOf(src bytesource.Source) int {
	type chunkSizer interface{ ChunkSize() int }
	if cs, ok := src.(chunkSizer); ok && cs.ChunkSize() > 0 {
		return cs.ChunkSize()
	}

	return bytesource.DefaultChunkSize
}

// GlobalHeader returns the parsed global header.
func (f *Framer) GlobalHeader() GlobalHeader { return f.global }

// current returns the unprocessed bytes available right now, whichever
// backing buffer they live in.
func (f *Framer) current() []byte {
	if f.usingChunk != nil {
		return f.usingChunk[f.cursor:]
	}

	return f.scratch[f.cursor:]
}

func (f *Framer) advance(n int) {
	f.cursor += n
	f.unproc -= n
}

// fillFrom pulls the first chunk directly from src without going through
// the scratch buffer, the common case where a header is fully contained
// in one mapped chunk.
func (f *Framer) fillFrom(src bytesource.Source) error {
	chunk, ok, err := src.FetchNextChunk()
	if err != nil {
		return err
	}

	if !ok {
		f.exhausted = true
		f.usingChunk = nil
		f.unproc = 0

		return nil
	}

	f.usingChunk = chunk
	f.cursor = 0
	f.unproc = len(chunk)

	return nil
}

// ensureUnprocessed guarantees at least n unprocessed bytes are addressable
// starting at the cursor, refilling from the byte source as needed per the
// refill algorithm in spec.md §4.2.
func (f *Framer) ensureUnprocessed(n int) error {
	if f.unproc >= n {
		return nil
	}

	if n > cap(f.scratch) {
		return fmt.Errorf("%w: need %d, scratch capacity %d", ErrBufferTooSmall, n, cap(f.scratch))
	}

	// 1. Move the remaining unprocessed bytes to the start of the scratch buffer.
	carryover := f.current()
	buf := f.scratch[:len(carryover)]
	copy(buf, carryover)

	starved := false

	for f.unproc < n {
		// 2. Fetch the next mapped chunk and append it after the carryover.
		chunk, ok, err := f.src.FetchNextChunk()
		if err != nil {
			return err
		}

		if !ok {
			f.exhausted = true
			starved = true

			break
		}

		if len(buf)+len(chunk) > cap(f.scratch) {
			return fmt.Errorf("%w: carryover %d + chunk %d > scratch capacity %d",
				ErrBufferTooSmall, len(buf), len(chunk), cap(f.scratch))
		}

		buf = append(buf, chunk...)
		f.unproc += len(chunk)
	}

	// 3. Reset the cursor to the scratch buffer, committing whatever bytes
	// were actually gathered even if the source ran dry before n was met.
	f.scratch = f.scratch[:len(buf)]
	f.usingChunk = nil
	f.cursor = 0

	if starved {
		return ErrEndOfStream
	}

	return nil
}

// NextFrame parses the next packet header and returns its captured bytes.
// The returned slice is valid only until the next call to NextFrame.
//
// Returns ErrEndOfStream when the stream ends cleanly on a frame boundary
// (no bytes left to start a new packet header) — a successful, expected
// termination. Returns ErrTruncatedFrame when a packet header or its
// declared incl_len bytes run past the true end of the capture, which
// signals a corrupt/truncated capture file rather than a clean finish.
func (f *Framer) NextFrame() (PacketHeader, []byte, error) {
	hadBytes := f.unproc > 0

	if err := f.ensureUnprocessed(PacketHeaderSize); err != nil {
		if errors.Is(err, ErrEndOfStream) {
			if !hadBytes {
				return PacketHeader{}, nil, ErrEndOfStream
			}

			return PacketHeader{}, nil, fmt.Errorf("%w: packet header runs past end of capture", ErrTruncatedFrame)
		}

		return PacketHeader{}, nil, err
	}

	hdr, err := ParsePacketHeader(f.current()[:PacketHeaderSize])
	if err != nil {
		return PacketHeader{}, nil, err
	}

	f.advance(PacketHeaderSize)

	inclLen := int(hdr.InclLen)

	if err := f.ensureUnprocessed(inclLen); err != nil {
		if errors.Is(err, ErrEndOfStream) {
			return hdr, nil, fmt.Errorf("%w: need %d more bytes for frame body", ErrTruncatedFrame, inclLen)
		}

		return hdr, nil, err
	}

	frame := f.current()[:inclLen]
	f.advance(inclLen)
	f.seqGen.Next()

	return hdr, frame, nil
}

// FramesDecoded returns the number of frames successfully produced so far,
// the tag a parallel caller would use to re-sequence output at the sink
// (spec.md §5's "tag with monotonic sequence numbers" note).
func (f *Framer) FramesDecoded() uint64 { return f.seqGen.Count() }
