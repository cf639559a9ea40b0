package sbe

import (
	"fmt"
	"math"

	"github.com/moex-tools/simba-decode/internal/wire"
)

// reader is a bounds-checked cursor over one packet's payload. Every read
// advances offset and returns ErrTruncatedPacket, wrapped with the offset
// and the size that was wanted, the moment a field would run past the end
// of buf. Once err is set every further read is a no-op returning the zero
// value, so a message decoder can read fields one after another and check
// err only once at the end.
type reader struct {
	buf    []byte
	offset int
	err    error
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) fail(need int) {
	if r.err != nil {
		return
	}

	r.err = fmt.Errorf("%w: offset %d needs %d more bytes, %d available",
		ErrTruncatedPacket, r.offset, need, len(r.buf)-r.offset)
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}

	if r.offset+n > len(r.buf) {
		r.fail(n)

		return nil
	}

	b := r.buf[r.offset : r.offset+n]
	r.offset += n

	return b
}

func (r *reader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}

	return b[0]
}

func (r *reader) i8() int8 { return int8(r.u8()) }

func (r *reader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}

	return wire.Uint16LE(b)
}

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}

	return wire.Uint32LE(b)
}

func (r *reader) i32() int32 {
	b := r.take(4)
	if b == nil {
		return 0
	}

	return wire.Int32LE(b)
}

func (r *reader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}

	return wire.Uint64LE(b)
}

func (r *reader) i64() int64 {
	b := r.take(8)
	if b == nil {
		return 0
	}

	return wire.Int64LE(b)
}

func (r *reader) float64() float64 {
	return math.Float64frombits(r.u64())
}

func (r *reader) decimal5() Decimal5 {
	return Decimal5{Mantissa: r.i64()}
}

func (r *reader) decimal5Null() Decimal5NULL {
	return Decimal5NULL{Mantissa: r.i64()}
}

func (r *reader) decimal2Null() Decimal2NULL {
	return Decimal2NULL{Mantissa: r.i64()}
}

func (r *reader) doubleNull() DoubleNULL {
	return DoubleNULL{Value: r.float64()}
}

// fixedString reads n bytes and trims at the first NUL, per the fixed
// char[N] convention (spec.md §4.4.6).
func (r *reader) fixedString(n int) string {
	b := r.take(n)
	if b == nil {
		return ""
	}

	if i := indexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return string(b)
}

// lengthPrefixedString reads a u16 length followed by that many bytes,
// the Utf8String/VarString shape (spec.md §4.4.6). Must never be read via
// a bulk struct copy: the wire layout has no pointer field, unlike the
// in-memory representation some implementations mistakenly share with it.
func (r *reader) lengthPrefixedString() string {
	n := int(r.u16())

	b := r.take(n)
	if b == nil {
		return ""
	}

	return string(b)
}

func (r *reader) groupSize() GroupSize {
	return GroupSize{
		BlockLength: r.u16(),
		NumInGroup:  r.u8(),
	}
}

func (r *reader) groupSize2() GroupSize2 {
	return GroupSize2{
		BlockLength: r.u16(),
		NumInGroup:  r.u16(),
	}
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}

	return -1
}
