// Package seq provides a monotonic frame sequencer.
//
// The decode pipeline is pull-based and single-threaded by default (see
// spec.md §5), but a caller that parallelizes per-packet parsing still needs
// a way to tag frames so they can be re-ordered back to input order at the
// sink. FrameSequencer exists for exactly that: it hands out strictly
// increasing tags, nothing more.
package seq

import "sync/atomic"

// FrameSequencer hands out monotonically increasing frame tags.
type FrameSequencer interface {
	// Next returns the next tag, starting at 0 for the first call.
	Next() uint64
	// Count returns the number of tags handed out so far.
	Count() uint64
}

// New returns a FrameSequencer starting at 0.
func New() FrameSequencer {
	return &sequencer{}
}

type sequencer struct {
	state atomic.Uint64
}

func (s *sequencer) Next() uint64 {
	return s.state.Add(1) - 1
}

func (s *sequencer) Count() uint64 {
	return s.state.Load()
}
