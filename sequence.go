package uce

import "sync/atomic"

// IDGenerator produces process-wide unique ids for tasks and coordinators.
// Implementations must be safe for concurrent use.
type IDGenerator interface {
	Next() int64
}

// Sequence is a monotonically increasing [IDGenerator].
// The zero value is ready to use and starts at 1.
type Sequence struct {
	n atomic.Int64
}

// NewSequence creates a sequence starting at start+1.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.n.Store(start)
	return s
}

// Next returns the next id.
func (s *Sequence) Next() int64 { return s.n.Add(1) }
