package cursor

// Sequencer hands out monotonically increasing request numbers so that a
// late response to a superseded request can be recognised and dropped.
// Not safe for concurrent use; drive it from the UI update loop.
type Sequencer struct {
	last uint64
}

// Next issues a new sequence number; every earlier one becomes stale
func (s *Sequencer) Next() uint64 {
	s.last++
	return s.last
}

// Current reports whether seq is the most recently issued number
func (s *Sequencer) Current(seq uint64) bool {
	return seq != 0 && seq == s.last
}

// Last returns the most recently issued number (0 if none)
func (s *Sequencer) Last() uint64 {
	return s.last
}
