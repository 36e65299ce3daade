package cdcl

// luby computes the Luby restart sequence value for the given 0-based
// index (x = 0, 1, 2, ... yields 1, 1, y, 1, 1, y, y*y, ...), used to schedule restarts with a bounded-regret schedule (§4.1).
func luby(y float64, x int64) float64 {
	size, seq := int64(1), int64(0)
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x = x % size
	}
	result := 1.0
	for i := int64(0); i < seq; i++ {
		result *= y
	}
	return result
}

// nextRestartBound returns the conflict count at which the next restart is
// due, advancing the internal Luby index.
func (s *Solver) nextRestartBound() int64 {
	bound := int64(100 * luby(2.0, s.lubyIndex))
	s.lubyIndex++
	if bound < 1 {
		bound = 1
	}
	return bound
}
