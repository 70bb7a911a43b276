package relation

// NameCartesian is the stable plan-printing name for CartesianJoin.
const NameCartesian = "Cartesian"

// CartesianJoin emits the cartesian product of Left and Right in
// left-major, right-minor order: for each left tuple the full right
// sequence is emitted before advancing left. The right operand is reopened
// via Iter() once per left tuple rather than reset, so statefully-iterated
// operators (dedup, aggregation) can sit on the right without needing a
// reversible interface.
type CartesianJoin struct {
	Left  Operator
	Right Operator
}

// NewCartesianJoin builds a CartesianJoin over left and right.
func NewCartesianJoin(left, right Operator) *CartesianJoin {
	return &CartesianJoin{Left: left, Right: right}
}

func (c *CartesianJoin) Name() string { return NameCartesian }

func (c *CartesianJoin) Bindings() map[string]struct{} {
	out := make(map[string]struct{})
	for name := range c.Left.Bindings() {
		out[name] = struct{}{}
	}
	for name := range c.Right.Bindings() {
		out[name] = struct{}{}
	}
	return out
}

func (c *CartesianJoin) BindingMap() (*BindingMap, error) {
	left, err := c.Left.BindingMap()
	if err != nil {
		return nil, err
	}
	left = left.Clone()
	right, err := c.Right.BindingMap()
	if err != nil {
		return nil, err
	}
	if err := ShiftMergeBindingMap(left, right); err != nil {
		return nil, err
	}
	return left, nil
}

func (c *CartesianJoin) Identity() *Identity { return nil }

func (c *CartesianJoin) Iter() (Stream, error) {
	left, err := c.Left.Iter()
	if err != nil {
		return nil, err
	}
	return &cartesianStream{left: left, right: c.Right}, nil
}

// cartesianStream is the restart-per-outer-tuple nested loop: it pulls one
// left tuple, opens a fresh right stream, drains it, then on exhaustion
// closes that right stream, advances left, and reopens right — continuing
// until left is exhausted.
type cartesianStream struct {
	left    Stream
	right   Operator
	rightIt Stream
	current TupleSet
	started bool
	done    bool
	err     error
}

func (s *cartesianStream) Next() bool {
	if s.done {
		return false
	}

	if !s.started {
		s.started = true
		if !s.left.Next() {
			s.err = s.left.Err()
			s.done = true
			return false
		}
		rightIt, err := s.right.Iter()
		if err != nil {
			s.err = err
			s.done = true
			return false
		}
		s.rightIt = rightIt
	}

	for {
		if s.rightIt.Next() {
			s.current = s.left.Tuple().Merge(s.rightIt.Tuple())
			return true
		}
		if err := s.rightIt.Err(); err != nil {
			s.err = err
			s.done = true
			return false
		}
		s.rightIt.Close()

		if !s.left.Next() {
			s.err = s.left.Err()
			s.done = true
			return false
		}
		rightIt, err := s.right.Iter()
		if err != nil {
			s.err = err
			s.done = true
			return false
		}
		s.rightIt = rightIt
	}
}

func (s *cartesianStream) Tuple() TupleSet { return s.current }

func (s *cartesianStream) Err() error { return s.err }

func (s *cartesianStream) Close() error {
	var firstErr error
	if s.rightIt != nil {
		if err := s.rightIt.Close(); err != nil {
			firstErr = err
		}
	}
	if err := s.left.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
