package relation

// NameFilter is the stable plan-printing name for Filter.
const NameFilter = "Filter"

// Predicate decides whether a tuple, given the binding map it was produced
// under, passes a Filter. Mirrors a Filter/ComparisonFilter shape,
// generalized to TupleSet.
type Predicate func(t TupleSet, bm *BindingMap) bool

// Filter passes through only the tuples of its child that satisfy Pred.
// It changes no bindings: Bindings and BindingMap delegate to Child.
// Identity is nil, as for every combinator.
type Filter struct {
	Child Operator
	Pred  Predicate
}

// NewFilter wraps child with pred.
func NewFilter(child Operator, pred Predicate) *Filter {
	return &Filter{Child: child, Pred: pred}
}

func (f *Filter) Name() string { return NameFilter }

func (f *Filter) Bindings() map[string]struct{} { return f.Child.Bindings() }

func (f *Filter) BindingMap() (*BindingMap, error) { return f.Child.BindingMap() }

func (f *Filter) Identity() *Identity { return nil }

func (f *Filter) Iter() (Stream, error) {
	bm, err := f.Child.BindingMap()
	if err != nil {
		return nil, err
	}
	child, err := f.Child.Iter()
	if err != nil {
		return nil, err
	}
	return &filterStream{child: child, pred: f.Pred, bm: bm}, nil
}

type filterStream struct {
	child Stream
	pred  Predicate
	bm    *BindingMap
}

func (s *filterStream) Next() bool {
	for s.child.Next() {
		if s.pred(s.child.Tuple(), s.bm) {
			return true
		}
	}
	return false
}

func (s *filterStream) Tuple() TupleSet { return s.child.Tuple() }
func (s *filterStream) Err() error      { return s.child.Err() }
func (s *filterStream) Close() error    { return s.child.Close() }
