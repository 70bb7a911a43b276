package relation

import "github.com/kvgraph/tripledb"

// NameProject is the stable plan-printing name for Project.
const NameProject = "Project"

// Project narrows its child to a chosen subset of bindings, in the given
// order, computing the source column index for each up front so Next just
// does index lookups.
type Project struct {
	Child   Operator
	Columns []string
}

// NewProject projects child down to columns.
func NewProject(child Operator, columns []string) *Project {
	return &Project{Child: child, Columns: columns}
}

func (p *Project) Name() string { return NameProject }

func (p *Project) Bindings() map[string]struct{} {
	out := make(map[string]struct{}, len(p.Columns))
	for _, c := range p.Columns {
		out[c] = struct{}{}
	}
	return out
}

func (p *Project) BindingMap() (*BindingMap, error) {
	bm := NewBindingMap()
	for _, c := range p.Columns {
		if err := bm.Add(c, 1); err != nil {
			return nil, err
		}
	}
	return bm, nil
}

func (p *Project) Identity() *Identity { return nil }

func (p *Project) Iter() (Stream, error) {
	childBM, err := p.Child.BindingMap()
	if err != nil {
		return nil, err
	}

	indices := make([]int, len(p.Columns))
	for i, name := range p.Columns {
		r, ok := childBM.Get(name)
		if !ok {
			return nil, &UnknownBindingError{Name: name}
		}
		indices[i] = r.Start
	}

	child, err := p.Child.Iter()
	if err != nil {
		return nil, err
	}
	return &projectStream{child: child, indices: indices}, nil
}

type projectStream struct {
	child   Stream
	indices []int
	current TupleSet
}

func (s *projectStream) Next() bool {
	if !s.child.Next() {
		return false
	}
	src := s.child.Tuple()
	out := make([]tripledb.DataValue, len(s.indices))
	for i, idx := range s.indices {
		out[i] = src.At(idx)
	}
	s.current = TupleSet{values: out}
	return true
}

func (s *projectStream) Tuple() TupleSet { return s.current }
func (s *projectStream) Err() error      { return s.child.Err() }
func (s *projectStream) Close() error    { return s.child.Close() }
