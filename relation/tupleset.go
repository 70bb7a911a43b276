// Package relation implements the lazy relational-algebra core: TupleSet
// and BindingMap (the row model), the RelationalAlgebra operator contract,
// and the operators built on it (CartesianJoin, Filter, Project, base scans).
package relation

import "github.com/kvgraph/tripledb"

// TupleSet is an ordered row of bound values produced by an operator,
// grouped by the binding that produced each column.
type TupleSet struct {
	values []tripledb.DataValue
}

// NewTupleSet builds a TupleSet from values in column order.
func NewTupleSet(values ...tripledb.DataValue) TupleSet {
	v := make([]tripledb.DataValue, len(values))
	copy(v, values)
	return TupleSet{values: v}
}

// Width returns the number of columns.
func (t TupleSet) Width() int { return len(t.values) }

// At returns the value at column i.
func (t TupleSet) At(i int) tripledb.DataValue { return t.values[i] }

// Values returns the underlying columns. Callers must not mutate the
// returned slice; use Clone first if a private copy is needed.
func (t TupleSet) Values() []tripledb.DataValue { return t.values }

// Clone returns a TupleSet that shares no backing array with t.
func (t TupleSet) Clone() TupleSet {
	out := make([]tripledb.DataValue, len(t.values))
	copy(out, t.values)
	return TupleSet{values: out}
}

// Merge returns a new TupleSet with other's columns appended after t's own,
// leaving both t and other unmodified.
func (t TupleSet) Merge(other TupleSet) TupleSet {
	out := make([]tripledb.DataValue, 0, len(t.values)+len(other.values))
	out = append(out, t.values...)
	out = append(out, other.values...)
	return TupleSet{values: out}
}
