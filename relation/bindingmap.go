package relation

// ColumnRange is the half-open [Start, End) column span a binding occupies
// within a TupleSet.
type ColumnRange struct {
	Start, End int
}

// Width returns End-Start.
func (r ColumnRange) Width() int { return r.End - r.Start }

// BindingMap maps a binding name to the column range it occupies within a
// TupleSet. Binding names are unique within a single BindingMap.
type BindingMap struct {
	ranges map[string]ColumnRange
	order  []string
	width  int
}

// NewBindingMap returns an empty binding map.
func NewBindingMap() *BindingMap {
	return &BindingMap{ranges: make(map[string]ColumnRange)}
}

// Get returns the column range bound to name, if any.
func (b *BindingMap) Get(name string) (ColumnRange, bool) {
	r, ok := b.ranges[name]
	return r, ok
}

// Width returns the total number of columns spanned by this map.
func (b *BindingMap) Width() int { return b.width }

// Names returns the bound names in the order they were added.
func (b *BindingMap) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Add binds name to the next `width` columns. It fails with
// BindingCollisionError if name is already bound.
func (b *BindingMap) Add(name string, width int) error {
	if _, exists := b.ranges[name]; exists {
		return &BindingCollisionError{Name: name}
	}
	b.ranges[name] = ColumnRange{Start: b.width, End: b.width + width}
	b.order = append(b.order, name)
	b.width += width
	return nil
}

// Clone returns an independent copy of b.
func (b *BindingMap) Clone() *BindingMap {
	out := NewBindingMap()
	for _, name := range b.order {
		out.ranges[name] = b.ranges[name]
		out.order = append(out.order, name)
	}
	out.width = b.width
	return out
}

// ShiftMergeBindingMap appends every binding of right into left, with each
// column range shifted by left's current width at the time of the call.
// Fails with BindingCollisionError, leaving left unmodified, if any name is
// bound in both maps.
func ShiftMergeBindingMap(left *BindingMap, right *BindingMap) error {
	for _, name := range right.order {
		if _, exists := left.ranges[name]; exists {
			return &BindingCollisionError{Name: name}
		}
	}
	shift := left.width
	for _, name := range right.order {
		r := right.ranges[name]
		left.ranges[name] = ColumnRange{Start: r.Start + shift, End: r.End + shift}
		left.order = append(left.order, name)
	}
	left.width += right.width
	return nil
}

// NextTupleSetIndex returns the next unused column index of b, for
// operators that append synthesized columns onto an existing binding map.
func NextTupleSetIndex(b *BindingMap) int {
	return b.width
}
