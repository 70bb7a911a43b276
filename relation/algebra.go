package relation

// Stream is a restartable-per-call lazy sequence of TupleSets, the uniform
// shape of an operator's iter(). It follows a Next/Tuple/Close
// iterator shape, with Err added so a terminal mid-stream failure can be
// distinguished from ordinary exhaustion: once Next returns false, Err
// reports the failure if there was one.
type Stream interface {
	// Next advances to the next tuple. It returns false once the stream is
	// exhausted or has hit a terminal error; callers must check Err to tell
	// the two apart. Once Next has returned false, it returns false on every
	// subsequent call.
	Next() bool

	// Tuple returns the tuple most recently made current by Next. Its
	// result is undefined before the first call to Next or after Next
	// returns false.
	Tuple() TupleSet

	// Err returns the terminal error that caused Next to return false, or
	// nil if the stream was simply exhausted.
	Err() error

	// Close releases resources (KV-store iterators, snapshot handles) held
	// by the stream and any child streams it opened.
	Close() error
}

// Identity names the underlying stored relation a base operator reads
// from. Combinators (CartesianJoin, Filter, Project, ...) have no identity
// of their own and return nil.
type Identity struct {
	Name    string
	Columns []string
}

// Operator is the uniform capability set every relational-algebra plan
// node implements: name, bindings, binding layout, a restartable stream,
// and an optional base-relation identity.
type Operator interface {
	// Name is a stable identifier used in plan printing.
	Name() string

	// Bindings is the set of binding names this subtree produces; for
	// combinators it is the union of the children's.
	Bindings() map[string]struct{}

	// BindingMap is the concrete column layout this subtree produces.
	BindingMap() (*BindingMap, error)

	// Iter returns a fresh, independent stream starting from the
	// beginning. It may be called more than once on the same Operator.
	Iter() (Stream, error)

	// Identity is present for base relations and nil otherwise.
	Identity() *Identity
}
