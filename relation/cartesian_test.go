package relation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvgraph/tripledb"
)

// sliceOperator is a minimal in-memory Operator backing tests, grounded on
// a sliceIterator helper.
type sliceOperator struct {
	col     string
	rows    []tripledb.DataValue
	errAt   int // index (0-based, per restart) at which Next should fail; -1 means never
	opened  int
}

func newSliceOperator(col string, rows ...tripledb.DataValue) *sliceOperator {
	return &sliceOperator{col: col, rows: rows, errAt: -1}
}

func (s *sliceOperator) Name() string                   { return "Slice(" + s.col + ")" }
func (s *sliceOperator) Bindings() map[string]struct{}  { return map[string]struct{}{s.col: {}} }
func (s *sliceOperator) Identity() *Identity            { return nil }
func (s *sliceOperator) BindingMap() (*BindingMap, error) {
	bm := NewBindingMap()
	if err := bm.Add(s.col, 1); err != nil {
		return nil, err
	}
	return bm, nil
}

func (s *sliceOperator) Iter() (Stream, error) {
	s.opened++
	return &sliceStream{op: s, pos: -1}, nil
}

type sliceStream struct {
	op  *sliceOperator
	pos int
	err error
}

func (s *sliceStream) Next() bool {
	if s.err != nil {
		return false
	}
	s.pos++
	if s.op.errAt >= 0 && s.pos == s.op.errAt {
		s.err = errors.New("injected error")
		return false
	}
	return s.pos < len(s.op.rows)
}

func (s *sliceStream) Tuple() TupleSet { return NewTupleSet(s.op.rows[s.pos]) }
func (s *sliceStream) Err() error      { return s.err }
func (s *sliceStream) Close() error    { return nil }

func drain(t *testing.T, stream Stream) ([]TupleSet, error) {
	t.Helper()
	var out []TupleSet
	for stream.Next() {
		out = append(out, stream.Tuple())
	}
	return out, stream.Err()
}

func TestCartesianJoinProducesFullProduct(t *testing.T) {
	left := newSliceOperator("x", tripledb.NewInt(1), tripledb.NewInt(2))
	right := newSliceOperator("y", tripledb.NewInt(10), tripledb.NewInt(11), tripledb.NewInt(12))

	cj := NewCartesianJoin(left, right)
	stream, err := cj.Iter()
	require.NoError(t, err)
	defer stream.Close()

	rows, err := drain(t, stream)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	want := [][2]int64{{1, 10}, {1, 11}, {1, 12}, {2, 10}, {2, 11}, {2, 12}}
	for i, w := range want {
		x, _ := rows[i].At(0).Int()
		y, _ := rows[i].At(1).Int()
		assert.Equal(t, w[0], x, "row %d x", i)
		assert.Equal(t, w[1], y, "row %d y", i)
	}
}

func TestCartesianJoinEmptyRightYieldsNothing(t *testing.T) {
	left := newSliceOperator("x", tripledb.NewInt(1), tripledb.NewInt(2))
	right := newSliceOperator("y")

	cj := NewCartesianJoin(left, right)
	stream, err := cj.Iter()
	require.NoError(t, err)
	defer stream.Close()

	rows, err := drain(t, stream)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCartesianJoinEmptyLeftDoesNotOpenRight(t *testing.T) {
	left := newSliceOperator("x")
	right := newSliceOperator("y", tripledb.NewInt(10))

	cj := NewCartesianJoin(left, right)
	stream, err := cj.Iter()
	require.NoError(t, err)
	defer stream.Close()

	rows, err := drain(t, stream)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 0, right.opened)
}

func TestCartesianJoinErrorOnRightPropagates(t *testing.T) {
	left := newSliceOperator("x", tripledb.NewInt(1), tripledb.NewInt(2))
	right := &sliceOperator{col: "y", rows: []tripledb.DataValue{tripledb.NewInt(10), tripledb.NewInt(11)}, errAt: 1}

	cj := NewCartesianJoin(left, right)
	stream, err := cj.Iter()
	require.NoError(t, err)
	defer stream.Close()

	require.True(t, stream.Next())
	x, _ := stream.Tuple().At(0).Int()
	y, _ := stream.Tuple().At(1).Int()
	assert.Equal(t, int64(1), x)
	assert.Equal(t, int64(10), y)

	assert.False(t, stream.Next())
	require.Error(t, stream.Err())

	// Subsequent calls keep returning false (None thereafter).
	assert.False(t, stream.Next())
}

func TestCartesianJoinRestartYieldsIdenticalSequence(t *testing.T) {
	left := newSliceOperator("x", tripledb.NewInt(1), tripledb.NewInt(2))
	right := newSliceOperator("y", tripledb.NewInt(10), tripledb.NewInt(11))

	cj := NewCartesianJoin(left, right)

	first, err := cj.Iter()
	require.NoError(t, err)
	rows1, err := drain(t, first)
	require.NoError(t, err)
	first.Close()

	second, err := cj.Iter()
	require.NoError(t, err)
	rows2, err := drain(t, second)
	require.NoError(t, err)
	second.Close()

	require.Equal(t, len(rows1), len(rows2))
	for i := range rows1 {
		assert.Equal(t, rows1[i].Values(), rows2[i].Values())
	}
}

func TestCartesianJoinBindingMap(t *testing.T) {
	left := newSliceOperator("x", tripledb.NewInt(1))
	right := newSliceOperator("y", tripledb.NewInt(1))

	cj := NewCartesianJoin(left, right)
	bm, err := cj.BindingMap()
	require.NoError(t, err)

	xr, ok := bm.Get("x")
	require.True(t, ok)
	assert.Equal(t, ColumnRange{0, 1}, xr)

	yr, ok := bm.Get("y")
	require.True(t, ok)
	assert.Equal(t, ColumnRange{1, 2}, yr)
}

func TestCartesianJoinBindingCollision(t *testing.T) {
	left := newSliceOperator("x", tripledb.NewInt(1))
	right := newSliceOperator("x", tripledb.NewInt(1))

	cj := NewCartesianJoin(left, right)
	_, err := cj.BindingMap()
	require.Error(t, err)
	var collide *BindingCollisionError
	assert.ErrorAs(t, err, &collide)
}
