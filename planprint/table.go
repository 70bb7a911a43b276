// Package planprint renders TupleSets and RelationalAlgebra plan trees for
// debugging, following the table_formatter.go /
// relation_renderer.go conventions: tablewriter markdown tables for data,
// fatih/color for plan-tree annotations.
package planprint

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kvgraph/relation"
	"github.com/kvgraph/tripledb"
)

// TableFormatter renders a relation.Operator's output as a markdown table.
type TableFormatter struct {
	MaxRows int // 0 means unbounded
}

// NewTableFormatter returns a formatter with no row cap.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// FormatOperator drains op's stream and renders it as a markdown table
// headed by its binding names, in the BindingMap's column order.
func (tf *TableFormatter) FormatOperator(op relation.Operator) (string, error) {
	bm, err := op.BindingMap()
	if err != nil {
		return "", err
	}
	names := bm.Names()

	stream, err := op.Iter()
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var rows []relation.TupleSet
	for stream.Next() {
		rows = append(rows, stream.Tuple().Clone())
		if tf.MaxRows > 0 && len(rows) >= tf.MaxRows {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return "", err
	}

	return tf.formatTable(names, rows), nil
}

func (tf *TableFormatter) formatTable(columns []string, rows []relation.TupleSet) string {
	if len(rows) == 0 {
		return fmt.Sprintf("_Columns: %v_\n\n_No rows_", columns)
	}

	out := &strings.Builder{}

	alignment := make([]tw.Align, len(columns))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(out,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(columns)

	for _, row := range rows {
		cells := make([]string, row.Width())
		for i := 0; i < row.Width(); i++ {
			cells[i] = formatValue(row.At(i))
		}
		table.Append(cells)
	}
	table.Render()

	fmt.Fprintf(out, "\n_%d rows_\n", len(rows))
	return out.String()
}

func formatValue(v tripledb.DataValue) string {
	switch v.Kind() {
	case tripledb.KindNull:
		return "nil"
	case tripledb.KindBool:
		b, _ := v.Bool()
		return fmt.Sprintf("%t", b)
	case tripledb.KindInt:
		i, _ := v.Int()
		return fmt.Sprintf("%d", i)
	case tripledb.KindFloat:
		f, _ := v.Float()
		return fmt.Sprintf("%.2f", f)
	case tripledb.KindString:
		s, _ := v.String()
		return s
	case tripledb.KindBytes:
		b, _ := v.Bytes()
		return fmt.Sprintf("% x", b)
	case tripledb.KindRef:
		r, _ := v.Ref()
		return fmt.Sprintf("#%d", r)
	default:
		return v.GoString()
	}
}

// PlanString renders a colorized summary of op's plan tree, one line per
// operator: operator name, its bindings, and (for CartesianJoin) its
// children on indented lines below.
// Mirrors relation_renderer.go-style tree annotations.
func PlanString(op relation.Operator) string {
	return planString(op, 0)
}

func planString(op relation.Operator, depth int) string {
	indent := strings.Repeat("  ", depth)
	names := make([]string, 0, len(op.Bindings()))
	for name := range op.Bindings() {
		names = append(names, name)
	}

	line := fmt.Sprintf("%s%s%s%s",
		indent,
		color.BlueString(op.Name()+"(["),
		color.CyanString(strings.Join(names, " ")),
		color.BlueString("])"))

	if id := op.Identity(); id != nil {
		line += color.YellowString(fmt.Sprintf(" <- %s", id.Name))
	}

	if cj, ok := op.(*relation.CartesianJoin); ok {
		line += "\n" + planString(cj.Left, depth+1)
		line += "\n" + planString(cj.Right, depth+1)
	}

	return line
}

// PrintOperator renders op's table with a default TableFormatter and
// returns it; it writes nothing itself.
func PrintOperator(op relation.Operator) (string, error) {
	return NewTableFormatter().FormatOperator(op)
}
