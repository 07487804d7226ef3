package table

import (
	"fmt"
	"slices"

	"github.com/noobCode-69/reusable-table/internal/view"
	"github.com/noobCode-69/reusable-table/pkg/types"
)

// normalize wraps fetched records into rows with default flags and checks
// that every record carries a unique scalar identifier. The identifier
// column is moved to the front of the column order.
func normalize(ds *types.Dataset, idField string) ([]types.Row, []string, error) {
	if ds == nil {
		ds = &types.Dataset{}
	}

	rows := make([]types.Row, 0, len(ds.Records))
	seen := make(map[string]int, len(ds.Records))
	for i, rec := range ds.Records {
		id, ok := rec[idField]
		if !ok {
			return nil, nil, fmt.Errorf("record %d: %w %q", i, types.ErrMissingIdentifier, idField)
		}
		key, ok := view.Key(id)
		if !ok {
			return nil, nil, fmt.Errorf("record %d: %w: %v", i, types.ErrInvalidIdentifier, id)
		}
		if j, dup := seen[key]; dup {
			return nil, nil, fmt.Errorf("records %d and %d: %w %v", j, i, types.ErrDuplicateIdentifier, view.Text(id))
		}
		seen[key] = i
		rows = append(rows, types.NewRow(rec))
	}

	cols := ds.Columns
	if len(cols) == 0 {
		cols = columnsOf(ds.Records)
	}
	return rows, identifierFirst(cols, idField), nil
}

// columnsOf collects the field names of records, sorted, for sources that
// do not report a column order.
func columnsOf(records []types.Record) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			set[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(set))
	for k := range set {
		cols = append(cols, k)
	}
	slices.Sort(cols)
	return cols
}

func identifierFirst(cols []string, idField string) []string {
	out := make([]string, 0, len(cols)+1)
	out = append(out, idField)
	for _, c := range cols {
		if c != idField {
			out = append(out, c)
		}
	}
	return out
}
