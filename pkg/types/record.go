// Record and Row data model.
package types

import "maps"

// Record maps a field name to a scalar value. The set of fields is fixed for
// the lifetime of a controller; only values change.
type Record map[string]any

// Clone returns a shallow copy of the record. Field values are scalars, so a
// shallow copy is enough to keep callers from aliasing canonical state.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Row is a Record extended with transient UI flags.
type Row struct {
	Record   Record `json:"record"`
	Selected bool   `json:"selected"`
	Editable bool   `json:"editable"`
}

// NewRow wraps a record with default flags (not selected, not editable).
func NewRow(r Record) Row {
	return Row{Record: r.Clone()}
}

// Clone returns a copy of the row that shares no map with the receiver.
func (r Row) Clone() Row {
	return Row{Record: r.Record.Clone(), Selected: r.Selected, Editable: r.Editable}
}

// Get returns the value of a field and whether the field exists.
func (r Row) Get(field string) (any, bool) {
	v, ok := r.Record[field]
	return v, ok
}

// CloneRows deep-copies a slice of rows. A nil slice stays nil.
func CloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

// Dataset is what a Source returns: the records plus a display order for
// their fields.
type Dataset struct {
	Columns []string
	Records []Record
}
