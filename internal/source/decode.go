package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

// columnSet collects field names in first-seen order.
type columnSet struct {
	seen  map[string]bool
	names []string
}

func newColumnSet() *columnSet {
	return &columnSet{seen: make(map[string]bool)}
}

func (c *columnSet) add(names ...string) {
	for _, n := range names {
		if !c.seen[n] {
			c.seen[n] = true
			c.names = append(c.names, n)
		}
	}
}

// decodeArray reads a JSON document that must be an array of objects.
// Numbers are kept as json.Number so identifiers and search text keep their
// literal form. Anything else, including trailing data, is ErrMalformedBody.
func decodeArray(r io.Reader) (*types.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	cols := newColumnSet()
	records := []types.Record{}
	for dec.More() {
		rec, keys, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records), err)
		}
		cols.add(keys...)
		records = append(records, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after array", ErrMalformedBody)
	}

	return &types.Dataset{Columns: cols.names, Records: records}, nil
}

// decodeObject reads one JSON object token by token so the key order of the
// document is preserved.
func decodeObject(dec *json.Decoder) (types.Record, []string, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}
	rec := types.Record{}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("%w: expected object key, got %v", ErrMalformedBody, tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("%w: field %q: %v", ErrMalformedBody, key, err)
		}
		if _, dup := rec[key]; !dup {
			keys = append(keys, key)
		}
		rec[key] = v
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return rec, keys, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedBody, want, tok)
	}
	return nil
}
