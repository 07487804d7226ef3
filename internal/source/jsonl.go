package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 4 << 20

// decodeJSONL reads one JSON object per line. Blank lines are skipped. A
// malformed line fails the whole read: a fetch either returns every record
// or none.
func decodeJSONL(r io.Reader) (*types.Dataset, error) {
	cols := newColumnSet()
	records := []types.Record{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		rec, keys, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if dec.More() {
			return nil, fmt.Errorf("line %d: %w: trailing data", line, ErrMalformedBody)
		}
		cols.add(keys...)
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning: %w", err)
	}
	return &types.Dataset{Columns: cols.names, Records: records}, nil
}
