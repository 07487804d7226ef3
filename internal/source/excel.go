package source

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

// ExcelSource reads one worksheet of an .xlsx workbook. The first row holds
// the field names; every following non-empty row is a record whose values
// are the cells' formatted text.
type ExcelSource struct {
	path  string
	sheet string
}

// NewExcelSource returns a source for path. An empty sheet selects the first
// worksheet.
func NewExcelSource(path, sheet string) *ExcelSource {
	return &ExcelSource{path: path, sheet: sheet}
}

func (s *ExcelSource) URI() string {
	if s.sheet == "" {
		return s.path
	}
	return s.path + "#" + s.sheet
}

func (s *ExcelSource) Fetch(ctx context.Context) (*types.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", s.path, err)
	}
	defer file.Close()

	sheet, err := s.pickSheet(file.GetSheetList())
	if err != nil {
		return nil, err
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &types.Dataset{Records: []types.Record{}}, nil
	}

	headers, err := headerNames(rows[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}

	records := make([]types.Record, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if isBlankRow(cells) {
			continue
		}
		rec := make(types.Record, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				rec[h] = cells[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return &types.Dataset{Columns: headers, Records: records}, nil
}

func (s *ExcelSource) pickSheet(sheets []string) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: no sheets in %s", ErrMalformedBody, s.path)
	}
	if s.sheet == "" {
		return sheets[0], nil
	}
	if !slices.Contains(sheets, s.sheet) {
		return "", fmt.Errorf("sheet not found: %s", s.sheet)
	}
	return s.sheet, nil
}

// headerNames trims the header cells. Blank headers get a positional name;
// duplicate headers are rejected since records are keyed by name.
func headerNames(cells []string) ([]string, error) {
	names := make([]string, len(cells))
	seen := make(map[string]bool, len(cells))
	for i, c := range cells {
		name := strings.TrimSpace(c)
		if name == "" {
			name = fmt.Sprintf("column%d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate header %q", ErrMalformedBody, name)
		}
		seen[name] = true
		names[i] = name
	}
	return names, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
