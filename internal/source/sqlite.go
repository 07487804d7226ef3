package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

// SQLiteSource reads every row of one table from a SQLite database file.
// The database is opened read-only.
type SQLiteSource struct {
	path  string
	table string
}

func NewSQLiteSource(path, table string) *SQLiteSource {
	return &SQLiteSource{path: path, table: table}
}

func (s *SQLiteSource) URI() string {
	return "sqlite://" + s.path + "?table=" + s.table
}

func (s *SQLiteSource) Fetch(ctx context.Context) (*types.Dataset, error) {
	// mode=ro does not create a missing file, but the resulting error is
	// opaque; check first.
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}

	db, err := sql.Open("sqlite", "file:"+s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(s.table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", s.table, err)
	}

	records := []types.Record{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", s.table, err)
		}
		rec := make(types.Record, len(cols))
		for i, c := range cols {
			rec[c] = sqlValue(values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", s.table, err)
	}
	return &types.Dataset{Columns: cols, Records: records}, nil
}

// sqlValue converts driver values into record scalars. BLOB and TEXT may
// both arrive as []byte.
func sqlValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
