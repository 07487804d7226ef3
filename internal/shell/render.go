package shell

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/noobCode-69/reusable-table/internal/view"
	"github.com/noobCode-69/reusable-table/pkg/types"
)

// maxCellWidth truncates long cell values in table output.
const maxCellWidth = 40

// Renderer prints a table view either as an aligned text table or as JSON.
type Renderer struct {
	w    io.Writer
	json bool
}

// NewRenderer returns a renderer writing to w. When jsonMode is set every
// view is printed as an indented JSON document.
func NewRenderer(w io.Writer, jsonMode bool) *Renderer {
	return &Renderer{w: w, json: jsonMode}
}

// View prints one page of v. fetchErr is reported when v is in the error
// state.
func (r *Renderer) View(v types.View, fetchErr error) error {
	if r.json {
		return r.encode(v)
	}

	switch {
	case v.Loading():
		_, err := fmt.Fprintln(r.w, "Loading...")
		return err
	case v.Failed():
		msg := "fetch failed"
		if fetchErr != nil {
			msg = fetchErr.Error()
		}
		_, err := fmt.Fprintln(r.w, "Error:", msg)
		return err
	case v.IsEmpty():
		if v.Search != "" {
			_, err := fmt.Fprintf(r.w, "No rows match %q.\n", v.Search)
			return err
		}
		_, err := fmt.Fprintln(r.w, "No rows found.")
		return err
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	header := make([]string, 0, len(v.Columns)+1)
	rule := make([]string, 0, len(v.Columns)+1)
	header = append(header, "SEL")
	rule = append(rule, "---")
	for _, col := range v.Columns {
		name := strings.ToUpper(col)
		header = append(header, name)
		rule = append(rule, strings.Repeat("-", utf8.RuneCountInString(name)))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))

	for _, row := range v.Rows {
		cells := make([]string, 0, len(v.Columns)+1)
		cells = append(cells, marker(row))
		for _, col := range v.Columns {
			cells = append(cells, cell(row.Record[col]))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		if _, err := fmt.Fprintln(r.w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.w, "Page %d/%d  %d row(s)  %d selected\n",
		v.CurrentPage, v.TotalPages, v.TotalItems, v.TotalSelected)
	return err
}

// IDs prints a list of row identifiers.
func (r *Renderer) IDs(ids []any) error {
	if r.json {
		if ids == nil {
			ids = []any{}
		}
		return r.encode(ids)
	}
	if len(ids) == 0 {
		_, err := fmt.Fprintln(r.w, "No rows selected.")
		return err
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = view.Text(id)
	}
	_, err := fmt.Fprintln(r.w, strings.Join(parts, " "))
	return err
}

// Message prints a line of plain text. JSON mode suppresses it.
func (r *Renderer) Message(format string, args ...any) error {
	if r.json {
		return nil
	}
	_, err := fmt.Fprintf(r.w, format+"\n", args...)
	return err
}

func (r *Renderer) encode(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(r.w, string(out))
	return err
}

func marker(row types.Row) string {
	switch {
	case row.Selected && row.Editable:
		return "[x]*"
	case row.Selected:
		return "[x]"
	case row.Editable:
		return "[ ]*"
	default:
		return "[ ]"
	}
}

func cell(v any) string {
	s := strings.ReplaceAll(view.Text(v), "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) > maxCellWidth {
		runes := []rune(s)
		s = string(runes[:maxCellWidth-3]) + "..."
	}
	return s
}
