// Package shell implements the line-oriented command language of the tablectl
// shell: one command per line, each driving one table controller operation.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/noobCode-69/reusable-table/internal/logging"
	"github.com/noobCode-69/reusable-table/pkg/types"
)

// Shell errors.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrNotReady       = errors.New("table is not loaded")
	ErrRowNotFound    = errors.New("row not found")
	ErrNotApplied     = errors.New("operation not applied")
)

// Controller is the part of a table controller the shell drives.
type Controller interface {
	types.Table
	Err() error
	Contains(id any) bool
	SelectedIDs() []any
}

// Shell reads commands and applies them to a controller.
type Shell struct {
	ctl    Controller
	out    *Renderer
	errw   io.Writer
	prompt string
	log    logging.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt prints p before reading each line.
func WithPrompt(p string) Option {
	return func(s *Shell) { s.prompt = p }
}

// WithLogger records every executed command at debug level.
func WithLogger(l logging.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.log = l
		}
	}
}

// WithErrorWriter sends command errors to w instead of the output writer.
func WithErrorWriter(w io.Writer) Option {
	return func(s *Shell) { s.errw = w }
}

// New returns a shell that prints through r.
func New(ctl Controller, r *Renderer, opts ...Option) *Shell {
	s := &Shell{
		ctl:  ctl,
		out:  r,
		errw: r.w,
		log:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes commands from in until quit, end of input or ctx is done.
// A failing command prints its error and the session continues.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			fmt.Fprint(s.out.w, s.prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		quit, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(s.errw, "error:", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line. quit is true for the quit command.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	s.log.Debug(ctx, "shell command", "command", name, "args", rest)

	switch name {
	case "quit", "exit":
		return true, nil
	case "help":
		return false, s.out.Message("%s", strings.TrimRight(helpText, "\n"))
	case "show":
		return false, s.show()
	}

	if s.ctl.Status() != types.StatusReady {
		return false, ErrNotReady
	}

	switch name {
	case "search":
		s.ctl.SetSearch(rest)
		return false, s.show()
	case "clear":
		s.ctl.SetSearch("")
		return false, s.show()
	case "next":
		return false, s.navigate(s.ctl.MoveNext())
	case "prev":
		return false, s.navigate(s.ctl.MovePrevious())
	case "first":
		return false, s.navigate(s.ctl.MoveFirst())
	case "last":
		return false, s.navigate(s.ctl.MoveLast())
	case "page":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return false, fmt.Errorf("%w: page <n>", ErrUsage)
		}
		if last := max(1, s.ctl.Snapshot().TotalPages); n < 1 || n > last {
			return false, fmt.Errorf("page %d is out of range (1-%d)", n, last)
		}
		s.ctl.MoveTo(n)
		return false, s.show()
	case "select":
		return false, s.onRow(rest, "select <id>", s.ctl.ToggleSelection)
	case "select-page":
		return false, s.apply(s.ctl.ToggleAllOnCurrentPage())
	case "edit":
		return false, s.onRow(rest, "edit <id>", s.ctl.EnterEditMode)
	case "save":
		return false, s.onRow(rest, "save <id>", s.ctl.SaveRow)
	case "delete":
		return false, s.onRow(rest, "delete <id>", s.ctl.DeleteRow)
	case "delete-selected":
		if !s.ctl.DeleteSelected() {
			return false, fmt.Errorf("%w: no rows selected", ErrNotApplied)
		}
		return false, s.show()
	case "set":
		return false, s.set(rest)
	case "selected":
		return false, s.out.IDs(s.ctl.SelectedIDs())
	}
	return false, fmt.Errorf("%w %q (try help)", ErrUnknownCommand, name)
}

func (s *Shell) show() error {
	return s.out.View(s.ctl.Snapshot(), s.ctl.Err())
}

// navigate prints the page even when the move was a no-op at a boundary.
func (s *Shell) navigate(bool) error {
	return s.show()
}

func (s *Shell) apply(applied bool) error {
	if !applied {
		return ErrNotApplied
	}
	return s.show()
}

func (s *Shell) onRow(arg, usage string, op func(id any) bool) error {
	if arg == "" {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	id, err := s.resolveID(arg)
	if err != nil {
		return err
	}
	return s.apply(op(id))
}

// set parses "<id> <field> <value...>". The value may contain spaces.
func (s *Shell) set(args string) error {
	rawID, rest, ok := strings.Cut(args, " ")
	rest = strings.TrimSpace(rest)
	field, rawValue, ok2 := strings.Cut(rest, " ")
	if !ok || !ok2 || field == "" {
		return fmt.Errorf("%w: set <id> <field> <value>", ErrUsage)
	}
	id, err := s.resolveID(rawID)
	if err != nil {
		return err
	}
	if !s.ctl.CommitEdit(id, field, ParseValue(strings.TrimSpace(rawValue))) {
		return fmt.Errorf("%w: cannot set %q on row %s", ErrNotApplied, field, rawID)
	}
	return s.show()
}

// resolveID maps an argument to an existing row identifier. The argument is
// tried as JSON first (so 7 is a number and "7" a string), then as raw text.
func (s *Shell) resolveID(arg string) (any, error) {
	if v := ParseValue(arg); s.ctl.Contains(v) {
		return v, nil
	}
	if s.ctl.Contains(arg) {
		return arg, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrRowNotFound, arg)
}

// ParseValue decodes s as a single JSON value, keeping numbers as
// json.Number. Text that is not valid JSON is returned as a string.
func ParseValue(s string) any {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return s
	}
	if _, err := dec.Token(); err != io.EOF {
		return s
	}
	return v
}

const helpText = `Commands:
  search <term>            filter rows (case-insensitive substring)
  clear                    clear the search term
  next | prev              move one page
  first | last             jump to the first or last page
  page <n>                 jump to page n
  select <id>              toggle selection of a row
  select-page              select or deselect every row on the page
  edit <id>                put a row in edit mode
  set <id> <field> <value> change one field (value parsed as JSON, else text)
  save <id>                leave edit mode
  delete <id>              delete a row
  delete-selected          delete every selected row
  show                     print the current page
  selected                 print the selected row ids
  help                     print this help
  quit                     leave the shell
`
