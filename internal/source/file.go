package source

import (
	"context"
	"fmt"
	"os"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

// File formats understood by FileSource.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// FileSource reads records from a local JSON or JSONL file.
type FileSource struct {
	path   string
	format string
}

func NewFileSource(path, format string) *FileSource {
	return &FileSource{path: path, format: format}
}

func (s *FileSource) URI() string { return s.path }

func (s *FileSource) Fetch(ctx context.Context) (*types.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	var ds *types.Dataset
	switch s.format {
	case FormatJSON:
		ds, err = decodeArray(f)
	case FormatJSONL:
		ds, err = decodeJSONL(f)
	default:
		return nil, fmt.Errorf("%w: format %q", ErrUnsupportedSource, s.format)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return ds, nil
}
