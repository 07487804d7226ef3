// Package source implements the data sources a table controller can be
// initialized from. Every source performs one read of a complete record
// collection and never writes back.
package source

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

// URI schemes and file extensions recognized by Open.
const (
	SchemeHTTP   = "http"
	SchemeHTTPS  = "https"
	SchemeFile   = "file"
	SchemeSQLite = "sqlite"

	extJSON   = ".json"
	extJSONL  = ".jsonl"
	extNDJSON = ".ndjson"
	extXLSX   = ".xlsx"
	extXLSM   = ".xlsm"
)

// Source errors.
var (
	ErrUnsupportedSource = errors.New("unsupported data source")
	ErrInvalidURI        = errors.New("invalid data source URI")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrMalformedBody     = errors.New("malformed response body")
)

// Options tune how Open builds a source. The zero value is usable.
type Options struct {
	// HTTPClient overrides the client used by HTTP sources.
	HTTPClient *http.Client

	// Timeout bounds a single HTTP fetch when HTTPClient is nil. Zero means
	// no timeout beyond the caller's context.
	Timeout time.Duration

	// Sheet selects the worksheet of an Excel source when the URI has no
	// #fragment. Empty means the first sheet.
	Sheet string
}

// Open returns the Source for uri.
//
//	http://host/users.json        HTTPSource
//	file:///data/users.json       FileSource (JSON array)
//	users.jsonl                   FileSource (one object per line)
//	users.xlsx#Sheet1             ExcelSource
//	sqlite://users.db?table=users SQLiteSource
func Open(uri string, opts Options) (types.Source, error) {
	if uri == "" {
		return nil, types.ErrDataSourceEmpty
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case SchemeHTTP, SchemeHTTPS:
		return NewHTTPSource(uri, opts.httpClient()), nil
	case SchemeSQLite:
		path := u.Host + u.Path
		table := u.Query().Get("table")
		if path == "" || table == "" {
			return nil, fmt.Errorf("%w: %s needs a path and ?table=", ErrInvalidURI, uri)
		}
		return NewSQLiteSource(path, table), nil
	case SchemeFile:
		return openPath(u.Host+u.Path, u.Fragment, opts)
	case "":
		return openPath(u.Path, u.Fragment, opts)
	default:
		// A single-letter scheme is a Windows drive letter, not a scheme.
		if len(u.Scheme) == 1 {
			return openPath(uri, "", opts)
		}
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
	}
}

func openPath(path, fragment string, opts Options) (types.Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidURI)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case extJSON:
		return NewFileSource(path, FormatJSON), nil
	case extJSONL, extNDJSON:
		return NewFileSource(path, FormatJSONL), nil
	case extXLSX, extXLSM:
		sheet := fragment
		if sheet == "" {
			sheet = opts.Sheet
		}
		return NewExcelSource(path, sheet), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
	}
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: o.Timeout}
}
