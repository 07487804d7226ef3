package types

import "errors"

// DefaultPageSize is the number of rows in a page slice when Config.PageSize
// is zero.
const DefaultPageSize = 10

// Config holds the construction parameters of a table controller.
type Config struct {
	// DataSource is a URI understood by source.Open (http(s)://, file://,
	// a .json/.jsonl/.xlsx path, or sqlite://path?table=name).
	DataSource string `json:"data_source" yaml:"data_source" mapstructure:"data_source"`

	// RowIdentifier names the field whose value uniquely identifies a row.
	RowIdentifier string `json:"row_identifier" yaml:"row_identifier" mapstructure:"row_identifier"`

	// PageSize is the page slice length. Zero means DefaultPageSize.
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
}

// Config validation errors.
var (
	ErrDataSourceEmpty    = errors.New("data source must not be empty")
	ErrRowIdentifierEmpty = errors.New("row identifier must not be empty")
	ErrPageSizeInvalid    = errors.New("page size must not be negative")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.DataSource == "" {
		return ErrDataSourceEmpty
	}
	if c.RowIdentifier == "" {
		return ErrRowIdentifierEmpty
	}
	if c.PageSize < 0 {
		return ErrPageSizeInvalid
	}
	return nil
}

// GetPageSize returns the effective page size.
func (c Config) GetPageSize() int {
	if c.PageSize == 0 {
		return DefaultPageSize
	}
	return c.PageSize
}
