package types

import (
	"errors"
	"fmt"
)

// Table is the consumer-facing contract of a table controller: readiness,
// the current page slice with its pagination metadata, the search term, and
// the mutation operations. Mutations are no-ops (returning false) when the
// dataset is not loaded or the identifier is absent.
type Table interface {
	// Status reports loading, error or ready.
	Status() Status

	// Snapshot returns every derived value in one consistent View.
	Snapshot() View

	// PageRows returns copies of the rows in the current page slice.
	PageRows() []Row

	// SetSearch replaces the search term and resets the page to 1.
	SetSearch(term string)

	MoveNext() bool
	MovePrevious() bool
	MoveFirst() bool
	MoveLast() bool
	MoveTo(page int) bool

	ToggleSelection(id any) bool
	ToggleAllOnCurrentPage() bool
	EnterEditMode(id any) bool
	CommitEdit(id any, field string, value any) bool
	SaveRow(id any) bool
	DeleteRow(id any) bool
	DeleteSelected() bool
}

// View is a point-in-time projection of a controller.
type View struct {
	Status            Status   `json:"status"`
	Rows              []Row    `json:"rows"`
	Columns           []string `json:"columns"`
	Search            string   `json:"search"`
	CurrentPage       int      `json:"current_page"`
	TotalPages        int      `json:"total_pages"`
	TotalItems        int      `json:"total_items"`
	TotalSelected     int      `json:"total_selected"`
	AllSelectedInPage bool     `json:"all_selected_in_page"`
}

// Loading reports whether the dataset has not been fetched yet.
func (v View) Loading() bool { return v.Status == StatusLoading }

// Failed reports whether the fetch failed.
func (v View) Failed() bool { return v.Status == StatusError }

// IsEmpty reports a loaded dataset whose filtered view has no rows.
func (v View) IsEmpty() bool { return v.Status == StatusReady && v.TotalItems == 0 }

// Controller lifecycle errors.
var (
	ErrAlreadyInitialized = errors.New("table is already initialized")
	ErrFetchInProgress    = errors.New("fetch already in progress")
)

// Fetch errors. ErrFetchFailed matches every *FetchError via errors.Is.
var (
	ErrFetchFailed         = errors.New("fetch failed")
	ErrMissingIdentifier   = errors.New("record has no row identifier")
	ErrInvalidIdentifier   = errors.New("row identifier is not a scalar value")
	ErrDuplicateIdentifier = errors.New("duplicate row identifier")
)

// FetchError is the single failure kind a controller surfaces: the initial
// fetch did not produce a usable dataset.
type FetchError struct {
	URI string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URI, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetchFailed) true for every FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }
