// Package view derives read-only projections of a row set: the search-filtered
// view and page slices over it. Everything here is a pure function of its
// inputs; callers own the rows and the page position.
package view
