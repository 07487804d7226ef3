// Package types defines the Table interface, the Record and Row data model,
// the Source contract for data sources, and the standard errors shared by the
// table controller, its sources and the tablectl CLI.
package types
