package table

import (
	"slices"

	"github.com/noobCode-69/reusable-table/internal/view"
	"github.com/noobCode-69/reusable-table/pkg/types"
)

// filteredLocked returns positions into c.rows of the rows matching the
// current search term. It is recomputed on every call; nothing is cached.
func (c *Controller) filteredLocked() []int {
	if c.rows == nil {
		return nil
	}
	return view.FilterIndex(c.rows, c.search)
}

// pageLocked returns positions into c.rows of the current page slice.
func (c *Controller) pageLocked() []int {
	filtered := c.filteredLocked()
	start, end := c.pager.Bounds(len(filtered))
	return filtered[start:end]
}

func (c *Controller) totalPagesLocked() int {
	return view.TotalPages(len(c.filteredLocked()), c.pager.Size())
}

func (c *Controller) rowsAt(idx []int) []types.Row {
	out := make([]types.Row, len(idx))
	for i, j := range idx {
		out[i] = c.rows[j].Clone()
	}
	return out
}

func (c *Controller) allSelectedLocked(idx []int) bool {
	if len(idx) == 0 {
		return false
	}
	for _, j := range idx {
		if !c.rows[j].Selected {
			return false
		}
	}
	return true
}

// Snapshot returns every derived value computed from one consistent state.
func (c *Controller) Snapshot() types.View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := types.View{
		Status:      c.statusLocked(),
		Columns:     slices.Clone(c.columns),
		Search:      c.search,
		CurrentPage: c.pager.Page(),
	}
	if c.rows == nil {
		return v
	}

	filtered := c.filteredLocked()
	start, end := c.pager.Bounds(len(filtered))
	page := filtered[start:end]

	v.Rows = c.rowsAt(page)
	v.TotalItems = len(filtered)
	v.TotalPages = view.TotalPages(len(filtered), c.pager.Size())
	v.TotalSelected = c.countSelected(filtered)
	v.AllSelectedInPage = c.allSelectedLocked(page)
	return v
}

func (c *Controller) countSelected(idx []int) int {
	n := 0
	for _, j := range idx {
		if c.rows[j].Selected {
			n++
		}
	}
	return n
}

// PageRows returns copies of the rows in the current page slice, or nil
// before the rows are loaded.
func (c *Controller) PageRows() []types.Row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rows == nil {
		return nil
	}
	return c.rowsAt(c.pageLocked())
}

// FilteredRows returns copies of every row matching the search term.
func (c *Controller) FilteredRows() []types.Row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rows == nil {
		return nil
	}
	return c.rowsAt(c.filteredLocked())
}

// Rows returns copies of the canonical rows, or nil before they are loaded.
func (c *Controller) Rows() []types.Row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return types.CloneRows(c.rows)
}

// Columns returns the display order of fields, identifier first.
func (c *Controller) Columns() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.columns)
}

// IsEmpty reports a loaded table whose filtered view has no rows. It is
// false while loading or after a failed fetch.
func (c *Controller) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rows != nil && len(c.filteredLocked()) == 0
}

// TotalItems is the size of the filtered view.
func (c *Controller) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.filteredLocked())
}

// TotalPages is ceil(TotalItems / page size), 0 for an empty view.
func (c *Controller) TotalPages() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalPagesLocked()
}

// TotalSelected counts selected rows in the filtered view.
func (c *Controller) TotalSelected() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.countSelected(c.filteredLocked())
}

// AllSelectedInPage reports whether the current page is non-empty and every
// row on it is selected.
func (c *Controller) AllSelectedInPage() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.allSelectedLocked(c.pageLocked())
}

// SelectedIDs returns the identifiers of every selected row, including rows
// hidden by the search term, in canonical order.
func (c *Controller) SelectedIDs() []any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var ids []any
	for _, r := range c.rows {
		if r.Selected {
			ids = append(ids, r.Record[c.config.RowIdentifier])
		}
	}
	return ids
}

// Contains reports whether a row with the identifier exists.
func (c *Controller) Contains(id any) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id) >= 0
}

// Search returns the current search term.
func (c *Controller) Search() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.search
}

// SetSearch replaces the search term and resets the page to 1 in the same
// critical section, so no reader sees the new view at a stale page.
func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = term
	c.pager.Reset()
}
