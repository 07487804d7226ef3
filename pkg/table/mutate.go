package table

import (
	"context"
	"slices"

	"github.com/noobCode-69/reusable-table/internal/view"
	"github.com/noobCode-69/reusable-table/pkg/types"
)

// Mutations act on the canonical rows and report whether they were applied.
// A missing identifier, or rows that are not loaded yet, make every mutation
// a silent no-op: identifiers can go stale between a user action and its
// dispatch. After each mutation the page is clamped to the new page count.

// indexOf returns the canonical position of the row with the identifier,
// or -1. The caller must hold c.mu.
func (c *Controller) indexOf(id any) int {
	for i, r := range c.rows {
		if view.Equal(r.Record[c.config.RowIdentifier], id) {
			return i
		}
	}
	return -1
}

// mutate runs fn on the row with the identifier under the write lock.
func (c *Controller) mutate(op string, id any, fn func(i int) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		c.log.Debug(context.Background(), "row not found", "op", op, "id", id)
		return false
	}
	if !fn(i) {
		return false
	}
	c.settleLocked()
	c.log.Debug(context.Background(), "row updated", "op", op, "id", id)
	return true
}

// settleLocked keeps the page position valid after the view changed size.
func (c *Controller) settleLocked() {
	c.pager.Clamp(c.totalPagesLocked())
}

// ToggleSelection flips the selection of one row.
func (c *Controller) ToggleSelection(id any) bool {
	return c.mutate("toggle_selection", id, func(i int) bool {
		c.rows[i].Selected = !c.rows[i].Selected
		return true
	})
}

// ToggleAllOnCurrentPage selects every row on the current page, or deselects
// them all when they are all selected already. Rows outside the page keep
// their state.
func (c *Controller) ToggleAllOnCurrentPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	page := c.pageLocked()
	if len(page) == 0 {
		return false
	}
	selected := !c.allSelectedLocked(page)
	for _, j := range page {
		c.rows[j].Selected = selected
	}
	c.log.Debug(context.Background(), "page selection toggled", "page", c.pager.Page(), "rows", len(page), "selected", selected)
	return true
}

// EnterEditMode marks one row editable. Other rows keep their edit mode.
func (c *Controller) EnterEditMode(id any) bool {
	return c.mutate("enter_edit", id, func(i int) bool {
		c.rows[i].Editable = true
		return true
	})
}

// CommitEdit sets one existing field of a row. The edit mode flag is left
// alone. Unknown fields are rejected since the record shape is fixed, and an
// identifier edit is applied only when the new value keeps identifiers
// unique.
func (c *Controller) CommitEdit(id any, field string, value any) bool {
	return c.mutate("commit_edit", id, func(i int) bool {
		if _, ok := c.rows[i].Record[field]; !ok {
			return false
		}
		if field == c.config.RowIdentifier && !c.identifierFreeLocked(value, i) {
			return false
		}
		c.rows[i].Record[field] = value
		return true
	})
}

// identifierFreeLocked reports whether value may become the identifier of
// the row at position self.
func (c *Controller) identifierFreeLocked(value any, self int) bool {
	if !view.IsScalar(value) {
		return false
	}
	j := c.indexOf(value)
	return j < 0 || j == self
}

// SaveRow leaves edit mode. Field values were already committed by
// CommitEdit.
func (c *Controller) SaveRow(id any) bool {
	return c.mutate("save_row", id, func(i int) bool {
		c.rows[i].Editable = false
		return true
	})
}

// DeleteRow removes one row.
func (c *Controller) DeleteRow(id any) bool {
	return c.mutate("delete_row", id, func(i int) bool {
		c.rows = slices.Delete(c.rows, i, i+1)
		return true
	})
}

// DeleteSelected removes every selected row, including selected rows hidden
// by the current search term.
func (c *Controller) DeleteSelected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rows == nil {
		return false
	}

	before := len(c.rows)
	c.rows = slices.DeleteFunc(c.rows, func(r types.Row) bool { return r.Selected })
	removed := before - len(c.rows)
	if removed == 0 {
		return false
	}
	c.settleLocked()
	c.log.Debug(context.Background(), "selected rows deleted", "rows", removed)
	return true
}
