package table

// Page navigation. Every move is a no-op returning false until the rows are
// loaded, and every move is checked against the page count of the current
// filtered view.

// CurrentPage returns the 1-based page position.
func (c *Controller) CurrentPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pager.Page()
}

// PageSize returns the number of rows per page.
func (c *Controller) PageSize() int {
	return c.pager.Size()
}

// MoveNext advances one page unless already on the last page.
func (c *Controller) MoveNext() bool {
	return c.move(func(total int) bool { return c.pager.Next(total) })
}

// MovePrevious goes back one page unless already on page 1.
func (c *Controller) MovePrevious() bool {
	return c.move(func(int) bool { return c.pager.Previous() })
}

// MoveFirst goes to page 1.
func (c *Controller) MoveFirst() bool {
	return c.move(func(int) bool { return c.pager.First() })
}

// MoveLast goes to the last page, which is 1 for an empty view.
func (c *Controller) MoveLast() bool {
	return c.move(func(total int) bool { return c.pager.Last(total) })
}

// MoveTo jumps to page when it is within range.
func (c *Controller) MoveTo(page int) bool {
	return c.move(func(total int) bool { return c.pager.To(page, total) })
}

func (c *Controller) move(step func(total int) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rows == nil {
		return false
	}
	return step(c.totalPagesLocked())
}
