package view

// TotalPages returns ceil(n/size), or 0 when n is 0.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// lastPage is the highest valid page position. An empty view still has page 1.
func lastPage(total int) int {
	return max(1, total)
}

// Pager tracks a 1-based page position over a view whose size changes. It
// never stores the view size; callers pass the current total page count so
// the position is always checked against fresh data.
type Pager struct {
	page int
	size int
}

// NewPager returns a pager at page 1.
func NewPager(size int) *Pager {
	return &Pager{page: 1, size: size}
}

// Page returns the current 1-based page.
func (p *Pager) Page() int { return p.page }

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// Next advances one page unless already on the last page.
func (p *Pager) Next(total int) bool {
	if p.page >= lastPage(total) {
		return false
	}
	p.page++
	return true
}

// Previous goes back one page unless already on page 1.
func (p *Pager) Previous() bool {
	if p.page <= 1 {
		return false
	}
	p.page--
	return true
}

// First moves to page 1.
func (p *Pager) First() bool {
	return p.set(1)
}

// Last moves to the last page, or page 1 when there are no pages.
func (p *Pager) Last(total int) bool {
	return p.set(lastPage(total))
}

// To jumps to page when it is within [1, max(1,total)].
func (p *Pager) To(page, total int) bool {
	if page < 1 || page > lastPage(total) {
		return false
	}
	return p.set(page)
}

// Clamp pulls the position back into range after the view shrank.
func (p *Pager) Clamp(total int) bool {
	return p.set(min(max(p.page, 1), lastPage(total)))
}

// Reset returns to page 1. It is used whenever the search term changes.
func (p *Pager) Reset() {
	p.page = 1
}

// Bounds returns the half-open slice bounds of the current page over a view
// of n rows: [start, end). Both are clipped to n.
func (p *Pager) Bounds(n int) (start, end int) {
	start = min((p.page-1)*p.size, n)
	end = min(p.page*p.size, n)
	return start, end
}

func (p *Pager) set(page int) bool {
	if p.page == page {
		return false
	}
	p.page = page
	return true
}
