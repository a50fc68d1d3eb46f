// Package paging slices filtered collections into fixed-size pages.
package paging

// ItemsPerPage is the page size used by every list view.
const ItemsPerPage = 5

// TotalPages returns how many pages n items fill.
func TotalPages(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	pages := n / perPage
	if n%perPage != 0 {
		pages++
	}
	return pages
}

// Clamp bounds a 1-indexed page to [1, total]. With no pages it returns 1.
func Clamp(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Window returns the half-open range [start, end) shown on page, cut to [0, n).
func Window(n, page, perPage int) (start, end int) {
	start = (page - 1) * perPage
	end = page * perPage
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	return start, end
}

// Pager tracks the current page over a collection of N items.
type Pager struct {
	N       int
	Page    int
	PerPage int
}

// New returns a pager on page 1.
func New(n int) Pager {
	return Pager{N: n, Page: 1, PerPage: ItemsPerPage}
}

// Total returns the number of pages.
func (p Pager) Total() int {
	return TotalPages(p.N, p.PerPage)
}

// Resize changes N and keeps the current page in bounds.
func (p Pager) Resize(n int) Pager {
	p.N = n
	p.Page = Clamp(p.Page, p.Total())
	return p
}

// HasPrev reports whether backward navigation is enabled.
func (p Pager) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether forward navigation is enabled.
func (p Pager) HasNext() bool {
	return p.Page < p.Total()
}

// Next moves forward one page unless already on the last one.
func (p Pager) Next() Pager {
	if p.HasNext() {
		p.Page++
	}
	return p
}

// Prev moves back one page unless already on the first one.
func (p Pager) Prev() Pager {
	if p.HasPrev() {
		p.Page--
	}
	return p
}

// Window returns the item range for the current page.
func (p Pager) Window() (start, end int) {
	return Window(p.N, p.Page, p.PerPage)
}
