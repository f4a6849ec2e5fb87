package pagination

// PageRequest holds optional pagination parameters parsed from query strings.
// A zero Page means the caller asked for every item.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=1000"`
}

// Enabled reports whether the caller asked for a page.
func (p PageRequest) Enabled() bool {
	return p.Page > 0 || p.PageSize > 0
}

// Defaults fills in default values when only one of page or pageSize is provided.
func (p *PageRequest) Defaults() {
	if !p.Enabled() {
		return
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 20
	}
}

// Offset returns the index of the first item of the current page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Slice returns the items of the requested page, or all items when
// pagination is not enabled. The result is never nil.
func Slice[T any](items []T, p PageRequest) []T {
	if items == nil {
		items = []T{}
	}
	if !p.Enabled() {
		return items
	}
	p.Defaults()
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
