package filters

const (
	MaxPageSize = 100
	// MaxOffset bounds how deep a listing can be paged into.
	MaxOffset = 10_000
)

// Filters holds the page/limit pair every listing endpoint accepts.
type Filters struct {
	Page     int `schema:"page" json:"page"`
	PageSize int `schema:"limit" json:"limit"`
}

func New(page, pageSize int) Filters {
	return Filters{Page: page, PageSize: pageSize}
}

// Clamp fills in defaults, bounds the page size to [1, maxSize] and keeps
// the offset within MaxOffset.
func (f Filters) Clamp(defaultSize, maxSize int) Filters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultSize
	}
	if f.PageSize > maxSize {
		f.PageSize = maxSize
	}
	if last := f.LastPage(); f.Page > last {
		f.Page = last
	}
	return f
}

// LastPage is the deepest page reachable with the current page size.
func (f Filters) LastPage() int {
	if f.PageSize < 1 {
		return 1
	}
	return MaxOffset/f.PageSize + 1
}

func (f Filters) Limit() int {
	return f.PageSize
}

func (f Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}
