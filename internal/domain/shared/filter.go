package shared

// ListFilter carries the common list query parameters shared by all
// master-data list operations. The zero value is normalized to the
// first page with the default page size.
type ListFilter struct {
	Search     string
	SortBy     string
	SortOrder  string // "asc" or "desc"
	PageNumber int
	PageSize   int
}

const (
	// DefaultPageSize is applied when the caller does not specify one
	DefaultPageSize = 20
	// MaxPageSize caps the page size to protect the list endpoint
	MaxPageSize = 200
)

// Normalize returns a copy of the filter with page defaults applied
func (f ListFilter) Normalize() ListFilter {
	if f.PageNumber < 1 {
		f.PageNumber = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// Offset returns the row offset for the current page
func (f ListFilter) Offset() int {
	n := f.Normalize()
	return (n.PageNumber - 1) * n.PageSize
}
