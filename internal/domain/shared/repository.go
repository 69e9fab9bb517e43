package shared

// Filter carries list-query options from the application layer down to the
// repositories. OrderBy and OrderDir are validated against per-entity
// whitelists before they reach SQL; Filters holds exact-match column
// predicates keyed by column name.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// Offset returns the row offset for the current page. Page and PageSize
// below 1 are treated as the first page of twenty rows.
func (f Filter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit()
}

// Limit returns the page size, defaulting to twenty rows.
func (f Filter) Limit() int {
	if f.PageSize < 1 {
		return 20
	}
	return f.PageSize
}
