package shared

// Filter holds common list query options applied by repositories.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// NewFilter returns an empty filter with an initialized filter map.
func NewFilter() Filter {
	return Filter{Filters: make(map[string]interface{})}
}
