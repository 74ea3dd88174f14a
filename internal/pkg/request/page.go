package request

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest binds the pagination query parameters shared by list endpoints.
type PageRequest struct {
	Page     int `form:"pagina" binding:"omitempty,min=1"`
	PageSize int `form:"tamanhoPagina" binding:"omitempty,min=1,max=100"`
}

// ClampPage applies the list defaults: page starts at 1, page size defaults
// to DefaultPageSize and never exceeds MaxPageSize.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset is the number of rows skipped before page.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
