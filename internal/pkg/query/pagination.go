package query

// PageRef points at an adjacent page in a paginated listing.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the adjacent-page metadata returned to the caller on list
// endpoints. Next and Prev are omitted from the JSON when not applicable.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate computes the adjacent-page metadata for the given window.
// next exists while endIndex < total; prev exists while startIndex > 0.
func Paginate(total int64, page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	startIndex := int64(page-1) * int64(limit)
	endIndex := int64(page) * int64(limit)

	p := Pagination{}
	if endIndex < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if startIndex > 0 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
