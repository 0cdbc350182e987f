package stax

// Pagination is the pagination envelope that accompanies a list response.
type Pagination struct {
	Total       int
	PerPage     int
	CurrentPage int
	LastPage    int
	From        int
	To          int
	NextPageURL string
	PrevPageURL string
}

func newPagination(o Object) Pagination {
	return Pagination{
		Total:       o.Int("total"),
		PerPage:     o.Int("per_page"),
		CurrentPage: o.Int("current_page"),
		LastPage:    o.Int("last_page"),
		From:        o.Int("from"),
		To:          o.Int("to"),
		NextPageURL: o.String("next_page_url"),
		PrevPageURL: o.String("prev_page_url"),
	}
}

// pageOf returns the Pagination for a response that was a bare array, which
// is always a single page holding every item.
func pageOf(items []Object) Pagination {
	p := Pagination{
		Total:       len(items),
		PerPage:     len(items),
		CurrentPage: 1,
		LastPage:    1,
	}

	if len(items) > 0 {
		p.From = 1
		p.To = len(items)
	}
	return p
}

// HasNext reports whether there is a page after the current one.
func (p Pagination) HasNext() bool { return p.NextPageURL != "" || p.CurrentPage < p.LastPage }

// HasPrev reports whether there is a page before the current one.
func (p Pagination) HasPrev() bool { return p.PrevPageURL != "" || p.CurrentPage > 1 }
