package search

// Page is one slice of a ranked result set.
type Page struct {
	Properties []*Property `json:"properties"`
	Total      int         `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}

// Paginate cuts [offset, offset+limit) out of ranked. An offset past the end
// gives an empty page, never an error. Negative inputs are treated as 0.
func Paginate(ranked []*Property, limit, offset int) Page {
	limit = max(limit, 0)
	offset = max(offset, 0)
	total := len(ranked)

	page := Page{
		Properties: []*Property{},
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}
	if offset >= total || limit == 0 {
		return page
	}

	end := total
	if limit < total-offset {
		end = offset + limit
	}
	page.Properties = ranked[offset:end:end]
	return page
}
