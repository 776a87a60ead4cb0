package pagination

// Params selects a page of a listing. A zero PageSize means everything on a single page.
type Params struct {
	Page     int
	PageSize int
}

func (p Params) CalculateOffsetLimit() (offset, limit int) {
	if p.PageSize <= 0 {
		return 0, 0
	}
	page := max(p.Page, 1)
	return (page - 1) * p.PageSize, p.PageSize
}

func (p Params) BuildMeta(totalItems int) Meta {
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = (totalItems + p.PageSize - 1) / p.PageSize
	} else if totalItems > 0 {
		totalPages = 1
	}
	return Meta{
		Page:       max(p.Page, 1),
		PageSize:   p.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Apply returns the requested page of items and its metadata. Pages past the end are empty.
func Apply[T any](p Params, items []T) ([]T, Meta) {
	meta := p.BuildMeta(len(items))

	offset, limit := p.CalculateOffsetLimit()
	if limit == 0 {
		return items, meta
	}

	if offset >= len(items) {
		return []T{}, meta
	}

	end := min(offset+limit, len(items))
	return items[offset:end], meta
}
