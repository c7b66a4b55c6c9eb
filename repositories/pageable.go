package repositories

import "gorm.io/gorm/clause"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pageable selects one page of an ordered result set. Page is zero based.
type Pageable struct {
	Page       int
	Size       int
	SortColumn string
	SortDesc   bool
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

func (p Pageable) order() clause.OrderByColumn {
	column := p.SortColumn
	if column == "" {
		column = "id"
	}
	return clause.OrderByColumn{
		Column: clause.Column{Table: "posts", Name: column},
		Desc:   p.SortDesc,
	}
}

// TotalPages returns the number of pages needed for total rows.
func (p Pageable) TotalPages(total int64) int {
	if p.Size <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}
