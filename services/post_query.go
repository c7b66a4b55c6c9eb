package services

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"blog-service/models"
	"blog-service/repositories"
)

const (
	minSummaryLimit = 5
	ellipsis        = " ..."

	// maxPageIndex keeps page*size within a 32-bit offset.
	maxPageIndex = math.MaxInt32 / repositories.MaxPageSize
)

var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"author":    "author",
	"createdAt": "created_at",
}

// PostQuery is a validated listing request.
type PostQuery struct {
	Filter       repositories.PostFilter
	Page         repositories.Pageable
	SummaryLimit *int

	key string
}

// CacheKey identifies the query in the listing cache.
func (q PostQuery) CacheKey() string {
	return q.key
}

// BuildPostQuery validates the listing parameters and turns them into a filter,
// a page request and an optional summary limit.
func BuildPostQuery(params models.PostListParams) (PostQuery, error) {
	var filters []repositories.PostFilter
	key := url.Values{}

	if tag := strings.TrimSpace(params.Tag); tag != "" {
		filters = append(filters, repositories.ByTag{Name: tag})
		key.Set("tag", tag)
	}

	if params.Parity != "" {
		switch strings.ToLower(params.Parity) {
		case "even":
			filters = append(filters, repositories.ByParity{Even: true})
			key.Set("parity", "even")
		case "odd":
			filters = append(filters, repositories.ByParity{Even: false})
			key.Set("parity", "odd")
		default:
			return PostQuery{}, models.ValidationError("Parity must be either 'even' or 'odd'")
		}
	}

	if params.SummaryLimit != nil {
		if *params.SummaryLimit < minSummaryLimit {
			return PostQuery{}, models.ValidationError(fmt.Sprintf("Summary limit must be at least %d", minSummaryLimit))
		}
		key.Set("summaryLimit", strconv.Itoa(*params.SummaryLimit))
	}

	page, err := buildPageable(params)
	if err != nil {
		return PostQuery{}, err
	}
	key.Set("page", strconv.Itoa(page.Page))
	key.Set("size", strconv.Itoa(page.Size))
	key.Set("sort", page.SortColumn+","+strconv.FormatBool(page.SortDesc))

	return PostQuery{
		Filter:       repositories.And(filters...),
		Page:         page,
		SummaryLimit: params.SummaryLimit,
		key:          key.Encode(),
	}, nil
}

func buildPageable(params models.PostListParams) (repositories.Pageable, error) {
	if params.Page < 0 {
		return repositories.Pageable{}, models.ValidationError("Page index must not be negative")
	}
	if params.Page > maxPageIndex {
		return repositories.Pageable{}, models.ValidationError(fmt.Sprintf("Page index must not exceed %d", maxPageIndex))
	}

	size := params.Size
	if size == 0 {
		size = repositories.DefaultPageSize
	}
	if size < 0 || size > repositories.MaxPageSize {
		return repositories.Pageable{}, models.ValidationError(
			fmt.Sprintf("Page size must be between 1 and %d", repositories.MaxPageSize))
	}

	page := repositories.Pageable{Page: params.Page, Size: size, SortColumn: "id"}
	if params.Sort == "" {
		return page, nil
	}

	field, direction, _ := strings.Cut(params.Sort, ",")
	column, ok := sortColumns[strings.TrimSpace(field)]
	if !ok {
		return repositories.Pageable{}, models.ValidationError("Unsupported sort field: " + field)
	}
	page.SortColumn = column

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "asc":
	case "desc":
		page.SortDesc = true
	default:
		return repositories.Pageable{}, models.ValidationError("Sort direction must be 'asc' or 'desc'")
	}

	return page, nil
}

// Summarize shortens text to at most limit characters, ending in " ...".
// Text that already fits is returned unchanged.
func Summarize(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
