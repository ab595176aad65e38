package listing

import (
	"infinitech-web/model"
	"slices"
	"strings"
)

const PerPage = 10

const StatusAll = "all"

type Query struct {
	Search   string
	Status   string
	Industry string
	Page     int
}

type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// Paginate cuts one page of PerPage items out of items. A page below 1 is
// read as the first page and a page past the end as the last one.
func Paginate[T any](items []T, page int) Page[T] {
	total := len(items)
	totalPages := (total + PerPage - 1) / PerPage

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PerPage
	end := min(start+PerPage, total)
	if start > total {
		start = total
	}

	return Page[T]{
		Items:      slices.Clone(items[start:end]),
		Page:       page,
		PerPage:    PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

func matchesAny(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func matchesStatus(filter, status string) bool {
	return filter == "" || filter == StatusAll || filter == status
}

func newestFirst(a, b string) int {
	return model.ParseTimestamp(b).Compare(model.ParseTimestamp(a))
}
