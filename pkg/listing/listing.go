// Package listing implements the in-memory search, filter and pagination used by the admin
// tabs. Everything here is pure: callers hand in the full collection and get a page back.
package listing

import "strings"

const (
	defaultPageSize = 10
	// WindowSize is the maximum number of numbered page buttons.
	WindowSize = 5
)

// Query describes one listing request. Empty Status/Category or the "all" sentinel disable
// the corresponding filter.
type Query struct {
	Search   string
	Status   string
	Category string
	Page     int
	PageSize int
}

// Accessors tell the engine which fields of T participate in each filter. A nil accessor
// makes the corresponding filter a no-op.
type Accessors[T any] struct {
	SearchFields func(T) []string
	Status       func(T) string
	Category     func(T) string
}

// PageButton is one entry of the page selector.
type PageButton struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Result is the visible slice plus paging metadata.
type Result[T any] struct {
	Items     []T          `json:"items"`
	Total     int          `json:"total"`
	Page      int          `json:"page"`
	PageSize  int          `json:"page_size"`
	PageCount int          `json:"page_count"`
	Buttons   []PageButton `json:"buttons"`
}

// Apply filters items and slices out the requested page.
func Apply[T any](items []T, q Query, acc Accessors[T]) Result[T] {
	return Paginate(Filter(items, q, acc), q.Page, q.PageSize)
}

// Filter returns the items matching the search query and the status/category filters.
func Filter[T any](items []T, q Query, acc Accessors[T]) []T {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	status := normalize(q.Status)
	category := normalize(q.Category)

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !matchesSearch(item, needle, acc.SearchFields) {
			continue
		}
		if status != "" && acc.Status != nil && acc.Status(item) != status {
			continue
		}
		if category != "" && acc.Category != nil && acc.Category(item) != category {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// Paginate slices a filtered collection. Out-of-range pages are clamped.
func Paginate[T any](items []T, page, pageSize int) Result[T] {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	total := len(items)
	pageCount := PageCount(total, pageSize)
	if page < 1 {
		page = 1
	}
	if pageCount > 0 && page > pageCount {
		page = pageCount
	}
	if pageCount == 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	visible := make([]T, end-start)
	copy(visible, items[start:end])
	return Result[T]{
		Items:     visible,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
		PageCount: pageCount,
		Buttons:   Buttons(page, pageCount),
	}
}

// PageCount is ceil(total / pageSize).
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Buttons renders at most WindowSize numbered pages centred on current, clamped to
// [1, pageCount], with an ellipsis on each side the window does not reach.
func Buttons(current, pageCount int) []PageButton {
	if pageCount <= 0 {
		return []PageButton{}
	}
	if current < 1 {
		current = 1
	}
	if current > pageCount {
		current = pageCount
	}

	start := current - WindowSize/2
	if start < 1 {
		start = 1
	}
	end := start + WindowSize - 1
	if end > pageCount {
		end = pageCount
		start = end - WindowSize + 1
		if start < 1 {
			start = 1
		}
	}

	buttons := make([]PageButton, 0, WindowSize+2)
	if start > 1 {
		buttons = append(buttons, PageButton{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		buttons = append(buttons, PageButton{Page: p, Current: p == current})
	}
	if end < pageCount {
		buttons = append(buttons, PageButton{Ellipsis: true})
	}
	return buttons
}

func matchesSearch[T any](item T, needle string, fields func(T) []string) bool {
	if fields == nil {
		return false
	}
	for _, field := range fields(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func normalize(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "all") {
		return ""
	}
	return value
}
