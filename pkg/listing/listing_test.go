package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name     string
	Number   string
	Status   string
	Category string
}

var rowAccessors = Accessors[row]{
	SearchFields: func(r row) []string { return []string{r.Name, r.Number} },
	Status:       func(r row) string { return r.Status },
	Category:     func(r row) string { return r.Category },
}

func sampleRows() []row {
	return []row{
		{Name: "Thabo Mokoena", Number: "MEM-001", Status: "active", Category: "gold"},
		{Name: "Naledi Dlamini", Number: "MEM-002", Status: "active", Category: "silver"},
		{Name: "Sipho Ndlovu", Number: "MEM-003", Status: "suspended", Category: "gold"},
		{Name: "Lerato Mokoena", Number: "MEM-004", Status: "cancelled", Category: "bronze"},
	}
}

func TestFilterIntersectsSearchAndFilters(t *testing.T) {
	rows := sampleRows()

	bySearch := Filter(rows, Query{Search: "mokoena"}, rowAccessors)
	require.Len(t, bySearch, 2)

	byStatus := Filter(rows, Query{Status: "active"}, rowAccessors)
	require.Len(t, byStatus, 2)

	both := Filter(rows, Query{Search: "mokoena", Status: "active"}, rowAccessors)
	require.Len(t, both, 1)
	assert.Equal(t, "MEM-001", both[0].Number)

	withCategory := Filter(rows, Query{Search: "MEM", Category: "gold"}, rowAccessors)
	assert.Len(t, withCategory, 2)
}

func TestFilterAllSentinelIsNoOp(t *testing.T) {
	rows := sampleRows()
	assert.Len(t, Filter(rows, Query{Status: "all", Category: "ALL"}, rowAccessors), len(rows))
	assert.Len(t, Filter(rows, Query{}, rowAccessors), len(rows))
}

func TestFilterSearchWithoutFieldsMatchesNothing(t *testing.T) {
	rows := sampleRows()
	assert.Empty(t, Filter(rows, Query{Search: "thabo"}, Accessors[row]{}))
}

func TestPaginateComputesPageCount(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	result := Paginate(items, 3, 10)
	assert.Equal(t, 23, result.Total)
	assert.Equal(t, 3, result.PageCount)
	assert.Equal(t, []int{20, 21, 22}, result.Items)
}

func TestPaginateClampsPage(t *testing.T) {
	items := []int{1, 2, 3}

	high := Paginate(items, 9, 2)
	assert.Equal(t, 2, high.Page)
	assert.Equal(t, []int{3}, high.Items)

	low := Paginate(items, -1, 2)
	assert.Equal(t, 1, low.Page)
	assert.Equal(t, []int{1, 2}, low.Items)

	empty := Paginate([]int{}, 4, 10)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.PageCount)
	assert.Empty(t, empty.Items)
	assert.Empty(t, empty.Buttons)
}

func TestApplyReturnsFilteredTotal(t *testing.T) {
	result := Apply(sampleRows(), Query{Status: "active", Page: 1, PageSize: 1}, rowAccessors)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.PageCount)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "MEM-001", result.Items[0].Number)
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{101, 25, 5},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d/%d", tc.total, tc.size), func(t *testing.T) {
			assert.Equal(t, tc.want, PageCount(tc.total, tc.size))
		})
	}
}

func render(buttons []PageButton) string {
	out := ""
	for _, b := range buttons {
		switch {
		case b.Ellipsis:
			out += "…"
		case b.Current:
			out += fmt.Sprintf("[%d]", b.Page)
		default:
			out += fmt.Sprintf("%d", b.Page)
		}
		out += " "
	}
	return out
}

func TestButtonsWindow(t *testing.T) {
	cases := []struct {
		name      string
		current   int
		pageCount int
		want      string
	}{
		{"few pages", 2, 3, "1 [2] 3 "},
		{"start of many", 1, 10, "[1] 2 3 4 5 … "},
		{"middle", 6, 10, "… 4 5 [6] 7 8 … "},
		{"end", 10, 10, "… 6 7 8 9 [10] "},
		{"near start", 3, 10, "1 2 [3] 4 5 … "},
		{"exactly five", 5, 5, "1 2 3 4 [5] "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, render(Buttons(tc.current, tc.pageCount)))
		})
	}
}
