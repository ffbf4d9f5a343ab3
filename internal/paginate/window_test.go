package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		pages       []int
		leading     bool
		trailing    bool
	}{
		{"first page of twenty", 1, 20, []int{1, 2, 3, 4, 5}, false, true},
		{"last page of twenty", 20, 20, []int{16, 17, 18, 19, 20}, true, false},
		{"middle of twenty", 10, 20, []int{8, 9, 10, 11, 12}, true, true},
		{"second page right-biases", 2, 20, []int{1, 2, 3, 4, 5}, false, true},
		{"near end left-biases", 19, 20, []int{16, 17, 18, 19, 20}, true, false},
		{"all pages fit", 3, 5, []int{1, 2, 3, 4, 5}, false, false},
		{"single page", 1, 1, []int{1}, false, false},
		{"two pages", 2, 2, []int{1, 2}, false, false},
		{"leading gap of one absorbed", 5, 20, []int{2, 3, 4, 5, 6, 7}, false, true},
		{"trailing gap of one absorbed", 16, 20, []int{14, 15, 16, 17, 18, 19}, true, false},
		{"both gaps wide", 6, 20, []int{4, 5, 6, 7, 8}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Compute(tt.currentPage, tt.totalPages)
			assert.Equal(t, tt.pages, w.Pages)
			assert.Equal(t, tt.leading, w.LeadingEllipsis, "leading ellipsis")
			assert.Equal(t, tt.trailing, w.TrailingEllipsis, "trailing ellipsis")
		})
	}
}

func TestCompute_OutOfRangeInput(t *testing.T) {
	assert.Empty(t, Compute(1, 0).Pages, "no pages without a page count")
	assert.Equal(t, []int{1, 2, 3}, Compute(-4, 3).Pages, "current clamped up")
	assert.Equal(t, []int{1, 2, 3}, Compute(9, 3).Pages, "current clamped down")
}

func TestWindow_EdgePages(t *testing.T) {
	w := Compute(10, 20)
	assert.True(t, w.ShowFirst())
	assert.True(t, w.ShowLast(20))

	w = Compute(1, 20)
	assert.False(t, w.ShowFirst(), "window already includes page 1")
	assert.True(t, w.ShowLast(20))

	w = Compute(20, 20)
	assert.True(t, w.ShowFirst())
	assert.False(t, w.ShowLast(20), "window already includes the last page")
}
