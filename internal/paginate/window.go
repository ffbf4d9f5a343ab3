// Package paginate derives the bounded run of page numbers a pagination
// control displays for a given position in a multi-page listing.
package paginate

// maxVisible is the fixed number of page buttons shown at once
const maxVisible = 5

// Window is a contiguous run of visible page numbers plus flags for the
// ellipses separating it from the always-visible first and last pages.
type Window struct {
	Pages            []int
	LeadingEllipsis  bool
	TrailingEllipsis bool
}

// ShowFirst reports whether page 1 must be rendered before the window
func (w Window) ShowFirst() bool {
	return len(w.Pages) > 0 && w.Pages[0] > 1
}

// ShowLast reports whether the last page must be rendered after the window,
// given the total page count the window was derived from.
func (w Window) ShowLast(totalPages int) bool {
	return len(w.Pages) > 0 && w.Pages[len(w.Pages)-1] < totalPages
}

// Compute derives the visible window for the current page. The window is
// centered on the current page, biased toward the nearest edge when the
// current page sits within half a window of it. Page 1 and the last page
// are shown outside the window when not already included; a gap of exactly
// one page is absorbed into the window instead of being hidden behind an
// ellipsis.
func Compute(currentPage, totalPages int) Window {
	if totalPages < 1 {
		return Window{}
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	half := maxVisible / 2

	start := currentPage - half
	if start < 1 {
		start = 1
	}
	end := currentPage + half
	if end > totalPages {
		end = totalPages
	}

	if currentPage <= half {
		end = min(totalPages, maxVisible)
	}
	if currentPage > totalPages-half {
		start = max(1, totalPages-maxVisible+1)
	}

	// A gap of exactly one page between the window and an edge page is
	// shown as the page number itself, never as an ellipsis.
	if start == 3 {
		start = 2
	}
	if end == totalPages-2 {
		end = totalPages - 1
	}

	w := Window{
		LeadingEllipsis:  start > 2,
		TrailingEllipsis: end < totalPages-1,
	}
	for p := start; p <= end; p++ {
		w.Pages = append(w.Pages, p)
	}
	return w
}
