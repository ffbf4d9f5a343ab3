// Package query holds the search/filter/pagination criteria for expense
// listings and derives the canonical query representation shared by the
// HTTP gateway and the address-bar mirror.
package query

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPage is the page a fresh or cleared filter starts on
	DefaultPage = 1
	// DefaultLimit is the page size a fresh or cleared filter uses
	DefaultLimit = 10
)

// AllowedLimits enumerates the selectable page sizes
var AllowedLimits = []int{5, 10, 20, 50}

// Filter is the single source of truth for "what subset of expenses does
// the user want to see". Empty string fields mean "any".
type Filter struct {
	Search    string
	Status    string
	Category  string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// New returns a filter with default pagination and no criteria
func New() Filter {
	return Filter{Page: DefaultPage, Limit: DefaultLimit}
}

// Set assigns one filter field by name. Page and limit values are parsed
// as integers, falling back to their defaults when the value does not
// parse. Changing the limit resets the page to 1 because the old page
// offset is meaningless under a new page size. Unknown names are ignored.
func (f *Filter) Set(name, value string) {
	switch name {
	case "search":
		f.Search = value
	case "status":
		f.Status = value
	case "category":
		f.Category = value
	case "startDate":
		f.StartDate = value
	case "endDate":
		f.EndDate = value
	case "page":
		f.Page = parseIntOr(value, DefaultPage)
		if f.Page < 1 {
			f.Page = DefaultPage
		}
	case "limit":
		f.Limit = normalizeLimit(parseIntOr(value, DefaultLimit))
		f.Page = DefaultPage
	}
}

// Clear resets every field to its default. The search key keeps its
// presence in the struct but its value is emptied.
func (f *Filter) Clear() {
	*f = New()
}

// ClampPage bounds the page into [1, totalPages] once pagination metadata
// is known. A non-positive totalPages leaves the page at 1.
func (f *Filter) ClampPage(totalPages int) {
	if f.Page < 1 {
		f.Page = 1
	}
	if totalPages >= 1 && f.Page > totalPages {
		f.Page = totalPages
	}
}

// Values produces the canonical query: a url.Values containing only the
// non-empty fields. Page and limit are always present since they always
// carry a positive value. The same mapping feeds both the outgoing HTTP
// query string and the address-bar mirror.
func (f Filter) Values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "search", f.Search)
	setNonEmpty(v, "status", f.Status)
	setNonEmpty(v, "category", f.Category)
	setNonEmpty(v, "startDate", f.StartDate)
	setNonEmpty(v, "endDate", f.EndDate)
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	return v
}

// FromValues parses a canonical query (for example, read back from the
// address bar on initial load) into filter state. Missing keys keep their
// defaults, so an empty mapping yields the same state as a fresh Clear.
func FromValues(v url.Values) Filter {
	f := New()
	for _, name := range []string{"search", "status", "category", "startDate", "endDate", "limit", "page"} {
		if v.Has(name) {
			f.Set(name, v.Get(name))
		}
	}
	// limit is applied before page above; re-apply page so a mapping
	// carrying both does not lose its page to the limit reset
	if v.Has("page") {
		f.Set("page", v.Get("page"))
	}
	return f
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func parseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func normalizeLimit(n int) int {
	for _, allowed := range AllowedLimits {
		if n == allowed {
			return n
		}
	}
	return DefaultLimit
}
