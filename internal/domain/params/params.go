// Package params holds the filter, sort and pagination state of the user
// list and its query-string encoding. Defaults never appear in the encoded
// form so shared links stay minimal.
package params

import (
	"net/url"
	"strconv"
)

type Filter int

const (
	FilterNone Filter = iota
	FilterOnly
	FilterExclude
)

const (
	KeyActivated = "activated"
	KeyIsAdmin   = "isAdmin"
	KeyOrdering  = "ordering"
	KeySearch    = "search"
	KeyPage      = "page"
	KeyPageSize  = "pageSize"
)

const (
	DefaultOrdering = "name"
	DefaultPage     = 1
	DefaultPageSize = 50

	// MaxPageSize and MaxPage bound the values accepted from a query
	// string. Larger values are malformed and fall back to the defaults,
	// which keeps Offset well inside the int32 range.
	MaxPageSize = 100
	MaxPage     = 1_000_000
)

type FilterParams struct {
	Activated Filter
	IsAdmin   Filter
	Ordering  string
	Search    string
	Page      int
	PageSize  int
}

// Patch is a partial FilterParams; nil fields keep their current value.
type Patch struct {
	Activated *Filter
	IsAdmin   *Filter
	Ordering  *string
	Search    *string
	Page      *int
	PageSize  *int
}

func Defaults() FilterParams {
	return FilterParams{
		Activated: FilterNone,
		IsAdmin:   FilterNone,
		Ordering:  DefaultOrdering,
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
	}
}

// Parse never fails: unknown or malformed values fall back to defaults.
func Parse(v url.Values) FilterParams {
	p := Defaults()

	p.Activated = parseFilter(v.Get(KeyActivated))
	p.IsAdmin = parseFilter(v.Get(KeyIsAdmin))

	if _, ok := v[KeyOrdering]; ok {
		p.Ordering = v.Get(KeyOrdering)
	}
	p.Search = v.Get(KeySearch)
	p.Page = parseBounded(v.Get(KeyPage), MaxPage, DefaultPage)
	p.PageSize = parseBounded(v.Get(KeyPageSize), MaxPageSize, DefaultPageSize)

	return p
}

func Encode(p FilterParams) url.Values {
	def := Defaults()
	v := url.Values{}

	if s, ok := encodeFilter(p.Activated); ok {
		v.Set(KeyActivated, s)
	}
	if s, ok := encodeFilter(p.IsAdmin); ok {
		v.Set(KeyIsAdmin, s)
	}
	if p.Ordering != def.Ordering {
		v.Set(KeyOrdering, p.Ordering)
	}
	if p.Search != def.Search {
		v.Set(KeySearch, p.Search)
	}
	if p.Page != def.Page && p.Page > 0 {
		v.Set(KeyPage, strconv.Itoa(p.Page))
	}
	if p.PageSize != def.PageSize && p.PageSize > 0 {
		v.Set(KeyPageSize, strconv.Itoa(p.PageSize))
	}

	return v
}

func Merge(p FilterParams, patch Patch) FilterParams {
	if patch.Activated != nil {
		p.Activated = *patch.Activated
	}
	if patch.IsAdmin != nil {
		p.IsAdmin = *patch.IsAdmin
	}
	if patch.Ordering != nil {
		p.Ordering = *patch.Ordering
	}
	if patch.Search != nil {
		p.Search = *patch.Search
	}
	if patch.Page != nil {
		p.Page = *patch.Page
	}
	if patch.PageSize != nil {
		p.PageSize = *patch.PageSize
	}
	return p
}

// Limit is PageSize clamped to [1, MaxPageSize].
func (p FilterParams) Limit() int {
	return clamp(p.PageSize, MaxPageSize)
}

// Offset is the zero-based row offset of the first record on the page.
// Page and PageSize outside their bounds are clamped first, so values set
// through a Patch never yield a negative offset.
func (p FilterParams) Offset() int {
	return (clamp(p.Page, MaxPage) - 1) * p.Limit()
}

func parseFilter(s string) Filter {
	switch s {
	case "true":
		return FilterOnly
	case "false":
		return FilterExclude
	default:
		return FilterNone
	}
}

func encodeFilter(f Filter) (string, bool) {
	switch f {
	case FilterOnly:
		return "true", true
	case FilterExclude:
		return "false", true
	default:
		return "", false
	}
}

func parseBounded(s string, max, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > max {
		return def
	}
	return n
}

func clamp(n, max int) int {
	switch {
	case n < 1:
		return 1
	case n > max:
		return max
	default:
		return n
	}
}
