package movie

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 2000
)

type Direction string

const (
	ASC  Direction = "asc"
	DESC Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" in any case.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case ASC:
		return ASC, true
	case DESC:
		return DESC, true
	}
	return "", false
}

type Order struct {
	Property  string
	Direction Direction
}

func (o Order) Desc() bool {
	return o.Direction == DESC
}

// Sort is an ordered list of orders; earlier entries take precedence.
type Sort []Order

func By(property string, direction Direction) Sort {
	return Sort{{Property: property, Direction: direction}}
}

func (s Sort) Has(property string) bool {
	return slices.ContainsFunc(s, func(o Order) bool { return o.Property == property })
}

// WithTiebreak appends an ascending order on property unless the sort
// already contains it, so that pages over equal keys stay stable.
func (s Sort) WithTiebreak(property string) Sort {
	if s.Has(property) {
		return s
	}
	out := make(Sort, 0, len(s)+1)
	out = append(out, s...)
	return append(out, Order{Property: property, Direction: ASC})
}

type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset is the index of the first element of the page. It saturates at
// math.MaxInt instead of overflowing for very large page numbers.
func (r PageRequest) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

func (r PageRequest) Limit() int {
	return r.Size
}

// PageDefaults is merged into every listing request before it reaches a
// repository.
type PageDefaults struct {
	Size     int
	MaxSize  int
	Sort     Sort
	Sortable []string
}

func DefaultPageDefaults() PageDefaults {
	return PageDefaults{
		Size:     DefaultPageSize,
		MaxSize:  MaxPageSize,
		Sort:     By(SortByTitle, ASC),
		Sortable: SortableProperties,
	}
}

// Apply returns req with every unset or out of range value replaced: a
// negative page becomes 0, a non-positive size becomes the default size, an
// oversized page is clamped, unknown or repeated sort properties are dropped
// and an empty sort becomes the default sort. Apply is idempotent.
func (d PageDefaults) Apply(req PageRequest) PageRequest {
	size := d.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	maxSize := d.MaxSize
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	sortable := d.Sortable
	if len(sortable) == 0 {
		sortable = SortableProperties
	}

	out := PageRequest{Page: req.Page, Size: req.Size}
	if out.Page < 0 {
		out.Page = 0
	}
	if out.Size <= 0 {
		out.Size = size
	}
	if out.Size > maxSize {
		out.Size = maxSize
	}

	for _, o := range req.Sort {
		if !slices.Contains(sortable, o.Property) {
			continue
		}
		if out.Sort.Has(o.Property) {
			continue
		}
		if o.Direction != DESC {
			o.Direction = ASC
		}
		out.Sort = append(out.Sort, o)
	}
	if len(out.Sort) == 0 {
		out.Sort = append(Sort(nil), d.Sort...)
	}
	if len(out.Sort) == 0 {
		out.Sort = By(SortByTitle, ASC)
	}

	return out
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
	}
}

// EmptyPage keeps the requested position and reports no elements.
func EmptyPage[T any](req PageRequest) Page[T] {
	return NewPage[T](nil, req, 0)
}

// PageOf cuts the page described by req out of an already ordered slice.
func PageOf[T any](all []T, req PageRequest) Page[T] {
	total := int64(len(all))
	start := req.Offset()
	if req.Size <= 0 || start >= len(all) || start < 0 {
		return NewPage[T](nil, req, total)
	}
	end := min(start+req.Size, len(all))
	content := make([]T, end-start)
	copy(content, all[start:end])
	return NewPage(content, req, total)
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page[T]) IsFirst() bool {
	return p.Number == 0
}

func (p Page[T]) HasNext() bool {
	return p.Number >= 0 && p.Number < p.TotalPages()-1
}

func (p Page[T]) IsLast() bool {
	return !p.HasNext()
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 0
}

// SortMovies orders movies in place. Unknown properties are ignored.
func SortMovies(movies []Movie, s Sort) {
	s = s.WithTiebreak(SortByID)
	slices.SortStableFunc(movies, func(a, b Movie) int {
		for _, o := range s {
			var c int
			switch o.Property {
			case SortByID:
				c = cmp.Compare(a.ID, b.ID)
			case SortByTitle:
				c = compareFolded(a.Title, b.Title)
			case SortByReleaseYear:
				c = cmp.Compare(a.ReleaseYear, b.ReleaseYear)
			case SortByRuntime:
				c = cmp.Compare(a.Runtime, b.Runtime)
			}
			if o.Desc() {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

// SortGenres orders genres by name, then id.
func SortGenres(genres []Genre, s Sort) {
	desc := len(s) > 0 && s[0].Property == GenreSortByName && s[0].Desc()
	slices.SortStableFunc(genres, func(a, b Genre) int {
		c := compareFolded(a.Name, b.Name)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// compareFolded orders text the way the SQL store does with
// LOWER(column) COLLATE "C": case-insensitively, then by code point.
func compareFolded(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
