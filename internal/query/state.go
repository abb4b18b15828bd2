package query

import (
	"sort"
	"strings"
)

// Status is the lifecycle of one list query
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// FilterAll is the filter value meaning "no filter"
const FilterAll = "all"

// Filters narrows a list query, e.g. categoryId for products
type Filters map[string]string

// String is the canonical encoding used in query keys
func (f Filters) String() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(f[k])
	}
	return b.String()
}

func (f Filters) clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Key identifies one cached query
type Key struct {
	Resource string
	Page     int
	Filters  string
}

// State is a snapshot of a list controller
type State[T any] struct {
	Key         Key
	Status      Status
	Items       []T
	CurrentPage int
	TotalPages  int
	Err         error
}

// Empty reports a successful query with no items
func (s State[T]) Empty() bool {
	return s.Status == Success && len(s.Items) == 0
}
