// Package dashboard assembles the management screens: one generic table
// screen per resource plus the writes each screen offers.
package dashboard

import (
	"github.com/karanch577/sneakerx-admin/internal/apiclient"
	"github.com/karanch577/sneakerx-admin/internal/query"
)

// EmptyText is rendered in place of rows when a page has none
const EmptyText = "No data available"

// Column renders one table column
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Row is one rendered record. ID is what row actions act on.
type Row struct {
	ID    string   `json:"id"`
	Cells []string `json:"cells"`
}

// View is the rendered state of a screen
type View struct {
	Status      string   `json:"status"`
	Headers     []string `json:"headers"`
	Rows        []Row    `json:"rows"`
	Empty       string   `json:"empty,omitempty"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
	Error       string   `json:"error,omitempty"`
}

// Screen couples a list controller with its column schema
type Screen[T any] struct {
	List    *query.List[T]
	Columns []Column[T]
	ID      func(T) string
}

// View renders the list's current state
func (s *Screen[T]) View() View {
	st := s.List.State()

	v := View{
		Status:      st.Status.String(),
		Headers:     make([]string, len(s.Columns)),
		Rows:        make([]Row, 0, len(st.Items)),
		CurrentPage: st.CurrentPage,
		TotalPages:  st.TotalPages,
	}
	for i, c := range s.Columns {
		v.Headers[i] = c.Header
	}
	for _, item := range st.Items {
		row := Row{ID: s.ID(item), Cells: make([]string, len(s.Columns))}
		for i, c := range s.Columns {
			row.Cells[i] = c.Value(item)
		}
		v.Rows = append(v.Rows, row)
	}
	if st.Empty() {
		v.Empty = EmptyText
	}
	if st.Status == query.Failure && st.Err != nil {
		v.Error = apiclient.Message(st.Err)
	}
	return v
}

// Close unmounts the screen's list
func (s *Screen[T]) Close() {
	s.List.Close()
}
