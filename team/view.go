package team

import (
	"slices"
	"strings"
)

// PageSize is the fixed number of rows per table page.
const PageSize = 5

// Column identifies a table column.
type Column string

const (
	ColumnID      Column = "id"
	ColumnName    Column = "name"
	ColumnEmail   Column = "email"
	ColumnRole    Column = "role"
	ColumnStatus  Column = "status"
	ColumnActions Column = "actions"
)

// Columns is the table column order.
var Columns = []Column{ColumnID, ColumnName, ColumnEmail, ColumnRole, ColumnStatus, ColumnActions}

func (c Column) Sortable() bool {
	switch c {
	case ColumnName, ColumnEmail, ColumnRole, ColumnStatus:
		return true
	default:
		return false
	}
}

// Editable reports whether the column renders an input while its row is being edited.
func (c Column) Editable() bool {
	return c.Sortable()
}

func (c Column) Header() string {
	switch c {
	case ColumnID:
		return "ID"
	case ColumnName:
		return "Name"
	case ColumnEmail:
		return "Email"
	case ColumnRole:
		return "Role"
	case ColumnStatus:
		return "Status"
	case ColumnActions:
		return "Actions"
	default:
		return string(c)
	}
}

func ParseColumn(s string) (Column, bool) {
	for _, c := range Columns {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func (c Column) value(u User) string {
	switch c {
	case ColumnName:
		return u.Name
	case ColumnEmail:
		return u.Email
	case ColumnRole:
		return string(u.Role)
	case ColumnStatus:
		return string(u.Status)
	default:
		return ""
	}
}

type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ViewState is the filter, sort and pagination state of the table.
type ViewState struct {
	SearchTerm    string        `json:"searchTerm"`
	RoleFilter    Role          `json:"roleFilter"`
	SortColumn    Column        `json:"sortColumn"`
	SortDirection SortDirection `json:"sortDirection"`
	PageIndex     int           `json:"pageIndex"`
}

// ToggleSort cycles the column through ascending, descending and unsorted.
// A different column always starts ascending. Non-sortable columns leave the state as is.
func (v ViewState) ToggleSort(c Column) ViewState {
	if !c.Sortable() {
		return v
	}
	if v.SortColumn != c || v.SortDirection == SortNone {
		v.SortColumn = c
		v.SortDirection = SortAsc
		return v
	}
	if v.SortDirection == SortAsc {
		v.SortDirection = SortDesc
		return v
	}
	v.SortColumn = ""
	v.SortDirection = SortNone
	return v
}

// Next moves forward one page unless already on the last page.
func (v ViewState) Next(pageCount int) ViewState {
	if v.PageIndex+1 < pageCount {
		v.PageIndex++
	}
	return v
}

func (v ViewState) Prev() ViewState {
	if v.PageIndex > 0 {
		v.PageIndex--
	}
	return v
}

// Filter keeps users whose name contains term (case-insensitive) and whose role matches role, if set.
func Filter(users []User, term string, role Role) []User {
	needle := strings.ToLower(term)
	out := make([]User, 0, len(users))
	for _, u := range users {
		if !strings.Contains(strings.ToLower(u.Name), needle) {
			continue
		}
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Sort returns a stably sorted copy of users. Ties keep their input order in both directions.
func Sort(users []User, c Column, dir SortDirection) []User {
	out := slices.Clone(users)
	if !c.Sortable() || dir == SortNone {
		return out
	}
	sign := 1
	if dir == SortDesc {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b User) int {
		return sign * strings.Compare(strings.ToLower(c.value(a)), strings.ToLower(c.value(b)))
	})
	return out
}

// Paginate returns the page window at pageIndex and the total page count.
func Paginate(users []User, pageIndex, pageSize int) ([]User, int) {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	pageCount := (len(users) + pageSize - 1) / pageSize
	start := pageIndex * pageSize
	if pageIndex < 0 || start >= len(users) {
		return []User{}, pageCount
	}
	end := min(start+pageSize, len(users))
	return slices.Clone(users[start:end]), pageCount
}

// Page is one rendered window of the derived view.
type Page struct {
	Rows          []User `json:"rows"`
	PageIndex     int    `json:"pageIndex"`
	PageCount     int    `json:"pageCount"`
	FilteredCount int    `json:"filteredCount"`
	CanPrev       bool   `json:"canPrev"`
	CanNext       bool   `json:"canNext"`
}

// Derive applies filter, sort and pagination in that order.
func Derive(users []User, v ViewState) Page {
	filtered := Filter(users, v.SearchTerm, v.RoleFilter)
	sorted := Sort(filtered, v.SortColumn, v.SortDirection)
	rows, pageCount := Paginate(sorted, v.PageIndex, PageSize)
	return Page{
		Rows:          rows,
		PageIndex:     v.PageIndex,
		PageCount:     pageCount,
		FilteredCount: len(filtered),
		CanPrev:       v.PageIndex > 0,
		CanNext:       v.PageIndex+1 < pageCount,
	}
}
