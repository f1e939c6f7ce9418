package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"teamdash/frontend/shared/html"
	"teamdash/team"
)

func DashboardPage(data PageData) templ.Component {
	return html.Layout("Team Dashboard", data.Nav, dashboardBody(data))
}

func dashboardBody(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := html.NewWriter(w)
		m := data.Model

		if data.ErrorMessage != "" {
			hw.Raw(`<div class="alert alert-error">`)
			hw.Text(data.ErrorMessage)
			hw.Raw(`</div>`)
		}
		if data.Status != "" {
			hw.Raw(`<div class="alert alert-ok">`)
			hw.Text(data.Status)
			hw.Raw(`</div>`)
		}

		hw.Raw(`<div class="card charts">`)
		hw.Component(ctx, PieChart("Users by Role", m.RoleCounts, RolePalette, RoleBorders))
		hw.Component(ctx, PieChart("Users by Status", m.StatusCounts, StatusPalette, StatusBorders))
		hw.Raw(`</div>`)

		hw.Raw(`<div class="card">`)
		writeToolbar(hw, m.View)
		writeTable(hw, m)
		writePager(hw, m.Page)
		hw.Raw(`</div>`)

		if m.FormOpen {
			writeCreateDialog(hw, m.Form, m.FormError)
		}
		if m.Loading {
			wait := m.LoadingRemaining.Milliseconds() + 50
			hw.Rawf(`<script>setTimeout(function () { window.location.reload(); }, %d);</script>`, wait)
		}
		return hw.Err()
	})
}

func writeToolbar(hw *html.Writer, v team.ViewState) {
	hw.Raw(`<div class="toolbar"><form method="post" action="/team/filter">`)
	hw.Raw(`<input type="text" name="q" placeholder="Search by name"`)
	hw.Attr("value", v.SearchTerm)
	hw.Raw(`><select name="role" onchange="this.form.submit()">`)
	writeOption(hw, "", "All Roles", v.RoleFilter == "")
	for _, r := range team.FilterRoles {
		writeOption(hw, string(r), string(r), v.RoleFilter == r)
	}
	hw.Raw(`</select><button type="submit" class="btn btn-plain">Search</button></form>`)
	hw.Raw(`<form method="post" action="/team/dialog/open"><button type="submit" class="btn btn-blue">Add User</button></form></div>`)
}

func writeOption(hw *html.Writer, value, label string, selected bool) {
	hw.Raw(`<option`)
	hw.Attr("value", value)
	hw.BoolAttr("selected", selected)
	hw.Raw(`>`)
	hw.Text(label)
	hw.Raw(`</option>`)
}

func writeTable(hw *html.Writer, m team.Model) {
	hw.Raw(`<table><thead><tr>`)
	for _, c := range team.Columns {
		hw.Raw(`<th scope="col">`)
		if !c.Sortable() {
			hw.Text(c.Header())
			hw.Raw(`</th>`)
			continue
		}
		hw.Raw(`<form method="post"`)
		hw.Attr("action", "/team/sort/"+string(c))
		hw.Raw(`><button type="submit">`)
		hw.Text(c.Header())
		if m.View.SortColumn == c {
			switch m.View.SortDirection {
			case team.SortAsc:
				hw.Raw(` <span>↑</span>`)
			case team.SortDesc:
				hw.Raw(` <span>↓</span>`)
			}
		}
		hw.Raw(`</button></form></th>`)
	}
	hw.Raw(`</tr></thead><tbody>`)

	switch {
	case m.Loading:
		hw.Rawf(`<tr><td class="empty" colspan="%d">Loading...</td></tr>`, len(team.Columns))
	case len(m.Page.Rows) == 0:
		hw.Rawf(`<tr><td class="empty" colspan="%d">No users found.</td></tr>`, len(team.Columns))
	default:
		for _, u := range m.Page.Rows {
			if m.Edit.Editable(u.ID) {
				writeEditRow(hw, u, m.Edit.Scratch())
				continue
			}
			writeRow(hw, u, m.Edit.Locked(u.ID))
		}
	}
	hw.Raw(`</tbody></table>`)
}

func writeRow(hw *html.Writer, u team.User, locked bool) {
	hw.Rawf(`<tr><td>%d</td><td>`, u.ID)
	hw.Text(u.Name)
	hw.Raw(`</td><td>`)
	hw.Text(u.Email)
	hw.Raw(`</td><td>`)
	hw.Text(string(u.Role))
	hw.Raw(`</td><td>`)
	hw.Text(string(u.Status))
	hw.Raw(`</td><td class="actions">`)
	hw.Rawf(`<form method="post" action="/team/users/%d/edit"><button type="submit" class="btn btn-blue"`, u.ID)
	hw.BoolAttr("disabled", locked)
	hw.Raw(`>Edit</button></form>`)
	writeDeleteLink(hw, u.ID)
	hw.Rawf(`<a class="btn btn-plain" href="/team/users/%d/card.pdf">Card</a>`, u.ID)
	hw.Raw(`</td></tr>`)
}

// writeEditRow renders inputs bound to the save form by id; changes are also
// posted to the scratch endpoint so a reload keeps them.
func writeEditRow(hw *html.Writer, u team.User, s team.Scratch) {
	formID := fmt.Sprintf("edit-row-%d", u.ID)
	scratchURL := fmt.Sprintf("/team/users/%d/scratch", u.ID)

	hw.Rawf(`<tr class="editing"><td>%d</td>`, u.ID)
	writeTextCell(hw, formID, scratchURL, team.ColumnName, s.Name)
	writeTextCell(hw, formID, scratchURL, team.ColumnEmail, s.Email)

	hw.Raw(`<td>`)
	writeSelectOpen(hw, formID, scratchURL, team.ColumnRole)
	for _, r := range team.Roles {
		writeOption(hw, string(r), string(r), s.Role == r)
	}
	hw.Raw(`</select></td><td>`)
	writeSelectOpen(hw, formID, scratchURL, team.ColumnStatus)
	for _, st := range team.Statuses {
		writeOption(hw, string(st), string(st), s.Status == st)
	}
	hw.Raw(`</select></td>`)

	hw.Raw(`<td class="actions">`)
	hw.Rawf(`<form method="post" action="/team/users/%d/save"`, u.ID)
	hw.Attr("id", formID)
	hw.Raw(`><button type="submit" class="btn btn-green">Save</button></form>`)
	hw.Rawf(`<form method="post" action="/team/users/%d/cancel"><button type="submit" class="btn btn-gray">Cancel</button></form>`, u.ID)
	writeDeleteLink(hw, u.ID)
	hw.Raw(`</td></tr>`)
}

// writeDeleteLink is rendered in both edit states; only Edit is locked.
func writeDeleteLink(hw *html.Writer, id int64) {
	hw.Rawf(`<a class="btn btn-red" href="/team/users/%d/delete">Delete</a>`, id)
}

func writeTextCell(hw *html.Writer, formID, scratchURL string, c team.Column, value string) {
	hw.Raw(`<td><input type="text"`)
	hw.Attr("form", formID)
	hw.Attr("name", string(c))
	hw.Attr("value", value)
	hw.Attr("onchange", fmt.Sprintf("postField('%s', '%s', this.value)", scratchURL, c))
	hw.Raw(`></td>`)
}

func writeSelectOpen(hw *html.Writer, formID, scratchURL string, c team.Column) {
	hw.Raw(`<select`)
	hw.Attr("form", formID)
	hw.Attr("name", string(c))
	hw.Attr("onchange", fmt.Sprintf("postField('%s', '%s', this.value)", scratchURL, c))
	hw.Raw(`>`)
}

func writePager(hw *html.Writer, p team.Page) {
	hw.Raw(`<div class="pager"><div>`)
	hw.Textf("Page %d of %d", p.PageIndex+1, p.PageCount)
	hw.Raw(`</div><div class="actions">`)
	hw.Raw(`<form method="post" action="/team/page/prev"><button type="submit" class="btn btn-plain"`)
	hw.BoolAttr("disabled", !p.CanPrev)
	hw.Raw(`>Previous</button></form>`)
	hw.Raw(`<form method="post" action="/team/page/next"><button type="submit" class="btn btn-plain"`)
	hw.BoolAttr("disabled", !p.CanNext)
	hw.Raw(`>Next</button></form></div></div>`)
}

func writeCreateDialog(hw *html.Writer, f team.CreateForm, formError string) {
	hw.Raw(`<div class="modal" role="dialog" aria-modal="true"><div class="modal-box"><h2>Add New User</h2>`)
	if formError != "" {
		hw.Raw(`<div class="alert alert-error">`)
		hw.Text(formError)
		hw.Raw(`</div>`)
	}
	hw.Raw(`<form method="post" action="/team/users">`)
	hw.Raw(`<label for="new-name">Name</label><input id="new-name" type="text" name="name"`)
	hw.Attr("value", f.Name)
	hw.Raw(`><label for="new-email">Email</label><input id="new-email" type="email" name="email"`)
	hw.Attr("value", f.Email)
	hw.Raw(`><label for="new-role">Role</label><select id="new-role" name="role">`)
	for _, r := range team.Roles {
		writeOption(hw, string(r), string(r), f.Role == r)
	}
	hw.Raw(`</select><label for="new-status">Status</label><select id="new-status" name="status">`)
	for _, st := range team.Statuses {
		writeOption(hw, string(st), string(st), f.Status == st)
	}
	hw.Raw(`</select><div class="modal-actions">`)
	hw.Raw(`<button type="submit" class="btn btn-blue">Add User</button>`)
	hw.Raw(`<button type="submit" class="btn btn-gray" formaction="/team/dialog/close">Cancel</button>`)
	hw.Raw(`</div></form></div></div>`)
}

// DeleteConfirmPage asks before a user is removed.
func DeleteConfirmPage(data DeleteConfirmData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := html.NewWriter(w)
		u := data.User
		hw.Raw(`<div class="card"><h2>Delete user</h2><p>Are you sure you want to delete `)
		hw.Text(u.Name)
		hw.Raw(` (`)
		hw.Text(u.Email)
		hw.Raw(`)?</p>`)
		hw.Rawf(`<form method="post" action="/team/users/%d/delete" class="actions">`, u.ID)
		hw.Raw(`<button type="submit" name="confirm" value="yes" class="btn btn-red">Delete</button>`)
		hw.Raw(`<button type="submit" name="confirm" value="no" class="btn btn-gray">Cancel</button>`)
		hw.Raw(`</form></div>`)
		return hw.Err()
	})
	return html.Layout("Delete user", data.Nav, body)
}
