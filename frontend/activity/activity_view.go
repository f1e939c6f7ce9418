package activity

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"teamdash/frontend/shared/html"
)

func ActivityPage(data PageData) templ.Component {
	return html.Layout("Activity", data.Nav, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := html.NewWriter(w)

		hw.Raw(`<div class="card"><h2>Recent changes</h2>`)
		if len(data.Entries) == 0 {
			hw.Raw(`<p class="empty">No changes yet.</p>`)
		} else {
			hw.Raw(`<table><thead><tr><th>When</th><th>Action</th><th>User</th><th>Details</th></tr></thead><tbody>`)
			for _, e := range data.Entries {
				hw.Raw(`<tr><td>`)
				hw.Text(e.When)
				hw.Raw(`</td><td>`)
				hw.Text(e.Action)
				hw.Raw(`</td><td>#`)
				hw.Text(e.UserID)
				hw.Raw(`</td><td>`)
				hw.Text(e.Summary)
				hw.Raw(`</td></tr>`)
			}
			hw.Raw(`</tbody></table>`)
		}
		hw.Raw(`</div>`)

		hw.Raw(`<div class="card"><h2>Exports</h2>`)
		if len(data.Exports) == 0 {
			hw.Raw(`<p class="empty">No exports yet.</p>`)
		} else {
			hw.Raw(`<table><thead><tr><th>When</th><th>Type</th><th>Rows</th></tr></thead><tbody>`)
			for _, run := range data.Exports {
				hw.Raw(`<tr><td>`)
				hw.Text(run.CreatedAt)
				hw.Raw(`</td><td>`)
				hw.Text(run.ExportType)
				hw.Rawf(`</td><td>%d</td></tr>`, run.RowCount)
			}
			hw.Raw(`</tbody></table>`)
		}
		hw.Raw(`</div>`)
		return hw.Err()
	}))
}
