package html

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"teamdash/frontend/shared/nav"
)

// Layout wraps body in the page shell with the sidebar and top navigation.
func Layout(title string, top nav.TopNavData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		hw.Text(title)
		hw.Raw(`</title><link rel="stylesheet" href="/assets/app.css"></head><body>`)
		hw.Raw(`<div class="shell"><aside class="sidebar"><h2>Team Dashboard</h2><nav>`)
		for _, link := range nav.Links {
			hw.Raw(`<a`)
			hw.Attr("href", link.Href)
			if link.Key == top.Active {
				hw.Attr("class", "active")
			}
			hw.Raw(`>`)
			hw.Text(link.Label)
			hw.Raw(`</a>`)
		}
		hw.Raw(`</nav></aside><main class="content"><header class="topnav"><span class="viewer">`)
		hw.Text(top.Username)
		if top.Role != "" {
			hw.Raw(` <small>`)
			hw.Text(top.Role)
			hw.Raw(`</small>`)
		}
		hw.Raw(`</span></header>`)
		hw.Component(ctx, body)
		hw.Raw(`</main></div>`)
		hw.Raw(CSRFFormScript())
		hw.Raw(`</body></html>`)
		return hw.Err()
	})
}
