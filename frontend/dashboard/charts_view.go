package dashboard

import (
	"context"
	"io"
	"math"

	"github.com/a-h/templ"

	"teamdash/frontend/shared/html"
	"teamdash/team"
)

const (
	pieSize   = 220.0
	pieRadius = 100.0
)

// PieChart draws agg as an SVG pie with a legend. Colors cycle through fills and borders.
func PieChart(title string, agg team.Aggregate, fills, borders []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := html.NewWriter(w)
		hw.Raw(`<section class="chart"><h3>`)
		hw.Text(title)
		hw.Raw(`</h3>`)

		total := agg.Total()
		if total == 0 {
			hw.Raw(`<p class="empty">No data</p></section>`)
			return hw.Err()
		}

		c := pieSize / 2
		hw.Rawf(`<svg viewBox="0 0 %g %g" width="%g" height="%g" role="img"`, pieSize, pieSize, pieSize, pieSize)
		hw.Attr("aria-label", title)
		hw.Raw(`>`)
		start := -math.Pi / 2
		for i, s := range agg {
			fill := fills[i%len(fills)]
			stroke := borders[i%len(borders)]
			if s.Count == total {
				hw.Rawf(`<circle cx="%g" cy="%g" r="%g"`, c, c, pieRadius)
				writePaint(hw, fill, stroke)
				writeSliceTitle(hw, s)
				hw.Raw(`</circle>`)
				break
			}
			sweep := 2 * math.Pi * float64(s.Count) / float64(total)
			end := start + sweep
			large := 0
			if sweep > math.Pi {
				large = 1
			}
			hw.Rawf(`<path d="M %.2f %.2f L %.2f %.2f A %g %g 0 %d 1 %.2f %.2f Z"`,
				c, c,
				c+pieRadius*math.Cos(start), c+pieRadius*math.Sin(start),
				pieRadius, pieRadius, large,
				c+pieRadius*math.Cos(end), c+pieRadius*math.Sin(end))
			writePaint(hw, fill, stroke)
			writeSliceTitle(hw, s)
			hw.Raw(`</path>`)
			start = end
		}
		hw.Raw(`</svg><ul class="legend">`)
		for i, s := range agg {
			hw.Raw(`<li><i`)
			hw.Attr("style", "background:"+fills[i%len(fills)])
			hw.Raw(`></i>`)
			hw.Text(s.Label)
			hw.Textf(" (%d)", s.Count)
			hw.Raw(`</li>`)
		}
		hw.Raw(`</ul></section>`)
		return hw.Err()
	})
}

func writePaint(hw *html.Writer, fill, stroke string) {
	hw.Attr("fill", fill)
	hw.Attr("stroke", stroke)
	hw.Raw(` stroke-width="1">`)
}

func writeSliceTitle(hw *html.Writer, s team.Slice) {
	hw.Raw(`<title>`)
	hw.Textf("%s: %d", s.Label, s.Count)
	hw.Raw(`</title>`)
}
