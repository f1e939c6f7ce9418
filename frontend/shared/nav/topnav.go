package nav

import sessioncontext "teamdash/frontend/shared/context"

// TopNavData is shared with page renderers.
type TopNavData struct {
	Username string
	Role     string
	Active   string
}

// Link is one sidebar entry.
type Link struct {
	Href  string
	Label string
	Key   string
}

var Links = []Link{
	{Href: "/team", Label: "Dashboard", Key: "dashboard"},
	{Href: "/team/activity", Label: "Activity", Key: "activity"},
	{Href: "/team/exports/roster.csv", Label: "Export CSV", Key: "export-csv"},
	{Href: "/team/exports/roster.pdf", Label: "Export PDF", Key: "export-pdf"},
}

func BuildTopNavData(viewer sessioncontext.Viewer, active string) TopNavData {
	return TopNavData{Username: viewer.Name, Role: viewer.Role, Active: active}
}
