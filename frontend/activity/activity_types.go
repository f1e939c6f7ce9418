package activity

import (
	"teamdash/frontend/exports"
	"teamdash/frontend/shared/nav"
)

// Entry is one audit row prepared for display.
type Entry struct {
	When    string
	Action  string
	UserID  string
	Summary string
}

type PageData struct {
	Nav     nav.TopNavData
	Entries []Entry
	Exports []exports.ExportRun
}
