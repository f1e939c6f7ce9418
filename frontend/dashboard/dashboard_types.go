package dashboard

import (
	"teamdash/frontend/shared/nav"
	"teamdash/team"
)

// PageData drives the dashboard page render.
type PageData struct {
	Model        team.Model
	Nav          nav.TopNavData
	Status       string
	ErrorMessage string
}

// DeleteConfirmData drives the delete confirmation page.
type DeleteConfirmData struct {
	User team.User
	Nav  nav.TopNavData
}

// ChartsResponse is the JSON body of the charts endpoint.
type ChartsResponse struct {
	Version  uint64         `json:"version"`
	Total    int            `json:"total"`
	Roles    team.Aggregate `json:"roles"`
	Statuses team.Aggregate `json:"statuses"`
}

// RolePalette and StatusPalette color pie slices in order.
var (
	RolePalette   = []string{"#3B82F6", "#10B981", "#EF4444", "#F59E0B"}
	RoleBorders   = []string{"#1E3A8A", "#065F46", "#991B1B", "#B45309"}
	StatusPalette = []string{"#10B981", "#F59E0B", "#EF4444"}
	StatusBorders = []string{"#065F46", "#B45309", "#991B1B"}
)
