package http

import (
	"github.com/go-chi/chi/v5"

	"teamdash/frontend/activity"
	"teamdash/frontend/dashboard"
	"teamdash/frontend/exports"
)

func (s *Server) changeRecorder() dashboard.ChangeRecorder {
	return dashboard.ChangeRecorder{DB: s.DB, Audit: s.Audit, Metrics: s.Metrics}
}

// RegisterDashboardRoutes registers the table, dialog and edit session routes.
func (s *Server) RegisterDashboardRoutes(r chi.Router) {
	rec := s.changeRecorder()

	r.Get("/", dashboard.DashboardPageQueryHandler())
	r.Get("/charts.json", dashboard.ChartsJSONQueryHandler())

	r.Post("/filter", dashboard.FilterCommandHandler())
	r.Post("/sort/{column}", dashboard.SortCommandHandler())
	r.Post("/page/{direction}", dashboard.PageCommandHandler())
	r.Post("/dialog/{action}", dashboard.DialogCommandHandler())

	r.Post("/users", dashboard.CreateUserCommandHandler(rec))
	r.Post("/users/{id}/edit", dashboard.EditUserCommandHandler())
	r.Post("/users/{id}/scratch", dashboard.ScratchCommandHandler())
	r.Post("/users/{id}/save", dashboard.SaveUserCommandHandler(rec))
	r.Post("/users/{id}/cancel", dashboard.CancelEditCommandHandler())
	r.Get("/users/{id}/delete", dashboard.DeleteConfirmPageQueryHandler())
	r.Post("/users/{id}/delete", dashboard.DeleteUserCommandHandler(rec))
}

func (s *Server) RegisterExportRoutes(r chi.Router) {
	rec := exports.Recorder{DB: s.DB, Metrics: s.Metrics}

	r.Get("/exports/roster.csv", exports.RosterCSVHandler(rec))
	r.Get("/exports/roster.pdf", exports.RosterPDFHandler(rec))
	r.Get("/users/{id}/card.pdf", exports.MemberCardPDFHandler(rec))
	r.Get("/users/{id}/qr.png", exports.MemberQRHandler(rec))
}

func (s *Server) RegisterActivityRoutes(r chi.Router) {
	r.Get("/activity", activity.ActivityPageQueryHandler(s.DB, s.Audit))
}
