package exports

import (
	"teamdash/infrastructure/metrics"
	"teamdash/infrastructure/sqlite"
)

const (
	ExportRosterCSV = "roster_csv"
	ExportRosterPDF = "roster_pdf"
	ExportCardPDF   = "card_pdf"
	ExportQRPNG     = "qr_png"
)

// Recorder notes each completed export. Both fields may be nil.
type Recorder struct {
	DB      *sqlite.DB
	Metrics *metrics.Metrics
}

// ExportRun is one row of export_runs.
type ExportRun struct {
	ID          int64  `bun:"id"`
	WorkspaceID string `bun:"workspace_id"`
	ExportType  string `bun:"export_type"`
	RowCount    int64  `bun:"row_count"`
	CreatedAt   string `bun:"created_at"`
}
