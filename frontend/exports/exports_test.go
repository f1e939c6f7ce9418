package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"

	"teamdash/infrastructure/sqlite"
	"teamdash/team"
)

func exportUsers() []team.User {
	return []team.User{
		{ID: 1, Name: "Ann", Email: "ann@x.io", Role: team.RoleAdmin, Status: team.StatusActive},
		{ID: 7, Name: "Bob, Jr.", Email: "bob@x.io", Role: team.RoleHiringManager, Status: team.StatusPending},
	}
}

func TestWriteRosterCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := writeRosterCSV(&buf, exportUsers()); err != nil {
		t.Fatalf("writeRosterCSV returned error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[0][0] != "id" || records[2][1] != "Bob, Jr." || records[2][3] != "Hiring Manager" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestRenderRosterPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	pdf, err := renderRosterPDF(exportUsers(), time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderRosterPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf signature")
	}

	empty, err := renderRosterPDF(nil, time.Now())
	if err != nil || len(empty) == 0 {
		t.Fatalf("expected pdf for empty roster, err=%v", err)
	}
}

func TestRenderMemberCardPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	pdf, err := renderMemberCardPDF(exportUsers()[1], time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderMemberCardPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf signature")
	}
	if code := MemberCode(7); code != "U00000007" {
		t.Fatalf("expected U00000007, got %q", code)
	}
}

func TestTextTranslatorEncodesLatin1Names(t *testing.T) {
	t.Parallel()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := textTranslator(pdf)
	if got := tr("Zoë Ünal"); got != "Zo\xeb \xdcnal" {
		t.Fatalf("expected cp1252 bytes, got %q", got)
	}

	pdf.SetFont("Helvetica", "", 10)
	long := tr("Renée Müller-Lüdenscheidt von Österreich")
	fitted := fitText(pdf, long, 30)
	if !strings.HasSuffix(fitted, "...") || len(fitted) >= len(long) {
		t.Fatalf("expected truncated name, got %q", fitted)
	}
	if strings.Contains(fitted, "\xc3") {
		t.Fatalf("truncated name still carries utf-8 bytes: %q", fitted)
	}
}

func TestRenderPDFsWithAccentedNames(t *testing.T) {
	t.Parallel()

	u := team.User{ID: 9, Name: "Zoë Ünal", Email: "zoe@x.io", Role: team.RoleRecruiter, Status: team.StatusActive}
	if _, err := renderRosterPDF([]team.User{u}, time.Now()); err != nil {
		t.Fatalf("roster with accented name: %v", err)
	}
	if _, err := renderMemberCardPDF(u, time.Now()); err != nil {
		t.Fatalf("card with accented name: %v", err)
	}
}

func TestRenderQRPNG_Decodes(t *testing.T) {
	t.Parallel()

	raw, err := renderQRPNG(contactPayload(exportUsers()[0]), 200)
	if err != nil {
		t.Fatalf("renderQRPNG returned error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("expected 200x200 image, got %v", b)
	}
}

func TestRecordExportRun_ListsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.OpenDB(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	rec := Recorder{DB: db}
	rec.record(ctx, "ws-1", ExportRosterCSV, 12)
	rec.record(ctx, "ws-1", ExportRosterPDF, 12)
	rec.record(ctx, "ws-2", ExportCardPDF, 1)

	runs, err := ListExportRuns(ctx, db, "ws-1", 10)
	if err != nil {
		t.Fatalf("ListExportRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ExportType != ExportRosterPDF || runs[1].RowCount != 12 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}
