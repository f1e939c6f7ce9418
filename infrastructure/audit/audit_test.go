package audit

import (
	"context"
	"strings"
	"testing"

	"teamdash/infrastructure/sqlite"
	"teamdash/team"
)

func openAuditTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestRecordChange_WritesBeforeAndAfter(t *testing.T) {
	db := openAuditTestDB(t)
	svc := NewService()

	before := team.User{ID: 2, Name: "Ben", Email: "ben@x.com", Role: team.RoleUser, Status: team.StatusPending}
	after := before
	after.Status = team.StatusInactive

	err := svc.RecordChange(context.Background(), db, "ws-1", team.Change{
		Action: team.ActionUpdate,
		UserID: 2,
		Before: &before,
		After:  &after,
	})
	if err != nil {
		t.Fatalf("record change: %v", err)
	}

	logs, err := svc.List(context.Background(), db, "ws-1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(logs))
	}
	got := logs[0]
	if got.Action != team.ActionUpdate || got.EntityType != EntityUser || got.EntityID != "2" {
		t.Fatalf("unexpected audit row: %+v", got)
	}
	if !strings.Contains(got.BeforeJSON, `"status":"Pending"`) {
		t.Fatalf("before json missing old status: %s", got.BeforeJSON)
	}
	if !strings.Contains(got.AfterJSON, `"status":"Inactive"`) {
		t.Fatalf("after json missing new status: %s", got.AfterJSON)
	}
}

func TestRecordChange_SkipsEmptyChange(t *testing.T) {
	db := openAuditTestDB(t)
	svc := NewService()

	if err := svc.RecordChange(context.Background(), db, "ws-1", team.Change{}); err != nil {
		t.Fatalf("record empty change: %v", err)
	}
	logs, err := svc.List(context.Background(), db, "ws-1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected no audit rows, got %d", len(logs))
	}
}

func TestList_ScopedToWorkspaceNewestFirst(t *testing.T) {
	db := openAuditTestDB(t)
	svc := NewService()

	for i, ws := range []string{"ws-a", "ws-b", "ws-a"} {
		u := team.User{ID: int64(i + 1), Name: "N"}
		if err := svc.RecordChange(context.Background(), db, ws, team.Change{Action: team.ActionCreate, UserID: u.ID, After: &u}); err != nil {
			t.Fatalf("record change %d: %v", i, err)
		}
	}

	logs, err := svc.List(context.Background(), db, "ws-a", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 rows for ws-a, got %d", len(logs))
	}
	if logs[0].EntityID != "3" || logs[1].EntityID != "1" {
		t.Fatalf("expected newest first, got %s then %s", logs[0].EntityID, logs[1].EntityID)
	}
	if logs[1].BeforeJSON != "" {
		t.Fatalf("create rows carry no before json, got %q", logs[1].BeforeJSON)
	}
}
