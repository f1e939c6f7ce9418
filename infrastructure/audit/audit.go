package audit

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/uptrace/bun"

	"teamdash/infrastructure/sqlite"
	"teamdash/models"
	"teamdash/team"
)

const EntityUser = "user"

// Service writes audit records inside the caller transaction.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Write(ctx context.Context, tx bun.Tx, workspaceID, action, entityType, entityID string, before, after any) error {
	beforeJSON, err := marshal(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshal(after)
	if err != nil {
		return err
	}
	log := &models.AuditLog{
		WorkspaceID: workspaceID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		BeforeJSON:  beforeJSON,
		AfterJSON:   afterJSON,
	}
	_, err = tx.NewInsert().Model(log).Exec(ctx)
	return err
}

// RecordChange stores one workspace mutation in its own write transaction.
// Empty changes (no-op updates and deletes) are skipped.
func (s *Service) RecordChange(ctx context.Context, db *sqlite.DB, workspaceID string, change team.Change) error {
	if change.Action == "" {
		return nil
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before, after any
		if change.Before != nil {
			before = change.Before
		}
		if change.After != nil {
			after = change.After
		}
		return s.Write(ctx, tx, workspaceID, change.Action, EntityUser, strconv.FormatInt(change.UserID, 10), before, after)
	})
}

// List returns the newest audit rows of a workspace first.
func (s *Service) List(ctx context.Context, db *sqlite.DB, workspaceID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	logs := make([]models.AuditLog, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&logs).
			Where("workspace_id = ?", workspaceID).
			OrderExpr("id DESC").
			Limit(limit).
			Scan(ctx)
	})
	return logs, err
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
