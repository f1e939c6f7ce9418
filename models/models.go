package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AuditLog captures immutable change history for team member mutations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID          int64     `bun:"id,pk,autoincrement"`
	WorkspaceID string    `bun:"workspace_id,notnull"`
	Action      string    `bun:"action,notnull"`
	EntityType  string    `bun:"entity_type,notnull"`
	EntityID    string    `bun:"entity_id,notnull"`
	BeforeJSON  string    `bun:"before_json"`
	AfterJSON   string    `bun:"after_json"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
