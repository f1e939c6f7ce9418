package activity

import (
	"encoding/json"
	"fmt"
	"strings"

	"teamdash/models"
	"teamdash/team"
)

const timeLayout = "02/01/2006 15:04:05"

func toEntry(row models.AuditLog) Entry {
	return Entry{
		When:    row.CreatedAt.Local().Format(timeLayout),
		Action:  row.Action,
		UserID:  row.EntityID,
		Summary: summarize(row),
	}
}

func decodeUser(raw string) (team.User, bool) {
	if raw == "" {
		return team.User{}, false
	}
	var u team.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return team.User{}, false
	}
	return u, true
}

func summarize(row models.AuditLog) string {
	before, hasBefore := decodeUser(row.BeforeJSON)
	after, hasAfter := decodeUser(row.AfterJSON)

	switch row.Action {
	case team.ActionCreate:
		if hasAfter {
			return fmt.Sprintf("Added %s <%s> as %s (%s)", after.Name, after.Email, after.Role, after.Status)
		}
	case team.ActionDelete:
		if hasBefore {
			return fmt.Sprintf("Removed %s <%s>", before.Name, before.Email)
		}
	case team.ActionUpdate:
		if hasBefore && hasAfter {
			return describeDiff(before, after)
		}
	}
	return row.Action
}

func describeDiff(before, after team.User) string {
	changes := make([]string, 0, 4)
	add := func(field, from, to string) {
		if from != to {
			changes = append(changes, fmt.Sprintf("%s %q to %q", field, from, to))
		}
	}
	add("name", before.Name, after.Name)
	add("email", before.Email, after.Email)
	add("role", string(before.Role), string(after.Role))
	add("status", string(before.Status), string(after.Status))
	if len(changes) == 0 {
		return fmt.Sprintf("Saved %s with no changes", after.Name)
	}
	return fmt.Sprintf("Changed %s: %s", after.Name, strings.Join(changes, ", "))
}
