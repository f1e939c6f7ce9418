package team

import (
	"errors"
	"strings"
)

// Role is the team role of a user record.
type Role string

const (
	RoleRecruiter     Role = "Recruiter"
	RoleHiringManager Role = "Hiring Manager"
	RoleAdmin         Role = "Admin"
	RoleUser          Role = "User"
)

// Roles lists the roles in the order the choice inputs present them.
var Roles = []Role{RoleRecruiter, RoleHiringManager, RoleAdmin, RoleUser}

// FilterRoles is the option order of the role filter select.
var FilterRoles = []Role{RoleAdmin, RoleRecruiter, RoleHiringManager, RoleUser}

// Status is the membership status of a user record.
type Status string

const (
	StatusActive   Status = "Active"
	StatusPending  Status = "Pending"
	StatusInactive Status = "Inactive"
)

var Statuses = []Status{StatusActive, StatusPending, StatusInactive}

var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStatus = errors.New("invalid status")
)

// User is one row of the team table.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

// ParseRole accepts an exact role label, ignoring surrounding whitespace.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", ErrInvalidRole
}

func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}
