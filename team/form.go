package team

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// ValidationError is shown to the user as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CreateForm is the draft of the Add User dialog.
type CreateForm struct {
	Name   string
	Email  string
	Role   Role
	Status Status
}

func DefaultCreateForm() CreateForm {
	return CreateForm{Role: RoleRecruiter, Status: StatusActive}
}

func (f CreateForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" {
		return &ValidationError{Message: "Name and email are required"}
	}
	if _, err := ParseRole(string(f.Role)); err != nil {
		return &ValidationError{Message: "Role must be one of the listed roles"}
	}
	if _, err := ParseStatus(string(f.Status)); err != nil {
		return &ValidationError{Message: "Status must be one of the listed statuses"}
	}
	return nil
}

// Create validates the form and appends a new record with the next free id.
func (f CreateForm) Create(s *Store) (User, error) {
	if err := f.Validate(); err != nil {
		return User{}, err
	}
	u := User{
		ID:     s.NextID(),
		Name:   strings.TrimSpace(f.Name),
		Email:  strings.TrimSpace(f.Email),
		Role:   f.Role,
		Status: f.Status,
	}
	if err := s.Append(u); err != nil {
		return User{}, err
	}
	return u, nil
}
