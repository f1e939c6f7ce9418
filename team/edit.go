package team

import "errors"

var (
	ErrAlreadyEditing       = errors.New("another row is being edited")
	ErrNotEditing           = errors.New("no row is being edited")
	ErrNotEditable          = errors.New("field is not editable")
	ErrConfirmationDeclined = errors.New("delete not confirmed")
)

// Scratch holds the unsaved field values of the row being edited.
type Scratch struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

func (s Scratch) patch() Patch {
	return Patch{Name: &s.Name, Email: &s.Email, Role: &s.Role, Status: &s.Status}
}

// EditState is either idle or editing exactly one row. The zero value is idle.
// Transitions return a new value and never modify the receiver.
type EditState struct {
	editing bool
	id      int64
	scratch Scratch
}

func Idle() EditState {
	return EditState{}
}

// Editing returns the id of the row being edited.
func (e EditState) Editing() (int64, bool) {
	return e.id, e.editing
}

func (e EditState) Scratch() Scratch {
	return e.scratch
}

// Editable reports whether id is the row currently being edited.
func (e EditState) Editable(id int64) bool {
	return e.editing && e.id == id
}

// Locked reports whether the row's edit controls must render read-only because another row is being edited.
func (e EditState) Locked(id int64) bool {
	return e.editing && e.id != id
}

// Begin starts editing u with a scratch copy of its fields.
func (e EditState) Begin(u User) (EditState, error) {
	if e.editing {
		if e.id == u.ID {
			return e, nil
		}
		return e, ErrAlreadyEditing
	}
	return EditState{
		editing: true,
		id:      u.ID,
		scratch: Scratch{Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status},
	}, nil
}

// Set changes one scratch field. The store is untouched until Save.
func (e EditState) Set(c Column, value string) (EditState, error) {
	if !e.editing {
		return e, ErrNotEditing
	}
	switch c {
	case ColumnName:
		e.scratch.Name = value
	case ColumnEmail:
		e.scratch.Email = value
	case ColumnRole:
		r, err := ParseRole(value)
		if err != nil {
			return e, err
		}
		e.scratch.Role = r
	case ColumnStatus:
		st, err := ParseStatus(value)
		if err != nil {
			return e, err
		}
		e.scratch.Status = st
	default:
		return e, ErrNotEditable
	}
	return e, nil
}

// Cancel discards the scratch.
func (e EditState) Cancel() EditState {
	return Idle()
}

// Save commits the scratch to the store and returns to idle.
func (e EditState) Save(s *Store) EditState {
	if e.editing {
		s.UpdateFields(e.id, e.scratch.patch())
	}
	return Idle()
}

// Delete removes id from the store once confirmed. Deleting the row being edited also ends the edit.
func (e EditState) Delete(s *Store, id int64, confirmed bool) (EditState, error) {
	if !confirmed {
		return e, ErrConfirmationDeclined
	}
	s.Remove(id)
	if e.editing && e.id == id {
		return Idle(), nil
	}
	return e, nil
}
