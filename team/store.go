package team

import "errors"

var ErrDuplicateID = errors.New("user id already exists")

// Patch carries the fields to merge into a stored record. Nil fields are left as they are.
type Patch struct {
	Name   *string
	Email  *string
	Role   *Role
	Status *Status
}

// Store is the ordered in-memory collection of user records.
//
// Store is not safe for concurrent use; the owning Workspace serializes access.
type Store struct {
	users     []User
	highWater int64
	version   uint64
}

// NewStore copies seed into a new store. Seed records with duplicate ids are dropped.
func NewStore(seed []User) *Store {
	s := &Store{users: make([]User, 0, len(seed))}
	for _, u := range seed {
		_ = s.Append(u)
	}
	s.version = 0
	return s
}

func (s *Store) indexOf(id int64) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// Append adds u at the end. The id must not be present yet.
func (s *Store) Append(u User) error {
	if s.indexOf(u.ID) >= 0 {
		return ErrDuplicateID
	}
	s.users = append(s.users, u)
	if u.ID > s.highWater {
		s.highWater = u.ID
	}
	s.version++
	return nil
}

// UpdateFields merges p into the record with the given id. It reports false when no such record exists.
func (s *Store) UpdateFields(id int64, p Patch) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	u := &s.users[i]
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	s.version++
	return true
}

// Remove deletes the record with the given id, keeping the order of the rest.
func (s *Store) Remove(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	s.version++
	return true
}

// MaxID returns the largest id present, or 0 when the store is empty.
func (s *Store) MaxID() int64 {
	var max int64
	for _, u := range s.users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max
}

// NextID returns the id for the next created record. Ids of deleted records are never handed out again.
func (s *Store) NextID() int64 {
	next := s.MaxID()
	if s.highWater > next {
		next = s.highWater
	}
	return next + 1
}

func (s *Store) Get(id int64) (User, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return User{}, false
	}
	return s.users[i], true
}

// Snapshot returns a copy of the records in store order.
func (s *Store) Snapshot() []User {
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) Len() int {
	return len(s.users)
}

// Version increases on every successful mutation.
func (s *Store) Version() uint64 {
	return s.version
}
