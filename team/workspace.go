package team

import (
	"sync"
	"time"
)

const (
	ActionCreate = "user.create"
	ActionUpdate = "user.update"
	ActionDelete = "user.delete"
)

// Change describes one store mutation for auditing.
type Change struct {
	Action string
	UserID int64
	Before *User
	After  *User
}

// Model is everything the dashboard needs to render one frame.
type Model struct {
	View             ViewState
	Page             Page
	Edit             EditState
	Form             CreateForm
	FormOpen         bool
	FormError        string
	Loading          bool
	LoadingRemaining time.Duration
	RoleCounts       Aggregate
	StatusCounts     Aggregate
	Total            int
	Version          uint64
}

// Workspace owns the state of one dashboard session. Every method runs as a single
// serialized event, so the store, view state and edit session never interleave.
type Workspace struct {
	ID string

	mu        sync.Mutex
	store     *Store
	view      ViewState
	edit      EditState
	form      CreateForm
	formOpen  bool
	formError string
	gate      *LoadingGate
}

// NewWorkspace seeds a fresh store and starts in the loading state.
func NewWorkspace(id string, seed []User, loadingDelay time.Duration) *Workspace {
	w := &Workspace{
		ID:    id,
		store: NewStore(seed),
		form:  DefaultCreateForm(),
		gate:  NewLoadingGate(loadingDelay),
	}
	w.gate.Trigger()
	return w
}

// Close stops the pending loading timer.
func (w *Workspace) Close() {
	w.gate.Stop()
}

func (w *Workspace) SetFilter(term string, role Role) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view.SearchTerm = term
	w.view.RoleFilter = role
}

func (w *Workspace) ToggleSort(c Column) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view = w.view.ToggleSort(c)
}

func (w *Workspace) NextPage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	page := Derive(w.store.Snapshot(), w.view)
	w.view = w.view.Next(page.PageCount)
}

func (w *Workspace) PrevPage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view = w.view.Prev()
}

// BeginEdit starts editing id. A missing id is ignored.
func (w *Workspace) BeginEdit(id int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	u, ok := w.store.Get(id)
	if !ok {
		return nil
	}
	next, err := w.edit.Begin(u)
	if err != nil {
		return err
	}
	w.edit = next
	return nil
}

// SetScratch updates one scratch field of the row being edited.
func (w *Workspace) SetScratch(id int64, c Column, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.edit.Editable(id) {
		return ErrNotEditing
	}
	next, err := w.edit.Set(c, value)
	if err != nil {
		return err
	}
	w.edit = next
	return nil
}

func (w *Workspace) CancelEdit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.edit = w.edit.Cancel()
}

// SaveEdit applies fields to the scratch and commits it. Nothing is applied if any field is invalid.
func (w *Workspace) SaveEdit(id int64, fields map[Column]string) (Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.edit.Editable(id) {
		return Change{}, ErrNotEditing
	}
	next := w.edit
	for _, c := range Columns {
		value, ok := fields[c]
		if !ok {
			continue
		}
		var err error
		if next, err = next.Set(c, value); err != nil {
			return Change{}, err
		}
	}

	before, ok := w.store.Get(id)
	w.edit = next.Save(w.store)
	if !ok {
		return Change{}, nil
	}
	after, _ := w.store.Get(id)
	w.gate.Trigger()
	return Change{Action: ActionUpdate, UserID: id, Before: &before, After: &after}, nil
}

// Delete removes id after confirmation. A missing id yields an empty Change.
func (w *Workspace) Delete(id int64, confirmed bool) (Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	before, ok := w.store.Get(id)
	next, err := w.edit.Delete(w.store, id, confirmed)
	if err != nil {
		return Change{}, err
	}
	w.edit = next
	if !ok {
		return Change{}, nil
	}
	w.gate.Trigger()
	return Change{Action: ActionDelete, UserID: id, Before: &before}, nil
}

func (w *Workspace) OpenCreate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.formOpen = true
	w.formError = ""
}

func (w *Workspace) CloseCreate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.formOpen = false
	w.formError = ""
}

// SubmitCreate validates f and appends the new user. On failure the draft and the
// error message are kept and the dialog stays open.
func (w *Workspace) SubmitCreate(f CreateForm) (Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	u, err := f.Create(w.store)
	if err != nil {
		w.form = f
		w.formOpen = true
		w.formError = err.Error()
		return Change{}, err
	}
	w.form = DefaultCreateForm()
	w.formOpen = false
	w.formError = ""
	w.gate.Trigger()
	return Change{Action: ActionCreate, UserID: u.ID, After: &u}, nil
}

func (w *Workspace) User(id int64) (User, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Get(id)
}

func (w *Workspace) Users() []User {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Snapshot()
}

// Visible returns every row that passes the current filter, in the current sort
// order, ignoring pagination.
func (w *Workspace) Visible() []User {
	w.mu.Lock()
	defer w.mu.Unlock()
	filtered := Filter(w.store.Snapshot(), w.view.SearchTerm, w.view.RoleFilter)
	return Sort(filtered, w.view.SortColumn, w.view.SortDirection)
}

func (w *Workspace) Snapshot() Model {
	w.mu.Lock()
	defer w.mu.Unlock()
	users := w.store.Snapshot()
	return Model{
		View:             w.view,
		Page:             Derive(users, w.view),
		Edit:             w.edit,
		Form:             w.form,
		FormOpen:         w.formOpen,
		FormError:        w.formError,
		Loading:          w.gate.Loading(),
		LoadingRemaining: w.gate.Remaining(),
		RoleCounts:       RoleCounts(users),
		StatusCounts:     StatusCounts(users),
		Total:            len(users),
		Version:          w.store.Version(),
	}
}
