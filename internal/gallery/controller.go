package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/petgallery/internal/notify"
	"github.com/five82/petgallery/internal/petstore"
)

// LoadErrorMessage is shown in place of the gallery when the list fetch fails.
const LoadErrorMessage = "Failed to load pets. Please try again later."

// Phase is the lifecycle state of the pet list.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Modal is the dialog currently shown over the gallery.
type Modal int

const (
	ModalClosed Modal = iota
	ModalAdd
	ModalEdit
	ModalDeleteConfirm
)

// Action identifies the remote operation a Result belongs to.
type Action int

const (
	ActionLoad Action = iota
	ActionAdd
	ActionEdit
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	default:
		return "load"
	}
}

// Op performs one remote call. It touches no controller state, so it may run
// off the event loop; its Result must be handed back to Apply.
type Op func(ctx context.Context) Result

// Result carries the outcome of an Op.
type Result struct {
	Action Action
	Pets   []petstore.Pet
	Pet    petstore.Pet
	ID     int64
	Err    error
}

// Outcome tells the caller what to schedule after Apply.
type Outcome struct {
	// Notification is set when a mutation succeeded; its expiry must be
	// scheduled after the queue's ExpiryDelay.
	Notification *notify.Notification
	// Next is a follow-up operation, e.g. a reconciling reload.
	Next Op
}

// Options configure a Controller.
type Options struct {
	Store         petstore.Store
	Notifications *notify.Queue
	Logger        *zap.Logger
	// ReconcileOnFailure reloads the full list after a failed mutation.
	// Off by default: the list is left as is until the next manual reload.
	ReconcileOnFailure bool
}

// Controller owns the in-memory pet list and the add/edit/delete dialogs.
// It is not safe for concurrent use; all methods run on the UI event loop.
type Controller struct {
	store     petstore.Store
	notes     *notify.Queue
	logger    *zap.Logger
	reconcile bool

	pets   []petstore.Pet
	phase  Phase
	errMsg string

	modal         Modal
	draft         petstore.Pet
	editing       *petstore.Pet
	pendingDelete *petstore.Pet
}

// New builds a Controller in the idle phase.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notes := opts.Notifications
	if notes == nil {
		notes = notify.New(0)
	}
	return &Controller{
		store:     opts.Store,
		notes:     notes,
		logger:    logger,
		reconcile: opts.ReconcileOnFailure,
	}
}

// Load switches to the loading phase and returns the list fetch.
func (c *Controller) Load() Op {
	c.phase = PhaseLoading
	c.errMsg = ""
	store := c.store
	return func(ctx context.Context) Result {
		pets, err := store.List(ctx)
		return Result{Action: ActionLoad, Pets: pets, Err: err}
	}
}

// OpenAdd shows the add dialog, keeping any draft in progress.
func (c *Controller) OpenAdd() {
	c.modal = ModalAdd
}

// SetDraftField updates the add draft.
func (c *Controller) SetDraftField(f Field, value string) {
	SetField(&c.draft, f, value)
}

// CanSubmitAdd reports whether the draft has the required fields.
func (c *Controller) CanSubmitAdd() bool {
	return strings.TrimSpace(c.draft.Name) != "" && strings.TrimSpace(c.draft.Species) != ""
}

// SubmitAdd returns the create call for the current draft. It returns false
// when the draft is missing required fields.
func (c *Controller) SubmitAdd() (Op, bool) {
	if c.modal != ModalAdd || !c.CanSubmitAdd() {
		return nil, false
	}
	draft := c.draft.WithoutID()
	store := c.store
	return func(ctx context.Context) Result {
		created, err := store.Create(ctx, draft)
		return Result{Action: ActionAdd, Pet: created, Err: err}
	}, true
}

// RequestEdit opens the edit dialog on a copy of target so the displayed list
// is untouched until the edit is confirmed.
func (c *Controller) RequestEdit(target petstore.Pet) bool {
	if !target.HasID() {
		return false
	}
	copied := target.Clone()
	c.editing = &copied
	c.modal = ModalEdit
	return true
}

// SetEditField updates the in-progress edit copy.
func (c *Controller) SetEditField(f Field, value string) {
	if c.editing == nil {
		return
	}
	SetField(c.editing, f, value)
}

// ConfirmEdit closes the edit dialog and returns the update call.
func (c *Controller) ConfirmEdit() (Op, bool) {
	if c.modal != ModalEdit || c.editing == nil {
		return nil, false
	}
	edited := c.editing.Clone()
	id := edited.IDValue()
	c.editing = nil
	c.modal = ModalClosed
	store := c.store
	return func(ctx context.Context) Result {
		updated, err := store.Update(ctx, id, edited)
		return Result{Action: ActionEdit, Pet: updated, ID: id, Err: err}
	}, true
}

// RequestDelete opens the confirmation dialog for target.
func (c *Controller) RequestDelete(target petstore.Pet) bool {
	if !target.HasID() {
		return false
	}
	copied := target.Clone()
	c.pendingDelete = &copied
	c.modal = ModalDeleteConfirm
	return true
}

// ConfirmDelete closes the confirmation dialog and returns the delete call.
func (c *Controller) ConfirmDelete() (Op, bool) {
	if c.modal != ModalDeleteConfirm || c.pendingDelete == nil {
		return nil, false
	}
	target := *c.pendingDelete
	c.pendingDelete = nil
	c.modal = ModalClosed
	id := target.IDValue()
	store := c.store
	return func(ctx context.Context) Result {
		err := store.Delete(ctx, id)
		return Result{Action: ActionDelete, Pet: target, ID: id, Err: err}
	}, true
}

// CancelDelete discards the pending delete target without any remote call.
func (c *Controller) CancelDelete() {
	c.pendingDelete = nil
	if c.modal == ModalDeleteConfirm {
		c.modal = ModalClosed
	}
}

// CloseModal dismisses whichever dialog is open. The add draft survives.
func (c *Controller) CloseModal() {
	c.editing = nil
	c.pendingDelete = nil
	c.modal = ModalClosed
}

// Apply folds the result of an Op into the controller state.
func (c *Controller) Apply(r Result) Outcome {
	switch r.Action {
	case ActionLoad:
		return c.applyLoad(r)
	case ActionAdd:
		return c.applyAdd(r)
	case ActionEdit:
		return c.applyEdit(r)
	case ActionDelete:
		return c.applyDelete(r)
	}
	return Outcome{}
}

func (c *Controller) applyLoad(r Result) Outcome {
	if r.Err != nil {
		c.logFailure(r, "load pets failed")
		c.phase = PhaseError
		c.errMsg = LoadErrorMessage
		return Outcome{}
	}
	c.pets = clonePets(r.Pets)
	c.phase = PhaseReady
	c.errMsg = ""
	c.logger.Info("pets loaded", zap.Int("count", len(c.pets)))
	return Outcome{}
}

func (c *Controller) applyAdd(r Result) Outcome {
	if r.Err != nil {
		c.logFailure(r, "add pet failed")
		return c.failureOutcome()
	}
	if !r.Pet.HasID() {
		// Every listed pet carries an id.
		c.logger.Error("add pet failed: created pet has no id",
			zap.String("action", r.Action.String()),
			zap.String("name", r.Pet.Name),
		)
		return c.failureOutcome()
	}
	c.pets = append(c.pets, r.Pet.Clone())
	c.draft = petstore.Pet{}
	if c.modal == ModalAdd {
		c.modal = ModalClosed
	}
	return c.notify(fmt.Sprintf("%s was added to the gallery", displayName(r.Pet)), notify.KindAdd)
}

func (c *Controller) applyEdit(r Result) Outcome {
	if r.Err != nil {
		c.logFailure(r, "update pet failed")
		return c.failureOutcome()
	}
	if idx := c.indexOf(r.ID); idx >= 0 {
		c.pets[idx] = r.Pet.WithID(r.ID)
	} else {
		c.logger.Debug("updated pet no longer listed", zap.Int64("id", r.ID))
	}
	return c.notify(fmt.Sprintf("%s was updated", displayName(r.Pet)), notify.KindEdit)
}

func (c *Controller) applyDelete(r Result) Outcome {
	if r.Err != nil {
		c.logFailure(r, "delete pet failed")
		return c.failureOutcome()
	}
	if idx := c.indexOf(r.ID); idx >= 0 {
		c.pets = append(c.pets[:idx:idx], c.pets[idx+1:]...)
	}
	return c.notify(fmt.Sprintf("%s was removed from the gallery", displayName(r.Pet)), notify.KindDelete)
}

func (c *Controller) notify(message string, kind notify.Kind) Outcome {
	n := c.notes.Enqueue(message, kind)
	return Outcome{Notification: &n}
}

func (c *Controller) failureOutcome() Outcome {
	if !c.reconcile {
		return Outcome{}
	}
	return Outcome{Next: c.Load()}
}

func (c *Controller) logFailure(r Result, msg string) {
	fields := []zap.Field{
		zap.String("action", r.Action.String()),
		zap.Error(r.Err),
	}
	if r.ID != 0 {
		fields = append(fields, zap.Int64("id", r.ID))
	}
	var rse *petstore.RemoteStoreError
	if errors.As(r.Err, &rse) {
		fields = append(fields,
			zap.Int("status", rse.StatusCode),
			zap.String("request_id", rse.RequestID),
		)
	}
	c.logger.Error(msg, fields...)
}

func (c *Controller) indexOf(id int64) int {
	for i, p := range c.pets {
		if p.HasID() && p.IDValue() == id {
			return i
		}
	}
	return -1
}

// Pets returns a copy of the list in load order.
func (c *Controller) Pets() []petstore.Pet {
	return clonePets(c.pets)
}

// Find returns the listed pet with id.
func (c *Controller) Find(id int64) (petstore.Pet, bool) {
	if idx := c.indexOf(id); idx >= 0 {
		return c.pets[idx].Clone(), true
	}
	return petstore.Pet{}, false
}

// Phase returns the list lifecycle state.
func (c *Controller) Phase() Phase { return c.phase }

// Error returns the user-facing load error, if any.
func (c *Controller) Error() string { return c.errMsg }

// Modal returns the open dialog.
func (c *Controller) Modal() Modal { return c.modal }

// Draft returns the add form values.
func (c *Controller) Draft() petstore.Pet { return c.draft }

// Editing returns the edit copy while the edit dialog is open.
func (c *Controller) Editing() (petstore.Pet, bool) {
	if c.editing == nil {
		return petstore.Pet{}, false
	}
	return c.editing.Clone(), true
}

// PendingDelete returns the record awaiting delete confirmation.
func (c *Controller) PendingDelete() (petstore.Pet, bool) {
	if c.pendingDelete == nil {
		return petstore.Pet{}, false
	}
	return c.pendingDelete.Clone(), true
}

// Notifications exposes the notification queue.
func (c *Controller) Notifications() *notify.Queue { return c.notes }

func clonePets(pets []petstore.Pet) []petstore.Pet {
	if len(pets) == 0 {
		return nil
	}
	out := make([]petstore.Pet, len(pets))
	for i, p := range pets {
		out[i] = p.Clone()
	}
	return out
}

func displayName(p petstore.Pet) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	if p.HasID() {
		return fmt.Sprintf("Pet #%d", p.IDValue())
	}
	return "Pet"
}
