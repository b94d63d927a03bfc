package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/erp/masterdata/internal/domain/identity"
	"go.uber.org/zap"
)

// Mode is the modal session mode
type Mode int

// Session modes
const (
	ModeCreate Mode = iota
	ModeEdit
	ModeView
)

// ErrLocked is returned when an action is attempted on a locked screen or
// without the required right.
var ErrLocked = errors.New("access is locked for this operation")

// MutationError carries the server's rejection message for a mutation that
// answered a non-success result. The modal stays open so the user can
// correct and retry.
type MutationError struct {
	Message string
}

func (e *MutationError) Error() string {
	if e.Message == "" {
		return "operation failed"
	}
	return e.Message
}

// DeleteTarget is a staged delete: the id plus the display name resolved
// from the loaded list for the confirmation prompt.
type DeleteTarget struct {
	ID   int64
	Name string
}

// Controller orchestrates one master-data screen: listing, the modal
// session, the duplicate-code check and the confirmed mutations. A single
// instance serves one entity type, parameterized by its descriptor.
type Controller struct {
	descriptor EntityDescriptor
	client     APIClient
	gate       Gate
	list       *ListProvider
	resolver   *CodeResolver
	log        *zap.Logger

	saveConfirm   Confirmation[Record]
	deleteConfirm Confirmation[DeleteTarget]

	mu        sync.Mutex
	modalOpen bool
	mode      Mode
	selected  Record
}

// New creates a controller for one entity type
func New(descriptor EntityDescriptor, client APIClient, gate Gate, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		descriptor: descriptor,
		client:     client,
		gate:       gate,
		list:       NewListProvider(client, descriptor, log),
		resolver:   NewCodeResolver(client, descriptor, log),
		log:        log,
	}
}

// List exposes the list provider for filter changes and rendering
func (c *Controller) List() *ListProvider {
	return c.list
}

// Resolver exposes the duplicate-code resolver state
func (c *Controller) Resolver() *CodeResolver {
	return c.resolver
}

// right checks combine the session gate with the locked signal: a locked
// list suppresses every affordance regardless of the booleans.

// CanView reports whether the read affordances are available
func (c *Controller) CanView() bool { return c.allows(identity.RightRead) }

// CanCreate reports whether the create affordance is available
func (c *Controller) CanCreate() bool { return c.allows(identity.RightCreate) }

// CanEdit reports whether the edit affordance is available
func (c *Controller) CanEdit() bool { return c.allows(identity.RightEdit) }

// CanDelete reports whether the delete affordance is available
func (c *Controller) CanDelete() bool { return c.allows(identity.RightDelete) }

func (c *Controller) allows(right identity.Right) bool {
	if c.list.Locked() {
		return false
	}
	return c.gate.HasPermission(c.descriptor.ModuleID, c.descriptor.TransactionID, right)
}

// Open starts a modal session. Create opens empty; edit and view require
// the selected record. The session is rejected without the matching right.
func (c *Controller) Open(mode Mode, selected Record) error {
	var right identity.Right
	switch mode {
	case ModeCreate:
		right = identity.RightCreate
	case ModeEdit:
		right = identity.RightEdit
	case ModeView:
		right = identity.RightRead
	}
	if !c.allows(right) {
		return ErrLocked
	}
	if mode != ModeCreate && selected == nil {
		return errors.New("edit and view sessions need a selected record")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = true
	c.mode = mode
	c.selected = selected
	c.resolver.Reset()
	return nil
}

// ModalOpen reports whether a modal session is active
func (c *Controller) ModalOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modalOpen
}

// Mode returns the current session mode
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Selected returns the session's selected record
func (c *Controller) Selected() Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// HandleCodeBlur runs the duplicate-code check. It only fires in create
// mode; edit and view sessions skip it entirely.
func (c *Controller) HandleCodeBlur(ctx context.Context, code string) Outcome {
	c.mu.Lock()
	active := c.modalOpen && c.mode == ModeCreate
	c.mu.Unlock()
	if !active {
		return Outcome{State: ResolverIdle}
	}
	return c.resolver.Check(ctx, code)
}

// LoadExisting accepts the resolver's match: the session switches from
// create to edit with the fetched record selected.
func (c *Controller) LoadExisting(match Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.modalOpen || c.mode != ModeCreate || match == nil {
		return
	}
	c.mode = ModeEdit
	c.selected = match
	c.resolver.Reset()
}

// DismissMatch declines the resolver's offer; the create form stays as-is.
// The check is advisory, so the user may still submit a duplicate and let
// the server reject it.
func (c *Controller) DismissMatch() {
	c.resolver.Reset()
}

// SubmitForm stages the form data for save confirmation; nothing is sent
// yet. Basic field validation happens here so invalid payloads never reach
// the confirmation step.
func (c *Controller) SubmitForm(data Record) error {
	c.mu.Lock()
	open := c.modalOpen
	mode := c.mode
	c.mu.Unlock()
	if !open || mode == ModeView {
		return errors.New("no editable session")
	}
	if strings.TrimSpace(c.descriptor.Code(data)) == "" {
		return fmt.Errorf("%s is required", c.descriptor.CodeField)
	}
	if strings.TrimSpace(c.descriptor.DisplayName(data)) == "" {
		return fmt.Errorf("%s is required", c.descriptor.NameField)
	}
	if !c.saveConfirm.Request(data) {
		return errors.New("a save is already in flight")
	}
	return nil
}

// PendingSave returns the staged save payload, if any
func (c *Controller) PendingSave() (Record, bool) {
	return c.saveConfirm.Pending()
}

// CancelSave discards the staged save without side effects
func (c *Controller) CancelSave() {
	c.saveConfirm.Cancel()
}

// SaveInFlight reports whether a confirmed save is still running; the
// confirm action is disabled while true.
func (c *Controller) SaveInFlight() bool {
	return c.saveConfirm.InFlight()
}

// ConfirmSave dispatches the staged mutation. Create and edit share the
// upsert endpoint; the id decides which one the server performs. Success
// closes the modal and invalidates the list cache; any failure leaves both
// untouched.
func (c *Controller) ConfirmSave(ctx context.Context) error {
	data, ok := c.saveConfirm.Confirm()
	if !ok {
		return errors.New("nothing to confirm")
	}
	defer c.saveConfirm.Done()

	c.mu.Lock()
	if c.mode == ModeEdit && c.descriptor.ID(data) == 0 && c.selected != nil {
		data[c.descriptor.IDField] = c.descriptor.ID(c.selected)
	}
	c.mu.Unlock()

	env, err := c.client.Save(ctx, c.descriptor.Name, data)
	if err != nil {
		c.log.Warn("save failed",
			zap.String("entity", c.descriptor.Name),
			zap.Error(err))
		return fmt.Errorf("save failed: %w", err)
	}
	if env.Result != ResultSuccess {
		return &MutationError{Message: env.Message}
	}

	c.closeModal()
	c.list.Invalidate()
	return nil
}

// RequestDelete stages a delete confirmation. The display name is resolved
// locally from the loaded page; when the id is not present there the
// request aborts silently and no confirmation opens.
func (c *Controller) RequestDelete(id int64) bool {
	if !c.CanDelete() {
		return false
	}
	row, found := c.list.FindByID(id)
	if !found {
		return false
	}
	return c.deleteConfirm.Request(DeleteTarget{
		ID:   id,
		Name: c.descriptor.DisplayName(row),
	})
}

// PendingDelete returns the staged delete target, if any
func (c *Controller) PendingDelete() (DeleteTarget, bool) {
	return c.deleteConfirm.Pending()
}

// CancelDelete discards the staged delete without side effects
func (c *Controller) CancelDelete() {
	c.deleteConfirm.Cancel()
}

// DeleteInFlight reports whether a confirmed delete is still running
func (c *Controller) DeleteInFlight() bool {
	return c.deleteConfirm.InFlight()
}

// ConfirmDelete dispatches the staged delete. Success invalidates the list
// cache; failure surfaces the message and leaves the cache alone.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	target, ok := c.deleteConfirm.Confirm()
	if !ok {
		return errors.New("nothing to confirm")
	}
	defer c.deleteConfirm.Done()

	env, err := c.client.Delete(ctx, c.descriptor.Name, target.ID)
	if err != nil {
		c.log.Warn("delete failed",
			zap.String("entity", c.descriptor.Name),
			zap.Int64("id", target.ID),
			zap.Error(err))
		return fmt.Errorf("delete failed: %w", err)
	}
	if env.Result != ResultSuccess {
		return &MutationError{Message: env.Message}
	}

	c.list.Invalidate()
	return nil
}

// Cancel closes the modal session and discards any staged save
func (c *Controller) Cancel() {
	c.saveConfirm.Cancel()
	c.closeModal()
}

func (c *Controller) closeModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = false
	c.selected = nil
	c.resolver.Reset()
}
