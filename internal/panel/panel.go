// Package panel holds the comment panel state machine for a single villain:
// list fetch, create, inline edit and delete, plus the transient flags a
// view needs (loading, submitting, error banner, active edit target).
//
// The backend is the only source of truth. Every successful mutation is
// followed by a full refetch; the local list is never patched.
package panel

import (
	"fmt"
	"log/slog"

	"github.com/evcraddock/villainapp/internal/client"
	"github.com/evcraddock/villainapp/internal/comment"
)

// User-facing messages.
const (
	MsgMissingFields = "Por favor complete todos los campos"
	MsgAddFailed     = "No se pudo agregar el comentario. Intente nuevamente."
	MsgDeleteFailed  = "No se pudo eliminar el comentario. Intente nuevamente."
	MsgUpdateFailed  = "No se pudo actualizar el comentario. Intente nuevamente."
	loadFailedFormat = "No se pudieron cargar los comentarios: %v. Por favor, intente nuevamente más tarde."
)

// API is the subset of the REST client the panel talks to.
type API interface {
	ListComments(villainID string) ([]*comment.Comment, error)
	CreateComment(villainID string, d comment.Draft) error
	UpdateComment(id string, d comment.Draft) error
	DeleteComment(id string) error
}

var _ API = (*client.Client)(nil)

// Panel is the comment panel for one villain. It is not safe for concurrent
// use: all methods must be called from the same goroutine (the UI loop).
// Network calls returned as Call values may run elsewhere.
type Panel struct {
	api      API
	parentID string
	gen      uint64 // bumped on parent change; results from older generations are dropped

	comments  []*comment.Comment
	draft     comment.Draft
	editingID string
	editDraft comment.Draft
	errMsg    string

	pendingLoads int
	submitting   bool
}

// New creates a panel bound to api. Call SetParent to start loading.
func New(api API) *Panel {
	return &Panel{api: api, comments: []*comment.Comment{}}
}

// SetParent switches the panel to another villain, discarding all state
// held for the previous one, and loads its comments.
func (p *Panel) SetParent(parentID string) {
	p.Reset(parentID)
	p.Load()
}

// Reset switches to another villain without loading. Results of calls
// issued before the reset are dropped when applied.
func (p *Panel) Reset(parentID string) {
	p.gen++
	p.parentID = parentID
	p.comments = []*comment.Comment{}
	p.draft = comment.Draft{}
	p.editingID = ""
	p.editDraft = comment.Draft{}
	p.errMsg = ""
	p.pendingLoads = 0
	p.submitting = false
}

// ParentID returns the villain whose comments are shown.
func (p *Panel) ParentID() string { return p.parentID }

// Comments returns the current list in backend order.
func (p *Panel) Comments() []*comment.Comment {
	out := make([]*comment.Comment, len(p.comments))
	copy(out, p.comments)
	return out
}

// Draft returns the new-comment form state.
func (p *Panel) Draft() comment.Draft { return p.draft }

// SetDraft replaces the new-comment form state.
func (p *Panel) SetDraft(d comment.Draft) { p.draft = d }

// EditingID returns the comment in edit mode, or "" when none is.
func (p *Panel) EditingID() string { return p.editingID }

// IsEditing reports whether id is the comment in edit mode.
func (p *Panel) IsEditing(id string) bool { return p.editingID != "" && p.editingID == id }

// EditDraft returns the working copy of the comment being edited.
func (p *Panel) EditDraft() comment.Draft { return p.editDraft }

// SetEditDraft replaces the working copy. It is ignored outside edit mode.
func (p *Panel) SetEditDraft(d comment.Draft) {
	if p.editingID == "" {
		return
	}
	p.editDraft = d
}

// Err returns the banner message, or "".
func (p *Panel) Err() string { return p.errMsg }

// IsLoading reports whether a list fetch is in flight.
func (p *Panel) IsLoading() bool { return p.pendingLoads > 0 }

// IsSubmitting reports whether a create request is in flight.
func (p *Panel) IsSubmitting() bool { return p.submitting }

// CountLabel is the list heading.
func (p *Panel) CountLabel() string {
	if p.IsLoading() {
		return "Cargando..."
	}
	return comment.CountLabel(len(p.comments))
}

// Find returns the comment with the given id from the current list.
func (p *Panel) Find(id string) (*comment.Comment, bool) {
	for _, c := range p.comments {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// BeginEdit puts c into edit mode, seeding the working copy from it. Any
// other comment leaves edit mode and its unsaved changes are dropped.
func (p *Panel) BeginEdit(c *comment.Comment) {
	if c == nil {
		return
	}
	p.editingID = c.ID
	p.editDraft = comment.Draft{Author: c.Author, Body: c.Body}
}

// CancelEdit leaves edit mode, discarding the working copy and the banner.
func (p *Panel) CancelEdit() {
	p.editingID = ""
	p.editDraft = comment.Draft{}
	p.errMsg = ""
}

// Load fetches the list and waits for the result.
func (p *Panel) Load() { p.run(p.BeginLoad()) }

// Submit creates a comment from the draft and refetches on success.
func (p *Panel) Submit() { p.run(p.BeginSubmit()) }

// SubmitComment sets the draft and submits it.
func (p *Panel) SubmitComment(author, body string) {
	p.SetDraft(comment.Draft{Author: author, Body: body})
	p.Submit()
}

// Delete removes a comment and refetches on success.
func (p *Panel) Delete(id string) { p.run(p.BeginDelete(id)) }

// SaveEdit sends the working copy for id and refetches on success.
func (p *Panel) SaveEdit(id string) { p.run(p.BeginSaveEdit(id)) }

func (p *Panel) run(call Call) {
	for call != nil {
		call = p.Apply(call())
	}
}

// BeginLoad marks a fetch as in flight and returns the call that performs
// it. Without a parent id the list is emptied and nil is returned.
func (p *Panel) BeginLoad() Call {
	if p.parentID == "" {
		slog.Debug("comment load skipped: no villain id")
		p.comments = []*comment.Comment{}
		return nil
	}

	p.pendingLoads++
	api, parentID, gen := p.api, p.parentID, p.gen
	return func() Result {
		comments, err := api.ListComments(parentID)
		return Result{op: opLoad, gen: gen, parentID: parentID, comments: comments, err: err}
	}
}

// BeginSubmit validates the draft and returns the create call. On
// validation failure, or while a create is already in flight, it returns nil.
func (p *Panel) BeginSubmit() Call {
	if p.submitting {
		return nil
	}
	if p.draft.Blank() {
		p.errMsg = MsgMissingFields
		return nil
	}

	p.submitting = true
	p.errMsg = ""
	api, parentID, gen, d := p.api, p.parentID, p.gen, p.draft
	return func() Result {
		err := api.CreateComment(parentID, d)
		return Result{op: opCreate, gen: gen, parentID: parentID, err: err}
	}
}

// BeginDelete returns the delete call for id.
func (p *Panel) BeginDelete(id string) Call {
	api, parentID, gen := p.api, p.parentID, p.gen
	return func() Result {
		err := api.DeleteComment(id)
		return Result{op: opDelete, gen: gen, parentID: parentID, targetID: id, err: err}
	}
}

// BeginSaveEdit validates the working copy and returns the update call,
// or nil when a field is blank.
func (p *Panel) BeginSaveEdit(id string) Call {
	if p.editDraft.Blank() {
		p.errMsg = MsgMissingFields
		return nil
	}

	api, parentID, gen, d := p.api, p.parentID, p.gen, p.editDraft
	return func() Result {
		err := api.UpdateComment(id, d)
		return Result{op: opUpdate, gen: gen, parentID: parentID, targetID: id, err: err}
	}
}

// Apply folds the outcome of a call into the panel. It returns the refetch
// that must follow a successful mutation, or nil.
func (p *Panel) Apply(r Result) Call {
	if r.gen != p.gen {
		slog.Debug("dropping stale comment result", "op", r.op.String(), "villain", r.parentID)
		return nil
	}

	switch r.op {
	case opLoad:
		p.applyLoad(r)
		return nil

	case opCreate:
		p.submitting = false
		if r.err != nil {
			slog.Debug("comment create failed", "villain", r.parentID, "error", r.err)
			p.errMsg = MsgAddFailed
			return nil
		}
		p.draft = comment.Draft{}
		return p.BeginLoad()

	case opDelete:
		if r.err != nil {
			slog.Debug("comment delete failed", "id", r.targetID, "error", r.err)
			p.errMsg = MsgDeleteFailed
			return nil
		}
		if p.editingID == r.targetID {
			p.CancelEdit()
		}
		return p.BeginLoad()

	case opUpdate:
		if r.err != nil {
			slog.Debug("comment update failed", "id", r.targetID, "error", r.err)
			p.errMsg = MsgUpdateFailed
			return nil
		}
		// Another comment may have entered edit mode while the save was in
		// flight; leave that edit alone.
		if p.editingID == r.targetID {
			p.CancelEdit()
		}
		return p.BeginLoad()
	}

	return nil
}

func (p *Panel) applyLoad(r Result) {
	if p.pendingLoads > 0 {
		p.pendingLoads--
	}

	switch {
	case r.err == nil:
		slog.Debug("comments loaded", "villain", r.parentID, "count", len(r.comments))
		p.comments = nonNil(r.comments)
		p.errMsg = ""
	case client.IsNotFound(r.err):
		slog.Debug("no comments for villain", "villain", r.parentID)
		p.comments = []*comment.Comment{}
		p.errMsg = ""
	default:
		slog.Debug("comment load failed", "villain", r.parentID, "error", r.err)
		p.errMsg = fmt.Sprintf(loadFailedFormat, r.err)
	}
}

func nonNil(cs []*comment.Comment) []*comment.Comment {
	out := make([]*comment.Comment, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
