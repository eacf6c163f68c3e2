package panel

import "github.com/evcraddock/villainapp/internal/comment"

type op int

const (
	opLoad op = iota
	opCreate
	opUpdate
	opDelete
)

func (o op) String() string {
	switch o {
	case opLoad:
		return "load"
	case opCreate:
		return "create"
	case opUpdate:
		return "update"
	case opDelete:
		return "delete"
	}
	return "unknown"
}

// Call performs the network half of a panel operation. It reads no panel
// state, so it may run on any goroutine; its Result goes back through Apply.
type Call func() Result

// Result is the outcome of a Call.
type Result struct {
	op       op
	gen      uint64
	parentID string
	targetID string
	comments []*comment.Comment
	err      error
}

// Err returns the call's error, if any.
func (r Result) Err() error { return r.err }

// IsMutation reports whether the result came from a create, update or delete.
func (r Result) IsMutation() bool { return r.op != opLoad }
