package domain

import "time"

// ChangeAction identifies the kind of mutation recorded in the audit trail.
type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionUpdated ChangeAction = "updated"
	ActionDeleted ChangeAction = "deleted"
)

// ChangeEvent records a single product mutation performed by an actor.
type ChangeEvent struct {
	ProductID string
	Action    ChangeAction
	Actor     string
	Timestamp time.Time
}
