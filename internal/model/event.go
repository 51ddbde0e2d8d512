package model

import "time"

type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventOther  EventType = "OTHER"
	EventError  EventType = "ERROR"
)

// ChangeEvent is a single notification for the watched file. Err is only set
// for EventError.
type ChangeEvent struct {
	Type      EventType
	Path      string
	Timestamp time.Time
	Err       error
}

// TriggersDeploy reports whether the event should cause a new upload.
func (e ChangeEvent) TriggersDeploy() bool {
	return e.Type == EventCreate || e.Type == EventModify
}
