package model

import (
	"fmt"
	"time"
)

type Trigger string

const (
	TriggerInitial  Trigger = "INITIAL"
	TriggerRedeploy Trigger = "REDEPLOY"
)

// UploadResult describes one upload attempt. StatusCode is zero when no
// response was received, in which case Err holds the read or network failure.
type UploadResult struct {
	Success    bool
	StatusCode int
	Detail     string
	Err        error
	Size       int
	Duration   time.Duration
}

// Failure returns nil for a successful upload and otherwise an error
// describing why the attempt failed.
func (r UploadResult) Failure() error {
	switch {
	case r.Success:
		return nil
	case r.Err != nil:
		return r.Err
	case r.Detail != "":
		return fmt.Errorf("status %d: %s", r.StatusCode, r.Detail)
	default:
		return fmt.Errorf("status %d", r.StatusCode)
	}
}
