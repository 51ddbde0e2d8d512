package model

import "time"

type Snapshot struct {
	URI        string     `json:"uri"`
	File       string     `json:"file"`
	URL        string     `json:"url"`
	State      LoopState  `json:"state"`
	StartedAt  time.Time  `json:"started_at"`
	Deployed   int        `json:"deployed"`
	Failed     int        `json:"failed"`
	LastDeploy *time.Time `json:"last_deploy"`
	LastStatus int        `json:"last_status"`
	LastError  string     `json:"last_error,omitempty"`
}
