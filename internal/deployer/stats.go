package deployer

import (
	"deployer/internal/model"
	"sync"
	"time"
)

type Stats struct {
	mu         sync.RWMutex
	state      model.LoopState
	startedAt  time.Time
	deployed   int
	failed     int
	lastDeploy *time.Time
	lastStatus int
	lastError  string
}

func NewStats() *Stats {
	return &Stats{
		state:     model.StateIdle,
		startedAt: time.Now(),
	}
}

func (s *Stats) Record(result model.UploadResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastDeploy = new(time.Now())
	s.lastStatus = result.StatusCode
	if err := result.Failure(); err != nil {
		s.failed++
		s.lastError = err.Error()
	} else {
		s.deployed++
		s.lastError = ""
	}
}

func (s *Stats) SetState(state model.LoopState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *Stats) State() model.LoopState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Stats) Snapshot(target model.DeployTarget) model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.Snapshot{
		URI:        target.URI,
		File:       target.File,
		URL:        target.URL(),
		State:      s.state,
		StartedAt:  s.startedAt,
		Deployed:   s.deployed,
		Failed:     s.failed,
		LastDeploy: s.lastDeploy,
		LastStatus: s.lastStatus,
		LastError:  s.lastError,
	}
}
