package repository

import (
	"deployer/internal/db"
	"deployer/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepository(t *testing.T) {
	require.NoError(t, db.Init())

	target := model.DeployTarget{Server: "http://localhost:4000", URI: "my-script", File: "file.js"}
	repo := NewHistoryRepository()

	require.NoError(t, repo.Save(target, model.TriggerInitial, model.UploadResult{Success: true, StatusCode: 200, Size: 14}))
	require.NoError(t, repo.Save(target, model.TriggerRedeploy, model.UploadResult{StatusCode: 500, Detail: "boom"}))
	require.NoError(t, repo.Save(target, model.TriggerRedeploy, model.UploadResult{Err: errors.New("connection refused")}))

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 3, Success: 1, Failed: 2}, stats)

	recent, err := repo.GetRecent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "connection refused", recent[0].ErrMsg)
	assert.Equal(t, "status 500: boom", recent[1].ErrMsg)
	assert.Equal(t, "http://localhost:4000/api/scripts/my-script", recent[1].URL)

	failed, err := repo.GetFailed()
	require.NoError(t, err)
	assert.Len(t, failed, 2)
	for _, h := range failed {
		assert.Equal(t, model.StatusFailed, h.Status)
		assert.Equal(t, model.TriggerRedeploy, h.Trigger)
	}
}

func TestInitStartsEmpty(t *testing.T) {
	require.NoError(t, db.Init())

	stats, err := NewHistoryRepository().GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}
