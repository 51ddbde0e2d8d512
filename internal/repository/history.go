package repository

import (
	"deployer/internal/db"
	"deployer/internal/model"
	"time"
)

type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) Save(target model.DeployTarget, trigger model.Trigger, result model.UploadResult) error {
	status := model.StatusSuccess
	errMsg := ""
	if err := result.Failure(); err != nil {
		status = model.StatusFailed
		errMsg = err.Error()
	}

	history := model.History{
		Status:     status,
		Trigger:    trigger,
		URL:        target.URL(),
		FilePath:   target.File,
		StatusCode: result.StatusCode,
		Size:       result.Size,
		ErrMsg:     errMsg,
		DeployedAt: time.Now(),
	}

	return db.DB.Create(&history).Error
}

type Stats struct {
	Total   int64 `json:"total"`
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
}

func (r *HistoryRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := db.DB.Model(&model.History{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.History{}).
		Where("status = ?", model.StatusSuccess).
		Count(&stats.Success).Error; err != nil {
		return stats, err
	}

	stats.Failed = stats.Total - stats.Success
	return stats, nil
}

func (r *HistoryRepository) GetRecent(limit int) ([]model.History, error) {
	var histories []model.History
	result := db.DB.
		Order("deployed_at desc, id desc").
		Limit(limit).
		Find(&histories)

	return histories, result.Error
}

func (r *HistoryRepository) GetFailed() ([]model.History, error) {
	var histories []model.History
	result := db.DB.
		Where("status = ?", model.StatusFailed).
		Order("deployed_at desc, id desc").
		Find(&histories)

	return histories, result.Error
}
