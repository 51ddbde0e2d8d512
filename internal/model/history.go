package model

import (
	"time"

	"gorm.io/gorm"
)

type DeployStatus string

const (
	StatusSuccess DeployStatus = "SUCCESS"
	StatusFailed  DeployStatus = "FAILED"
)

type History struct {
	gorm.Model
	Status     DeployStatus `gorm:"not null" json:"status"`
	Trigger    Trigger      `gorm:"not null" json:"trigger"`
	URL        string       `gorm:"not null" json:"url"`
	FilePath   string       `gorm:"not null" json:"file_path"`
	StatusCode int          `json:"status_code"`
	Size       int          `json:"size"`
	ErrMsg     string       `json:"err_msg"`
	DeployedAt time.Time    `gorm:"not null" json:"deployed_at"`
}
