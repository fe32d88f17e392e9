package models

import (
	"time"

	"gorm.io/datatypes"
)

// LevelConfigModel is the GORM model for level_configs table
type LevelConfigModel struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`
	Rank        int            `gorm:"column:rank_value;not null;uniqueIndex:uk_level_configs_rank"`
	Name        string         `gorm:"column:name;type:varchar(50);not null"`
	Description string         `gorm:"column:description;type:text"`
	Color       string         `gorm:"column:color;type:varchar(7)"`
	Icon        string         `gorm:"column:icon;type:varchar(64)"`
	Permissions datatypes.JSON `gorm:"column:permissions;type:json;not null"`
	UploadQuota *int           `gorm:"column:upload_quota"`
	Version     int            `gorm:"column:version;not null;default:1"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (LevelConfigModel) TableName() string {
	return "level_configs"
}
