package model

import (
	"time"

	"gorm.io/datatypes"
)

// AppSetting is a key/value configuration row. Value holds a JSON blob.
type AppSetting struct {
	Key       string         `gorm:"primaryKey;type:varchar(100)" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}
