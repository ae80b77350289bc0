package repository

import (
	"context"
	"time"

	"cost-calc-api/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository is the key/value store behind process-wide settings.
type SettingRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var s model.AppSetting
	if err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error; err != nil {
		return nil, notFound(err)
	}
	return []byte(s.Value), nil
}

// Save upserts the value under key.
func (r *settingRepo) Save(ctx context.Context, key string, value []byte) error {
	row := model.AppSetting{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (r *settingRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&model.AppSetting{}, "key = ?", key).Error
}
