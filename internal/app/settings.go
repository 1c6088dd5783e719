package app

import (
	"time"

	"github.com/spf13/cast"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/pkg/common"
)

// SettingsManager reads and writes sys_config rows with typed accessors.
type SettingsManager struct {
	app *Application
}

func NewSettingsManager(a *Application) *SettingsManager {
	return &SettingsManager{app: a}
}

func (m *SettingsManager) GetString(category, name string) string {
	var cfg domain.SysConfig
	err := m.app.gormDB.Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		return ""
	}
	return cfg.Value
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

// GetBool treats both "enabled" and the usual boolean spellings as true.
func (m *SettingsManager) GetBool(category, name string) bool {
	v := m.GetString(category, name)
	return v == common.ENABLED || cast.ToBool(v)
}

// SetValue upserts one settings entry.
func (m *SettingsManager) SetValue(category, name, value string) error {
	var count int64
	m.app.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).
		Count(&count)
	if count == 0 {
		return m.app.gormDB.Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	}
	return m.app.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
}

// All returns every settings row ordered for display.
func (m *SettingsManager) All() ([]domain.SysConfig, error) {
	var rows []domain.SysConfig
	err := m.app.gormDB.Order("type, sort, name").Find(&rows).Error
	return rows, err
}
