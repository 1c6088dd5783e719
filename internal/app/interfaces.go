package app

import (
	"github.com/asaskevich/EventBus"
	"gorm.io/gorm"

	"github.com/handcraftlab/atelier/config"
	"github.com/handcraftlab/atelier/internal/mailer"
	"github.com/handcraftlab/atelier/internal/storage"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	Settings() *SettingsManager
}

// BusProvider provides the in-process event bus used for operation auditing
type BusProvider interface {
	Bus() EventBus.Bus
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	BusProvider

	Storage() *storage.Client
	Mailer() *mailer.Mailer

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
