package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SystemConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

// StorageConfig points at a Supabase-style object storage service. Public
// object URLs have the shape {endpoint}/storage/v1/object/public/{bucket}/{path}.
type StorageConfig struct {
	Endpoint      string `yaml:"endpoint" json:"endpoint"`
	APIKey        string `yaml:"api_key" json:"api_key"`
	UploadBucket  string `yaml:"upload_bucket" json:"upload_bucket"`
	GalleryBucket string `yaml:"gallery_bucket" json:"gallery_bucket"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SystemConfig  `yaml:"system" json:"system"`
	Web      WebConfig     `yaml:"web" json:"web"`
	Database DBConfig      `yaml:"database" json:"database"`
	Storage  StorageConfig `yaml:"storage" json:"storage"`
	Smtp     SmtpConfig    `yaml:"smtp" json:"smtp"`
	Logger   LoggerConfig  `yaml:"logger" json:"logger"`
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Appid:    "atelier",
			Location: "Asia/Jakarta",
			Workdir:  "/var/atelier",
			Debug:    true,
		},
		Web: WebConfig{
			Host:   "0.0.0.0",
			Port:   1816,
			Secret: "9b6de5cc-atelier-1816-b4d3-b3e5b5cc1816",
		},
		Database: DBConfig{
			Type:   "postgres",
			Host:   "127.0.0.1",
			Port:   5432,
			Name:   "atelier",
			User:   "postgres",
			Passwd: "",
		},
		Storage: StorageConfig{
			UploadBucket:  "product-images",
			GalleryBucket: "gallery-assets",
		},
		Smtp: SmtpConfig{
			Host: "127.0.0.1",
			Port: 587,
			From: "noreply@atelier.local",
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/atelier/atelier.log",
		},
	}
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file is not an error; defaults are used.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig()
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}
	setEnvString("ATELIER_WORKDIR", &cfg.System.Workdir)
	setEnvString("ATELIER_WEB_HOST", &cfg.Web.Host)
	setEnvInt("ATELIER_WEB_PORT", &cfg.Web.Port)
	setEnvString("ATELIER_WEB_SECRET", &cfg.Web.Secret)
	setEnvString("ATELIER_DB_TYPE", &cfg.Database.Type)
	setEnvString("ATELIER_DB_HOST", &cfg.Database.Host)
	setEnvInt("ATELIER_DB_PORT", &cfg.Database.Port)
	setEnvString("ATELIER_DB_NAME", &cfg.Database.Name)
	setEnvString("ATELIER_DB_USER", &cfg.Database.User)
	setEnvString("ATELIER_DB_PWD", &cfg.Database.Passwd)
	setEnvString("ATELIER_STORAGE_ENDPOINT", &cfg.Storage.Endpoint)
	setEnvString("ATELIER_STORAGE_API_KEY", &cfg.Storage.APIKey)
	setEnvString("ATELIER_SMTP_HOST", &cfg.Smtp.Host)
	setEnvInt("ATELIER_SMTP_PORT", &cfg.Smtp.Port)
	setEnvString("ATELIER_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvString("ATELIER_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvString("ATELIER_SMTP_FROM", &cfg.Smtp.From)
	setEnvString("ATELIER_SMTP_TO", &cfg.Smtp.To)
	return cfg
}

func setEnvString(key string, target *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

func setEnvInt(key string, target *int) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = cast.ToInt(v)
	}
}

// InitDirs creates the workdir layout expected by the logger and metrics store.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0o755)
}
