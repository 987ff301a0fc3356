package config

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Storage     StorageConfig     `yaml:"storage"`
	Upload      UploadConfig      `yaml:"upload"`
	Deploy      DeployConfig      `yaml:"deploy"`
	Admin       AdminConfig       `yaml:"admin"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
}

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Mode     string `yaml:"mode"` // debug, release, test
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

// StorageConfig points at any S3-compatible object store; Cloudflare R2
// in production, an in-memory store for local hacking and tests.
type StorageConfig struct {
	Driver          string `yaml:"driver"` // s3, memory
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

type UploadConfig struct {
	SigningSecret string `yaml:"signing_secret"`
	ExpirySeconds int    `yaml:"expiry_seconds"`
}

type DeployConfig struct {
	HookURL string `yaml:"hook_url"`
}

// AdminConfig controls the local-development identity fallback. In
// production the access gateway in front of this service supplies the
// authenticated email header.
type AdminConfig struct {
	AllowLocal bool `yaml:"allow_local"`
}

type MaintenanceConfig struct {
	SweepEnabled       bool   `yaml:"sweep_enabled"`
	SweepSchedule      string `yaml:"sweep_schedule"`
	OrphanGraceHours   int    `yaml:"orphan_grace_hours"`
	AuditRetentionDays int    `yaml:"audit_retention_days"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     "8080",
			Mode:     "debug",
			LogLevel: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "portfolio.db",
		},
		Storage: StorageConfig{
			Driver: "memory",
			Region: "auto",
		},
		Upload: UploadConfig{
			ExpirySeconds: 600,
		},
		Admin: AdminConfig{
			AllowLocal: true,
		},
		Maintenance: MaintenanceConfig{
			SweepEnabled:       true,
			SweepSchedule:      "0 4 * * *",
			OrphanGraceHours:   24,
			AuditRetentionDays: 30,
		},
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "portfolio.db"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "s3"
	}
	if c.Storage.Region == "" {
		c.Storage.Region = "auto"
	}
	if c.Upload.ExpirySeconds <= 0 {
		c.Upload.ExpirySeconds = 600
	}
	if c.Maintenance.SweepSchedule == "" {
		c.Maintenance.SweepSchedule = "0 4 * * *"
	}
	if c.Maintenance.OrphanGraceHours <= 0 {
		c.Maintenance.OrphanGraceHours = 24
	}
	if c.Maintenance.AuditRetentionDays <= 0 {
		c.Maintenance.AuditRetentionDays = 30
	}
}

// Validate rejects deployment mistakes outright instead of deferring
// them to the first request that needs the value.
func (c *Config) Validate() error {
	if c.Upload.SigningSecret == "" {
		return errors.New("upload.signing_secret is not configured (set UPLOAD_SIGNING_SECRET)")
	}
	if c.Storage.Driver == "s3" && c.Storage.Bucket == "" {
		return errors.New("storage.bucket is required when storage.driver is s3")
	}
	return nil
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Server.LogLevel = level
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if driver := os.Getenv("STORAGE_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}
	if endpoint := os.Getenv("STORAGE_ENDPOINT"); endpoint != "" {
		c.Storage.Endpoint = endpoint
	}
	if region := os.Getenv("STORAGE_REGION"); region != "" {
		c.Storage.Region = region
	}
	if bucket := os.Getenv("STORAGE_BUCKET"); bucket != "" {
		c.Storage.Bucket = bucket
	}
	if key := os.Getenv("STORAGE_ACCESS_KEY_ID"); key != "" {
		c.Storage.AccessKeyID = key
	}
	if secret := os.Getenv("STORAGE_SECRET_ACCESS_KEY"); secret != "" {
		c.Storage.SecretAccessKey = secret
	}
	if base := os.Getenv("ASSET_PUBLIC_BASE_URL"); base != "" {
		c.Storage.PublicBaseURL = base
	}
	if secret := os.Getenv("UPLOAD_SIGNING_SECRET"); secret != "" {
		c.Upload.SigningSecret = secret
	}
	if expiry := os.Getenv("UPLOAD_EXPIRY_SECONDS"); expiry != "" {
		if n, err := strconv.Atoi(expiry); err == nil {
			c.Upload.ExpirySeconds = n
		}
	}
	if hook := os.Getenv("DEPLOY_HOOK_URL"); hook != "" {
		c.Deploy.HookURL = hook
	}
	if allow := os.Getenv("ALLOW_LOCAL_ADMIN"); allow != "" {
		c.Admin.AllowLocal = allow == "true" || allow == "1"
	}
	if days := os.Getenv("AUDIT_RETENTION_DAYS"); days != "" {
		if n, err := strconv.Atoi(days); err == nil {
			c.Maintenance.AuditRetentionDays = n
		}
	}
}
