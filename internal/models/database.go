package models

import (
	"fmt"
	"time"

	"github.com/raymondartguy/portfolio-backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&Project{},
		&Asset{},
		&SiteSettings{},
		&PublishSnapshot{},
		&AuditLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// Default copy for the site_settings singleton, written on first boot
// so the public site renders something before the admin edits it.
const (
	DefaultHeroTitle    = "Graphic Design and 3D Worlds"
	DefaultHeroSubtitle = "Raymondo builds identities, editorial systems, and 3D forms with a tactile visual language. Each project page includes theme inspiration, design DNA, and process cues."
	DefaultFooterText   = "Available for identity, visual systems, and 3D direction work.\nraymondartguy@gmail.com"
)

// SeedDefaultData creates default data if not exists
func SeedDefaultData() error {
	var count int64
	DB.Model(&SiteSettings{}).Where("id = ?", 1).Count(&count)
	if count == 0 {
		row := SiteSettings{
			ID:               1,
			HomeHeroTitle:    DefaultHeroTitle,
			HomeHeroSubtitle: DefaultHeroSubtitle,
			HomeFooterText:   DefaultFooterText,
			UpdatedAt:        time.Now(),
		}
		if err := DB.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
