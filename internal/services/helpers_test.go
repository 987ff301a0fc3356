package services

import (
	"testing"

	"github.com/raymondartguy/portfolio-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. A single
// connection keeps :memory: from forking into separate databases
// across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.Asset{},
		&models.SiteSettings{},
		&models.PublishSnapshot{},
		&models.AuditLog{},
	))
	return db
}

func strPtr(v string) *string     { return &v }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func listPtr(values ...string) *StringList {
	l := StringList(values)
	return &l
}

// seedReadyProject writes a publishable graphic project with one image
// asset and returns its id.
func seedReadyProject(t *testing.T, db *gorm.DB, slug, status string) string {
	t.Helper()

	p := readyGraphicProject()
	p.ID = "proj-" + slug
	p.Slug = slug
	p.Status = status
	assets := p.Assets
	p.Assets = nil

	require.NoError(t, db.Create(p).Error)
	for i := range assets {
		assets[i].ID = p.ID + "-asset"
		assets[i].ProjectID = p.ID
		assets[i].R2Key = p.ID + "/cover.png"
		require.NoError(t, db.Create(&assets[i]).Error)
	}
	return p.ID
}
