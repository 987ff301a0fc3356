package services

import (
	"context"
	"strings"
	"time"

	"github.com/raymondartguy/portfolio-backend/internal/config"
	"github.com/raymondartguy/portfolio-backend/internal/models"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"github.com/raymondartguy/portfolio-backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SweeperService removes blobs no asset row references anymore and
// trims old audit rows. Uploads that were never attached to a project
// are the main source of orphans.
type SweeperService struct {
	db            *gorm.DB
	store         storage.ObjectStore
	audit         *AuditLogService
	cfg           config.MaintenanceConfig
	cronScheduler *cron.Cron
}

func NewSweeperService(db *gorm.DB, store storage.ObjectStore, audit *AuditLogService, cfg config.MaintenanceConfig) *SweeperService {
	return &SweeperService{
		db:    db,
		store: store,
		audit: audit,
		cfg:   cfg,
	}
}

func (s *SweeperService) StartScheduler() {
	if !s.cfg.SweepEnabled {
		logger.Info().Msg("maintenance sweeper disabled")
		return
	}

	s.cronScheduler = cron.New()
	if _, err := s.cronScheduler.AddFunc(s.cfg.SweepSchedule, func() {
		s.RunOnce(context.Background())
	}); err != nil {
		logger.Error().Err(err).Str("schedule", s.cfg.SweepSchedule).Msg("invalid sweep schedule")
		return
	}
	s.cronScheduler.Start()
	logger.Info().Str("schedule", s.cfg.SweepSchedule).Msg("maintenance sweeper started")
}

func (s *SweeperService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// RunOnce performs one full maintenance pass.
func (s *SweeperService) RunOnce(ctx context.Context) {
	deleted, err := s.SweepOrphanBlobs(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("orphan blob sweep failed")
	} else if deleted > 0 {
		logger.Info().Int("deleted", deleted).Msg("orphan blobs removed")
	}

	removed, err := s.audit.Cleanup(s.cfg.AuditRetentionDays)
	if err != nil {
		logger.Error().Err(err).Msg("audit log cleanup failed")
	} else if removed > 0 {
		logger.Info().Int64("removed", removed).Int("retention_days", s.cfg.AuditRetentionDays).Msg("old audit logs removed")
	}
}

// SweepOrphanBlobs deletes blobs that no asset row references. Keys
// under the published snapshot prefix are never touched, and recent
// uploads get a grace period so an in-flight attach cannot lose its
// blob.
func (s *SweeperService) SweepOrphanBlobs(ctx context.Context) (int, error) {
	var referenced []string
	if err := s.db.Model(&models.Asset{}).Pluck("r2_key", &referenced).Error; err != nil {
		return 0, err
	}
	keep := make(map[string]bool, len(referenced))
	for _, key := range referenced {
		keep[key] = true
	}

	objects, err := s.store.List(ctx, "")
	if err != nil {
		return 0, err
	}

	grace := time.Duration(s.cfg.OrphanGraceHours) * time.Hour
	cutoff := time.Now().Add(-grace)

	var orphans []string
	for _, obj := range objects {
		if strings.HasPrefix(obj.Key, "published/") {
			continue
		}
		if keep[obj.Key] {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		orphans = append(orphans, obj.Key)
	}

	if len(orphans) == 0 {
		return 0, nil
	}
	if err := s.store.Delete(ctx, orphans...); err != nil {
		return 0, err
	}
	return len(orphans), nil
}
