package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raymondartguy/portfolio-backend/internal/models"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"github.com/raymondartguy/portfolio-backend/pkg/logger"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
	"gorm.io/gorm"
)

const (
	// SnapshotKey is the fixed, well-known location of the live
	// snapshot; every publish overwrites it.
	SnapshotKey = "published/catalog.json"
	// HistoryPrefix holds immutable timestamped copies of every
	// published snapshot.
	HistoryPrefix = "published/history/"

	snapshotContentType = "application/json; charset=utf-8"
)

// PublishService owns the draft/published state machine's global step:
// validating the whole published set, writing the snapshot, recording
// the ledger row, and poking the deploy hook.
type PublishService struct {
	db      *gorm.DB
	store   storage.ObjectStore
	catalog *CatalogService
	hookURL string
	client  *http.Client
}

func NewPublishService(db *gorm.DB, store storage.ObjectStore, catalog *CatalogService, hookURL string) *PublishService {
	return &PublishService{
		db:      db,
		store:   store,
		catalog: catalog,
		hookURL: hookURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type PublishResult struct {
	OK              bool           `json:"ok"`
	DryRun          bool           `json:"dryRun,omitempty"`
	ProjectCount    int            `json:"projectCount"`
	SnapshotKey     string         `json:"snapshotKey,omitempty"`
	HistoryKey      string         `json:"historyKey,omitempty"`
	DeployTriggered bool           `json:"deployTriggered"`
	Errors          []string       `json:"errors,omitempty"`
	Warnings        []string       `json:"warnings,omitempty"`
	Readiness       []ReadinessRow `json:"readiness"`
}

type DeployStatusResult struct {
	OK                    bool   `json:"ok"`
	HasPendingChanges     bool   `json:"hasPendingChanges"`
	HasDeployedSnapshot   bool   `json:"hasDeployedSnapshot"`
	PublishedProjectCount int    `json:"publishedProjectCount"`
	Warning               string `json:"warning,omitempty"`
}

// Publish validates the full published set and, unless dryRun, writes
// the snapshot, a history copy, and a ledger row, then best-effort
// triggers the deploy hook. All-or-nothing: one failing published
// project blocks the entire catalog.
func (s *PublishService) Publish(ctx context.Context, dryRun bool, actor string) (*PublishResult, error) {
	built, err := s.catalog.BuildPublishedCatalog()
	if err != nil {
		return nil, err
	}

	result := &PublishResult{
		OK:           len(built.Errors) == 0,
		DryRun:       dryRun,
		ProjectCount: len(built.Snapshot.Projects),
		Errors:       built.Errors,
		Readiness:    built.Readiness,
	}

	if dryRun {
		return result, nil
	}

	if len(built.Errors) > 0 {
		return result, nil
	}

	body, err := json.MarshalIndent(built.Snapshot, "", "  ")
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, SnapshotKey, body, snapshotContentType); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	// Object keys cannot contain colons on every backend; fold them
	// out of the timestamp.
	stamp := strings.ReplaceAll(built.Snapshot.GeneratedAt.Format(time.RFC3339), ":", "-")
	historyKey := HistoryPrefix + "catalog-" + stamp + ".json"
	if err := s.store.Put(ctx, historyKey, body, snapshotContentType); err != nil {
		return nil, fmt.Errorf("write snapshot history: %w", err)
	}

	if actor == "" {
		actor = "unknown"
	}
	ledger := models.PublishSnapshot{
		SnapshotKey:  SnapshotKey,
		ProjectCount: len(built.Snapshot.Projects),
		TriggeredBy:  actor,
		ErrorsJSON:   "[]",
		CreatedAt:    time.Now(),
	}
	if err := s.db.Create(&ledger).Error; err != nil {
		return nil, fmt.Errorf("record publish ledger: %w", err)
	}

	result.SnapshotKey = SnapshotKey
	result.HistoryKey = historyKey
	result.DeployTriggered, result.Warnings = s.triggerDeploy(ctx)

	logger.Info().
		Str("snapshot_key", SnapshotKey).
		Int("project_count", result.ProjectCount).
		Str("actor", actor).
		Bool("deploy_triggered", result.DeployTriggered).
		Msg("catalog published")

	return result, nil
}

// BulkPublish flips several drafts to published and runs one real
// publish. All-or-nothing pre-flight: if any selected project is not
// an individually ready draft, or the existing published set has
// outstanding errors, no status changes.
func (s *PublishService) BulkPublish(ctx context.Context, ids []string, actor string) (*PublishResult, error) {
	if len(ids) == 0 {
		return nil, response.NewBadRequest("projectIds is required.")
	}

	var preflight []string
	selected := make([]*models.Project, 0, len(ids))
	for _, id := range ids {
		var p models.Project
		err := s.db.Preload("Assets", assetOrder).First(&p, "id = ?", id).Error
		if err == gorm.ErrRecordNotFound {
			return nil, response.NewNotFound("Project " + id + " not found.")
		}
		if err != nil {
			return nil, err
		}
		if p.Status != "draft" {
			preflight = append(preflight, p.Title+": already published.")
			continue
		}
		readiness := ComputeReadiness(&p)
		if !readiness.CanPublish {
			preflight = append(preflight, p.Title+": "+strings.Join(readiness.HardMissing, " "))
		}
		selected = append(selected, &p)
	}

	built, err := s.catalog.BuildPublishedCatalog()
	if err != nil {
		return nil, err
	}
	preflight = append(preflight, built.Errors...)

	if len(preflight) > 0 {
		return &PublishResult{
			OK:        false,
			Errors:    preflight,
			Readiness: built.Readiness,
		}, nil
	}

	now := time.Now()
	for _, p := range selected {
		if err := s.db.Model(&models.Project{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"status":       "published",
				"published_at": now,
				"updated_at":   now,
			}).Error; err != nil {
			return nil, err
		}
	}

	return s.Publish(ctx, false, actor)
}

// DeployStatus compares the current catalog against the deployed
// snapshot. A missing or unreadable deployed snapshot is reported as a
// warning, never a failure.
func (s *PublishService) DeployStatus(ctx context.Context) (*DeployStatusResult, error) {
	built, err := s.catalog.BuildPublishedCatalog()
	if err != nil {
		return nil, err
	}

	currentSig, err := projectsSignature(built.Snapshot.Projects)
	if err != nil {
		return nil, err
	}

	result := &DeployStatusResult{
		OK:                    true,
		PublishedProjectCount: len(built.Snapshot.Projects),
	}

	obj, err := s.store.Get(ctx, SnapshotKey)
	if err != nil {
		result.Warning = "Could not load deployed snapshot: " + err.Error()
	}

	var deployedSig string
	if obj != nil {
		var deployed struct {
			Projects json.RawMessage `json:"projects"`
		}
		if jsonErr := json.Unmarshal(obj.Body, &deployed); jsonErr != nil {
			result.Warning = "Could not parse deployed snapshot: " + jsonErr.Error()
		} else {
			result.HasDeployedSnapshot = true
			deployedSig, err = normalizeJSON(deployed.Projects)
			if err != nil {
				result.Warning = "Could not parse deployed snapshot: " + err.Error()
				result.HasDeployedSnapshot = false
			}
		}
	}

	if result.HasDeployedSnapshot {
		result.HasPendingChanges = deployedSig != currentSig
	} else {
		result.HasPendingChanges = len(built.Snapshot.Projects) > 0
	}

	return result, nil
}

// triggerDeploy fires the deploy hook. Absence of configuration and
// hook failures are warnings on an otherwise successful publish.
func (s *PublishService) triggerDeploy(ctx context.Context) (bool, []string) {
	if s.hookURL == "" {
		return false, []string{"Deploy hook is not configured. Snapshot saved without triggering deploy."}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.hookURL, nil)
	if err != nil {
		return false, []string{"Deploy hook error: " + err.Error()}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("deploy hook request failed")
		return false, []string{"Deploy hook error: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, []string{fmt.Sprintf("Deploy hook returned %d.", resp.StatusCode)}
	}
	return true, nil
}

// projectsSignature renders the projects array in a canonical form so
// current (struct-ordered) and deployed (stored) documents compare
// equal when their content matches.
func projectsSignature(projects []ProjectView) (string, error) {
	raw, err := json.Marshal(projects)
	if err != nil {
		return "", err
	}
	return normalizeJSON(raw)
}

func normalizeJSON(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("[]")
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", err
	}
	out, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
