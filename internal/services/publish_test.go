package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raymondartguy/portfolio-backend/internal/models"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPublishFixture(t *testing.T, hookURL string) (*PublishService, *storage.MemoryStore, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	store := storage.NewMemoryStore()
	site := NewSiteContentService(db)
	catalog := NewCatalogService(db, site, "")
	return NewPublishService(db, store, catalog, hookURL), store, db
}

func TestPublish_WritesSnapshotHistoryAndLedger(t *testing.T) {
	svc, store, db := newPublishFixture(t, "")
	seedReadyProject(t, db, "alpha", "published")

	result, err := svc.Publish(context.Background(), false, "editor@example.com")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, 1, result.ProjectCount)
	assert.Equal(t, SnapshotKey, result.SnapshotKey)
	assert.True(t, strings.HasPrefix(result.HistoryKey, HistoryPrefix+"catalog-"), "history key %q", result.HistoryKey)
	assert.NotContains(t, result.HistoryKey[len(HistoryPrefix):], ":")
	assert.False(t, result.DeployTriggered)
	assert.NotEmpty(t, result.Warnings, "unconfigured hook should warn")

	// Both blobs exist and decode.
	obj, err := store.Get(context.Background(), SnapshotKey)
	require.NoError(t, err)
	require.NotNil(t, obj)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(obj.Body, &snapshot))
	require.Len(t, snapshot.Projects, 1)
	assert.Equal(t, "alpha", snapshot.Projects[0].Slug)
	assert.NotEmpty(t, snapshot.Site.HeroTitle)

	history, err := store.Get(context.Background(), result.HistoryKey)
	require.NoError(t, err)
	require.NotNil(t, history)
	assert.Equal(t, obj.Body, history.Body)

	// Ledger row recorded with the actor.
	var ledger models.PublishSnapshot
	require.NoError(t, db.First(&ledger).Error)
	assert.Equal(t, SnapshotKey, ledger.SnapshotKey)
	assert.Equal(t, 1, ledger.ProjectCount)
	assert.Equal(t, "editor@example.com", ledger.TriggeredBy)
}

func TestPublish_FailingProjectBlocksEverything(t *testing.T) {
	svc, store, db := newPublishFixture(t, "")
	seedReadyProject(t, db, "good", "published")

	// A published project missing its long description.
	bad := models.Project{
		ID: "bad", Slug: "bad", Title: "Bad", Discipline: "graphic",
		Status: "published", DescriptionShort: "s",
	}
	require.NoError(t, db.Create(&bad).Error)

	result, err := svc.Publish(context.Background(), false, "editor@example.com")
	require.NoError(t, err)

	assert.False(t, result.OK)
	require.NotEmpty(t, result.Errors)
	assert.True(t, strings.HasPrefix(result.Errors[0], "Bad: "), "error %q should name the project", result.Errors[0])

	// The healthy project is held back too.
	assert.Equal(t, 0, store.Len())
	var count int64
	db.Model(&models.PublishSnapshot{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestPublish_DryRunIsSideEffectFree(t *testing.T) {
	svc, store, db := newPublishFixture(t, "")
	seedReadyProject(t, db, "alpha", "published")

	result, err := svc.Publish(context.Background(), true, "editor@example.com")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.True(t, result.DryRun)
	assert.Equal(t, 0, store.Len())

	var count int64
	db.Model(&models.PublishSnapshot{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestPublish_DeployHookTriggered(t *testing.T) {
	var hookCalls int
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			hookCalls++
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer hook.Close()

	svc, _, db := newPublishFixture(t, hook.URL)
	seedReadyProject(t, db, "alpha", "published")

	result, err := svc.Publish(context.Background(), false, "editor@example.com")
	require.NoError(t, err)

	assert.True(t, result.DeployTriggered)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, hookCalls)
}

func TestPublish_DeployHookFailureIsWarning(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer hook.Close()

	svc, store, db := newPublishFixture(t, hook.URL)
	seedReadyProject(t, db, "alpha", "published")

	result, err := svc.Publish(context.Background(), false, "editor@example.com")
	require.NoError(t, err)

	// The snapshot stands; only the deploy is reported as degraded.
	assert.True(t, result.OK)
	assert.False(t, result.DeployTriggered)
	assert.NotEmpty(t, result.Warnings)
	obj, err := store.Get(context.Background(), SnapshotKey)
	require.NoError(t, err)
	assert.NotNil(t, obj)
}

func TestBulkPublish_AllOrNothing(t *testing.T) {
	svc, store, db := newPublishFixture(t, "")

	ready := seedReadyProject(t, db, "ready", "draft")
	notReady := models.Project{
		ID: "nr", Slug: "nr", Title: "Not Ready", Discipline: "graphic", Status: "draft",
	}
	require.NoError(t, db.Create(&notReady).Error)

	result, err := svc.BulkPublish(context.Background(), []string{ready, "nr"}, "editor@example.com")
	require.NoError(t, err)

	assert.False(t, result.OK)
	assert.NotEmpty(t, result.Errors)

	// Neither project changed status, nothing was written.
	var p models.Project
	require.NoError(t, db.First(&p, "id = ?", ready).Error)
	assert.Equal(t, "draft", p.Status)
	assert.Equal(t, 0, store.Len())
}

func TestBulkPublish_FlipsAndPublishes(t *testing.T) {
	svc, store, db := newPublishFixture(t, "")

	a := seedReadyProject(t, db, "one", "draft")
	b := seedReadyProject(t, db, "two", "draft")

	result, err := svc.BulkPublish(context.Background(), []string{a, b}, "editor@example.com")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, 2, result.ProjectCount)

	for _, id := range []string{a, b} {
		var p models.Project
		require.NoError(t, db.First(&p, "id = ?", id).Error)
		assert.Equal(t, "published", p.Status)
		assert.NotNil(t, p.PublishedAt)
	}

	obj, err := store.Get(context.Background(), SnapshotKey)
	require.NoError(t, err)
	require.NotNil(t, obj)
}

func TestDeployStatus_PendingDetection(t *testing.T) {
	svc, _, db := newPublishFixture(t, "")
	seedReadyProject(t, db, "alpha", "published")

	// No deployed snapshot yet: pending.
	status, err := svc.DeployStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.HasDeployedSnapshot)
	assert.True(t, status.HasPendingChanges)

	// After a publish the signatures match.
	_, err = svc.Publish(context.Background(), false, "editor@example.com")
	require.NoError(t, err)

	status, err = svc.DeployStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.HasDeployedSnapshot)
	assert.False(t, status.HasPendingChanges)

	// A content edit makes it pending again.
	require.NoError(t, db.Model(&models.Project{}).
		Where("slug = ?", "alpha").
		Update("title", "Renamed").Error)

	status, err = svc.DeployStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.HasPendingChanges)
}
