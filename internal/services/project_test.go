package services

import (
	"context"
	"strings"
	"testing"

	"github.com/raymondartguy/portfolio-backend/internal/models"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectService(t *testing.T) (*ProjectService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewProjectService(newTestDB(t), store, ""), store
}

func TestProjectSave_CreateWithDefaults(t *testing.T) {
	svc, _ := newProjectService(t)

	view, err := svc.Save(&SaveProjectRequest{Title: strPtr("Poster Series")})
	require.NoError(t, err)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Poster Series", view.Title)
	assert.Equal(t, "draft", view.Status)
	assert.Equal(t, "graphic", view.Discipline)
	assert.Equal(t, "editorial", view.StyleTemplate)
	assert.True(t, strings.HasPrefix(view.Slug, "poster-series-"), "slug %q should carry the fallback suffix", view.Slug)
	assert.Nil(t, view.PublishedAt)
	require.NotNil(t, view.Readiness)
	assert.False(t, view.Readiness.CanPublish)
}

func TestProjectSave_MergeRetainsAbsentFields(t *testing.T) {
	svc, _ := newProjectService(t)

	created, err := svc.Save(&SaveProjectRequest{
		Title:            strPtr("Poster Series"),
		Slug:             strPtr("poster-series"),
		DescriptionShort: strPtr("short"),
		ThemeInspiration: strPtr("brutalist posters"),
		Year:             intPtr(2024),
		Tags:             listPtr("poster", "print"),
	})
	require.NoError(t, err)

	// A sparse autosave touching one field must not clear the rest.
	updated, err := svc.Save(&SaveProjectRequest{
		ID:              &created.ID,
		DescriptionLong: strPtr("long body"),
		Autosave:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Poster Series", updated.Title)
	assert.Equal(t, "poster-series", updated.Slug)
	assert.Equal(t, "short", updated.DescriptionShort)
	assert.Equal(t, "long body", updated.DescriptionLong)
	assert.Equal(t, "brutalist posters", updated.ThemeInspiration)
	require.NotNil(t, updated.Year)
	assert.Equal(t, 2024, *updated.Year)
	assert.Equal(t, []string{"poster", "print"}, updated.Tags)
}

func TestProjectSave_PresentEmptyStringClears(t *testing.T) {
	svc, _ := newProjectService(t)

	created, err := svc.Save(&SaveProjectRequest{
		Title:            strPtr("Poster Series"),
		DescriptionShort: strPtr("short"),
	})
	require.NoError(t, err)

	updated, err := svc.Save(&SaveProjectRequest{
		ID:               &created.ID,
		DescriptionShort: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "", updated.DescriptionShort)
}

func TestProjectSave_DuplicateSlugConflict(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.Save(&SaveProjectRequest{Title: strPtr("One"), Slug: strPtr("taken")})
	require.NoError(t, err)

	_, err = svc.Save(&SaveProjectRequest{Title: strPtr("Two"), Slug: strPtr("taken")})
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestProjectSave_InvalidEnumRejected(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.Save(&SaveProjectRequest{Title: strPtr("X"), Discipline: strPtr("sculpture")})
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestProjectSave_PublishedAtTransitions(t *testing.T) {
	svc, _ := newProjectService(t)

	created, err := svc.Save(&SaveProjectRequest{Title: strPtr("X"), Slug: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, created.PublishedAt)

	published, err := svc.Save(&SaveProjectRequest{ID: &created.ID, Status: strPtr("published")})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstPublish := *published.PublishedAt

	// Editing a published project leaves the timestamp alone.
	edited, err := svc.Save(&SaveProjectRequest{ID: &created.ID, Title: strPtr("X2")})
	require.NoError(t, err)
	require.NotNil(t, edited.PublishedAt)
	assert.Equal(t, firstPublish.Unix(), edited.PublishedAt.Unix())

	// Unpublishing clears it.
	draft, err := svc.Save(&SaveProjectRequest{ID: &created.ID, Status: strPtr("draft")})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)
}

func TestProjectGet_NotFound(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.Get("missing")
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
}

func TestProjectList_OrderAndReadiness(t *testing.T) {
	svc, _ := newProjectService(t)

	a, err := svc.Save(&SaveProjectRequest{Title: strPtr("A"), Slug: strPtr("a"), SortOrder: floatPtr(2)})
	require.NoError(t, err)
	b, err := svc.Save(&SaveProjectRequest{Title: strPtr("B"), Slug: strPtr("b"), SortOrder: floatPtr(1)})
	require.NoError(t, err)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
	assert.NotNil(t, list[0].Readiness.HardMissing)
}

func TestProjectDelete_DraftOnly(t *testing.T) {
	svc, _ := newProjectService(t)
	db := svc.db

	id := seedReadyProject(t, db, "published-p", "published")

	_, err := svc.Delete(context.Background(), id)
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)

	// Row is untouched.
	var count int64
	db.Model(&models.Project{}).Where("id = ?", id).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestProjectDelete_RemovesAssetsAndBlobs(t *testing.T) {
	svc, store := newProjectService(t)
	db := svc.db

	id := seedReadyProject(t, db, "draft-p", "draft")
	require.NoError(t, store.Put(context.Background(), id+"/cover.png", []byte("png"), "image/png"))

	result, err := svc.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, 1, result.DeletedAssetCount)

	var assetCount int64
	db.Model(&models.Asset{}).Where("project_id = ?", id).Count(&assetCount)
	assert.EqualValues(t, 0, assetCount)

	obj, err := store.Get(context.Background(), id+"/cover.png")
	require.NoError(t, err)
	assert.Nil(t, obj)
}
