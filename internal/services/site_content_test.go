package services

import (
	"testing"

	"github.com/raymondartguy/portfolio-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteContent_DefaultsOnFirstRead(t *testing.T) {
	svc := NewSiteContentService(newTestDB(t))

	content, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, models.DefaultHeroTitle, content.HeroTitle)
	assert.Equal(t, models.DefaultHeroSubtitle, content.HeroSubtitle)
	assert.Equal(t, models.DefaultFooterText, content.FooterText)
}

func TestSiteContent_PatchMergesFields(t *testing.T) {
	svc := NewSiteContentService(newTestDB(t))

	updated, err := svc.Patch(&PatchSiteContentRequest{
		HeroTitle: strPtr("New Title"),
	})
	require.NoError(t, err)

	assert.Equal(t, "New Title", updated.HeroTitle)
	assert.Equal(t, models.DefaultHeroSubtitle, updated.HeroSubtitle)

	// Persists across reads.
	again, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "New Title", again.HeroTitle)
}
