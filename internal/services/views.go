package services

import (
	"net/url"
	"time"

	"github.com/raymondartguy/portfolio-backend/internal/models"
)

// AssetView is an asset as the admin UI and the published snapshot see
// it: the row plus a resolvable URL.
type AssetView struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"projectId"`
	Kind      string  `json:"kind"`
	R2Key     string  `json:"r2Key"`
	MimeType  string  `json:"mimeType"`
	Width     *int    `json:"width"`
	Height    *int    `json:"height"`
	AltText   string  `json:"altText"`
	Caption   string  `json:"caption"`
	Featured  bool    `json:"featured"`
	SortOrder float64 `json:"sortOrder"`
	URL       string  `json:"url"`
}

// ProjectView is a project with its ordered assets, decoded palette
// and tags, and (for admin responses) its readiness.
type ProjectView struct {
	ID               string      `json:"id"`
	Slug             string      `json:"slug"`
	Title            string      `json:"title"`
	Discipline       string      `json:"discipline"`
	CoverAssetID     *string     `json:"coverAssetId"`
	DescriptionShort string      `json:"descriptionShort"`
	DescriptionLong  string      `json:"descriptionLong"`
	ThemeInspiration string      `json:"themeInspiration"`
	StyleDirection   string      `json:"styleDirection"`
	StyleTemplate    string      `json:"styleTemplate"`
	TypographyNotes  string      `json:"typographyNotes"`
	MotifSummary     string      `json:"motifSummary"`
	ToolingNotes     string      `json:"toolingNotes"`
	MaterialNotes    string      `json:"materialNotes"`
	Palette          []string    `json:"palette"`
	Tags             []string    `json:"tags"`
	Status           string      `json:"status"`
	PublishedAt      *time.Time  `json:"publishedAt"`
	SortOrder        float64     `json:"sortOrder"`
	Year             *int        `json:"year"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
	Assets           []AssetView `json:"assets"`
	Readiness        *Readiness  `json:"readiness,omitempty"`
}

func newAssetView(a *models.Asset, publicBaseURL string) AssetView {
	safeKey := url.PathEscape(a.R2Key)
	assetURL := "/api/files/" + safeKey
	if publicBaseURL != "" {
		assetURL = publicBaseURL + "/" + safeKey
	}

	return AssetView{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		Kind:      a.Kind,
		R2Key:     a.R2Key,
		MimeType:  a.MimeType,
		Width:     a.Width,
		Height:    a.Height,
		AltText:   a.AltText,
		Caption:   a.Caption,
		Featured:  a.Featured,
		SortOrder: a.SortOrder,
		URL:       assetURL,
	}
}

func newProjectView(p *models.Project, publicBaseURL string) ProjectView {
	sorted := SortAssets(p.Assets)
	assets := make([]AssetView, 0, len(sorted))
	for i := range sorted {
		assets = append(assets, newAssetView(&sorted[i], publicBaseURL))
	}

	return ProjectView{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		Discipline:       p.Discipline,
		CoverAssetID:     p.CoverAssetID,
		DescriptionShort: p.DescriptionShort,
		DescriptionLong:  p.DescriptionLong,
		ThemeInspiration: p.ThemeInspiration,
		StyleDirection:   p.StyleDirection,
		StyleTemplate:    p.StyleTemplate,
		TypographyNotes:  p.TypographyNotes,
		MotifSummary:     p.MotifSummary,
		ToolingNotes:     p.ToolingNotes,
		MaterialNotes:    p.MaterialNotes,
		Palette:          p.Palette(),
		Tags:             p.Tags(),
		Status:           p.Status,
		PublishedAt:      p.PublishedAt,
		SortOrder:        p.SortOrder,
		Year:             p.Year,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Assets:           assets,
	}
}
