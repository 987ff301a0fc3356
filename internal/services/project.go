package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raymondartguy/portfolio-backend/internal/models"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db            *gorm.DB
	store         storage.ObjectStore
	publicBaseURL string
}

func NewProjectService(db *gorm.DB, store storage.ObjectStore, publicBaseURL string) *ProjectService {
	return &ProjectService{db: db, store: store, publicBaseURL: publicBaseURL}
}

// SaveProjectRequest carries merge-style upsert semantics: a nil field
// means "retain the previous value"; a present-but-empty string clears
// the field. Matches what the admin editor sends.
type SaveProjectRequest struct {
	ID               *string     `json:"id"`
	Slug             *string     `json:"slug"`
	Title            *string     `json:"title"`
	Discipline       *string     `json:"discipline"`
	Status           *string     `json:"status"`
	StyleTemplate    *string     `json:"styleTemplate"`
	CoverAssetID     *string     `json:"coverAssetId"`
	DescriptionShort *string     `json:"descriptionShort"`
	DescriptionLong  *string     `json:"descriptionLong"`
	ThemeInspiration *string     `json:"themeInspiration"`
	StyleDirection   *string     `json:"styleDirection"`
	TypographyNotes  *string     `json:"typographyNotes"`
	MotifSummary     *string     `json:"motifSummary"`
	ToolingNotes     *string     `json:"toolingNotes"`
	MaterialNotes    *string     `json:"materialNotes"`
	Palette          *StringList `json:"palette"`
	Tags             *StringList `json:"tags"`
	Year             *int        `json:"year"`
	SortOrder        *float64    `json:"sortOrder"`
	Autosave         bool        `json:"autosave"`
}

// ProjectSummary is one row of the admin project list.
type ProjectSummary struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Discipline string    `json:"discipline"`
	Status     string    `json:"status"`
	SortOrder  float64   `json:"sortOrder"`
	Readiness  Readiness `json:"readiness"`
}

type DeleteProjectResult struct {
	ProjectID         string `json:"projectId"`
	DeletedAssetCount int    `json:"deletedAssetCount"`
	Warning           string `json:"warning,omitempty"`
}

// List returns all projects in display order with their readiness.
func (s *ProjectService) List() ([]ProjectSummary, error) {
	var projects []models.Project
	if err := s.db.
		Preload("Assets", assetOrder).
		Order("sort_order ASC, updated_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		summaries = append(summaries, ProjectSummary{
			ID:         p.ID,
			Slug:       p.Slug,
			Title:      p.Title,
			Discipline: p.Discipline,
			Status:     p.Status,
			SortOrder:  p.SortOrder,
			Readiness:  ComputeReadiness(p),
		})
	}
	return summaries, nil
}

// Get returns a full project with ordered assets and readiness.
func (s *ProjectService) Get(id string) (*ProjectView, error) {
	p, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, response.NewNotFound("Project not found.")
	}

	view := newProjectView(p, s.publicBaseURL)
	readiness := ComputeReadiness(p)
	view.Readiness = &readiness
	return &view, nil
}

// Save upserts a project with last-writer-merges-with-prior semantics.
func (s *ProjectService) Save(req *SaveProjectRequest) (*ProjectView, error) {
	var existing *models.Project
	if req.ID != nil && *req.ID != "" {
		p, err := s.load(*req.ID)
		if err != nil {
			return nil, err
		}
		existing = p
	}

	p, err := s.merge(req, existing)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		err = s.db.Save(p).Error
	} else {
		err = s.db.Create(p).Error
	}
	if err != nil {
		if isDuplicateSlug(err) {
			return nil, response.NewConflict("A project with that slug already exists.")
		}
		return nil, err
	}

	return s.Get(p.ID)
}

// Delete removes a draft project, its asset rows, and (best-effort)
// its blobs. Published projects are refused.
func (s *ProjectService) Delete(ctx context.Context, id string) (*DeleteProjectResult, error) {
	p, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, response.NewNotFound("Project not found.")
	}
	if p.Status != "draft" {
		return nil, response.NewConflict("Only draft projects can be deleted.")
	}

	keys := make([]string, 0, len(p.Assets))
	for i := range p.Assets {
		if p.Assets[i].R2Key != "" {
			keys = append(keys, p.Assets[i].R2Key)
		}
	}

	result := &DeleteProjectResult{ProjectID: id, DeletedAssetCount: len(keys)}

	// Blob deletion failures never block metadata deletion; an
	// unreachable store must not pin a draft forever.
	if len(keys) > 0 {
		if err := s.store.Delete(ctx, keys...); err != nil {
			result.Warning = "Failed to delete one or more stored objects: " + err.Error()
		}
	}

	if err := s.db.Where("project_id = ?", id).Delete(&models.Asset{}).Error; err != nil {
		return nil, err
	}
	if err := s.db.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (s *ProjectService) load(id string) (*models.Project, error) {
	var p models.Project
	err := s.db.Preload("Assets", assetOrder).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func assetOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, created_at ASC")
}

// merge folds the request into the prior row. Field absence retains
// the previous value; enum fields fall back prior-then-default.
func (s *ProjectService) merge(req *SaveProjectRequest, existing *models.Project) (*models.Project, error) {
	p := models.Project{}
	if existing != nil {
		p = *existing
		p.Assets = nil
	}

	if p.ID == "" {
		if req.ID != nil && *req.ID != "" {
			p.ID = *req.ID
		} else {
			p.ID = uuid.NewString()
		}
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}

	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		p.Slug = strings.TrimSpace(*req.Slug)
	}
	if p.Slug == "" {
		p.Slug = fallbackSlug(p.Title)
	}

	p.Discipline = pickEnum(req.Discipline, p.Discipline, "graphic")
	if !AllowedDisciplines[p.Discipline] {
		return nil, response.NewBadRequest("discipline must be graphic or 3d.")
	}

	prevStatus := "draft"
	if existing != nil {
		prevStatus = existing.Status
	}
	p.Status = pickEnum(req.Status, p.Status, "draft")
	if !AllowedStatuses[p.Status] {
		return nil, response.NewBadRequest("status must be draft or published.")
	}

	p.StyleTemplate = pickEnum(req.StyleTemplate, p.StyleTemplate, "editorial")
	if !AllowedStyleTemplates[p.StyleTemplate] {
		return nil, response.NewBadRequest("styleTemplate must be editorial, brutalist, or minimal-grid.")
	}

	if req.CoverAssetID != nil {
		if *req.CoverAssetID == "" {
			p.CoverAssetID = nil
		} else {
			cover := *req.CoverAssetID
			p.CoverAssetID = &cover
		}
	}

	applyString(req.DescriptionShort, &p.DescriptionShort)
	applyString(req.DescriptionLong, &p.DescriptionLong)
	applyString(req.ThemeInspiration, &p.ThemeInspiration)
	applyString(req.StyleDirection, &p.StyleDirection)
	applyString(req.TypographyNotes, &p.TypographyNotes)
	applyString(req.MotifSummary, &p.MotifSummary)
	applyString(req.ToolingNotes, &p.ToolingNotes)
	applyString(req.MaterialNotes, &p.MaterialNotes)

	if req.Palette != nil {
		p.SetPalette(*req.Palette)
	} else if p.PaletteJSON == "" {
		p.SetPalette(nil)
	}
	if req.Tags != nil {
		p.SetTags(*req.Tags)
	} else if p.TagsJSON == "" {
		p.SetTags(nil)
	}

	if req.Year != nil {
		year := *req.Year
		p.Year = &year
	}
	if req.SortOrder != nil {
		p.SortOrder = *req.SortOrder
	}

	now := time.Now()
	// publishedAt marks the draft-to-published transition only; edits
	// to an already-published project leave it untouched.
	if p.Status == "published" && prevStatus != "published" {
		p.PublishedAt = &now
	}
	if p.Status == "draft" {
		p.PublishedAt = nil
	}

	if existing == nil {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	return &p, nil
}

func pickEnum(requested *string, current, fallback string) string {
	if requested != nil && *requested != "" {
		return *requested
	}
	if current != "" {
		return current
	}
	return fallback
}

func applyString(requested *string, target *string) {
	if requested != nil {
		*target = *requested
	}
}

// fallbackSlug derives a unique-ish slug from the title, suffixed with
// a timestamp so two untitled drafts do not collide.
func fallbackSlug(title string) string {
	base := Slugify(title)
	if base == "" {
		base = "untitled-project"
	}
	return base + "-" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

func isDuplicateSlug(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
