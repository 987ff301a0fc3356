package services

import (
	"strings"
	"time"

	"github.com/raymondartguy/portfolio-backend/internal/models"
	"gorm.io/gorm"
)

// CatalogService assembles the published catalog: every published
// project with its assets, a per-project readiness report, and the
// snapshot document the public site consumes.
type CatalogService struct {
	db            *gorm.DB
	site          *SiteContentService
	publicBaseURL string
}

func NewCatalogService(db *gorm.DB, site *SiteContentService, publicBaseURL string) *CatalogService {
	return &CatalogService{db: db, site: site, publicBaseURL: publicBaseURL}
}

// Snapshot is the immutable document written on publish. The shape is
// consumed by the public site build and the deploy hook; changes here
// are compatibility-relevant.
type Snapshot struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Site        SiteContent   `json:"site"`
	Projects    []ProjectView `json:"projects"`
}

type CatalogResult struct {
	Errors    []string       `json:"errors"`
	Readiness []ReadinessRow `json:"readinessByProject"`
	Snapshot  Snapshot       `json:"snapshot"`
}

// BuildPublishedCatalog is read-only and side-effect-free. The
// snapshot is assembled even when readiness errors exist, so dry runs
// can preview exactly what a publish would ship.
func (s *CatalogService) BuildPublishedCatalog() (*CatalogResult, error) {
	var projects []models.Project
	if err := s.db.
		Preload("Assets", assetOrder).
		Where("status = ?", "published").
		Order("sort_order ASC, updated_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	site, err := s.site.Get()
	if err != nil {
		return nil, err
	}

	result := &CatalogResult{
		Errors:    []string{},
		Readiness: make([]ReadinessRow, 0, len(projects)),
		Snapshot: Snapshot{
			GeneratedAt: time.Now().UTC(),
			Site:        *site,
			Projects:    make([]ProjectView, 0, len(projects)),
		},
	}

	for i := range projects {
		p := &projects[i]
		readiness := ComputeReadiness(p)

		result.Readiness = append(result.Readiness, ReadinessRow{
			ProjectID: p.ID,
			Title:     p.Title,
			Status:    p.Status,
			Readiness: readiness,
		})

		if !readiness.CanPublish {
			result.Errors = append(result.Errors, p.Title+": "+strings.Join(readiness.HardMissing, " "))
		}

		view := newProjectView(p, s.publicBaseURL)
		if cover := ResolveCover(p.CoverAssetID, p.Assets); cover != nil {
			id := cover.ID
			view.CoverAssetID = &id
		} else {
			view.CoverAssetID = nil
		}
		result.Snapshot.Projects = append(result.Snapshot.Projects, view)
	}

	return result, nil
}
