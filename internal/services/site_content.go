package services

import (
	"time"

	"github.com/raymondartguy/portfolio-backend/internal/models"
	"gorm.io/gorm"
)

type SiteContentService struct {
	db *gorm.DB
}

func NewSiteContentService(db *gorm.DB) *SiteContentService {
	return &SiteContentService{db: db}
}

// SiteContent is the public copy block embedded in snapshots and
// returned by the site-content endpoints.
type SiteContent struct {
	HeroTitle    string `json:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle"`
	FooterText   string `json:"footerText"`
}

type PatchSiteContentRequest struct {
	HeroTitle    *string `json:"heroTitle"`
	HeroSubtitle *string `json:"heroSubtitle"`
	FooterText   *string `json:"footerText"`
}

// Get returns the singleton row, materializing it with default copy on
// first read.
func (s *SiteContentService) Get() (*SiteContent, error) {
	row, err := s.ensureRow()
	if err != nil {
		return nil, err
	}
	return &SiteContent{
		HeroTitle:    row.HomeHeroTitle,
		HeroSubtitle: row.HomeHeroSubtitle,
		FooterText:   row.HomeFooterText,
	}, nil
}

// Patch updates only the fields present in the request; absent fields
// retain their previous values.
func (s *SiteContentService) Patch(req *PatchSiteContentRequest) (*SiteContent, error) {
	row, err := s.ensureRow()
	if err != nil {
		return nil, err
	}

	if req.HeroTitle != nil {
		row.HomeHeroTitle = *req.HeroTitle
	}
	if req.HeroSubtitle != nil {
		row.HomeHeroSubtitle = *req.HeroSubtitle
	}
	if req.FooterText != nil {
		row.HomeFooterText = *req.FooterText
	}
	row.UpdatedAt = time.Now()

	if err := s.db.Save(row).Error; err != nil {
		return nil, err
	}

	return &SiteContent{
		HeroTitle:    row.HomeHeroTitle,
		HeroSubtitle: row.HomeHeroSubtitle,
		FooterText:   row.HomeFooterText,
	}, nil
}

func (s *SiteContentService) ensureRow() (*models.SiteSettings, error) {
	row := models.SiteSettings{
		ID:               1,
		HomeHeroTitle:    models.DefaultHeroTitle,
		HomeHeroSubtitle: models.DefaultHeroSubtitle,
		HomeFooterText:   models.DefaultFooterText,
		UpdatedAt:        time.Now(),
	}
	if err := s.db.Where(models.SiteSettings{ID: 1}).FirstOrCreate(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
