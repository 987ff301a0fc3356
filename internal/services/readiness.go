package services

import (
	"sort"
	"strings"

	"github.com/raymondartguy/portfolio-backend/internal/models"
)

// Readiness is a project's computed eligibility to appear in a
// published snapshot. Hard misses block publish; soft misses are
// advisory quality warnings only.
type Readiness struct {
	CanPublish  bool     `json:"canPublish"`
	HardMissing []string `json:"hardMissing"`
	SoftMissing []string `json:"softMissing"`
	Discipline  string   `json:"discipline"`
}

// ReadinessRow is the flattened per-project entry of a catalog
// readiness report.
type ReadinessRow struct {
	ProjectID string `json:"projectId"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Readiness
}

// SortAssets orders assets by sort order, then created time, then id.
// The id tiebreak keeps cover resolution stable for assets created in
// the same instant.
func SortAssets(assets []models.Asset) []models.Asset {
	sorted := make([]models.Asset, len(assets))
	copy(sorted, assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortOrder != sorted[j].SortOrder {
			return sorted[i].SortOrder < sorted[j].SortOrder
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// ResolveCover picks the asset representing a project: the one the
// coverAssetId points at if it still exists, else the first featured
// asset, else the first asset in sort order, else nil. featured and
// coverAssetId are hints to this resolver, never authoritative on
// their own.
func ResolveCover(coverAssetID *string, assets []models.Asset) *models.Asset {
	sorted := SortAssets(assets)

	if coverAssetID != nil {
		for i := range sorted {
			if sorted[i].ID == *coverAssetID {
				return &sorted[i]
			}
		}
	}
	for i := range sorted {
		if sorted[i].Featured {
			return &sorted[i]
		}
	}
	if len(sorted) > 0 {
		return &sorted[0]
	}
	return nil
}

// ComputeReadiness evaluates a project's publish eligibility. It is a
// pure function of the project row and its assets; it never touches
// the database. Checks for the other discipline are skipped entirely.
func ComputeReadiness(p *models.Project) Readiness {
	hard := []string{}
	soft := []string{}

	if strings.TrimSpace(p.DescriptionShort) == "" {
		hard = append(hard, "Add a short description for list and hero views.")
	}
	if strings.TrimSpace(p.DescriptionLong) == "" {
		hard = append(hard, "Add a long description for the case study body.")
	}

	cover := ResolveCover(p.CoverAssetID, p.Assets)
	if cover == nil {
		hard = append(hard, "Add at least one asset so a cover is available.")
	}

	switch p.Discipline {
	case "graphic":
		if countAssetsOfKind(p.Assets, "image") == 0 {
			hard = append(hard, "Add at least one image asset.")
		}
		if strings.TrimSpace(p.ThemeInspiration) == "" {
			hard = append(hard, "Describe the theme inspiration.")
		}
		if strings.TrimSpace(p.StyleDirection) == "" {
			hard = append(hard, "Describe the style direction.")
		}
	case "3d":
		if countAssetsOfKind(p.Assets, "model3d") == 0 {
			hard = append(hard, "Add a 3D model (GLB/GLTF) asset.")
		}
		if countAssetsOfKind(p.Assets, "poster") == 0 && countAssetsOfKind(p.Assets, "image") == 0 {
			hard = append(hard, "Add a poster image so the model has a fallback cover.")
		}
	}

	if p.Year == nil {
		soft = append(soft, "Set the project year.")
	}
	if len(p.Tags()) == 0 {
		soft = append(soft, "Add a few tags.")
	}
	if len(p.Palette()) == 0 {
		soft = append(soft, "Add palette colors.")
	}
	if strings.TrimSpace(p.TypographyNotes) == "" {
		soft = append(soft, "Add typography notes.")
	}
	if strings.TrimSpace(p.MotifSummary) == "" {
		soft = append(soft, "Add a motif summary.")
	}
	if strings.TrimSpace(p.ToolingNotes) == "" {
		soft = append(soft, "Add tooling notes.")
	}
	if strings.TrimSpace(p.MaterialNotes) == "" {
		soft = append(soft, "Add material notes.")
	}

	return Readiness{
		CanPublish:  len(hard) == 0,
		HardMissing: hard,
		SoftMissing: soft,
		Discipline:  p.Discipline,
	}
}

func countAssetsOfKind(assets []models.Asset, kind string) int {
	n := 0
	for i := range assets {
		if assets[i].Kind == kind {
			n++
		}
	}
	return n
}
