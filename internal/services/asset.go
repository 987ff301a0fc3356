package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/raymondartguy/portfolio-backend/internal/models"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
	"gorm.io/gorm"
)

type AssetService struct {
	db    *gorm.DB
	store storage.ObjectStore
}

func NewAssetService(db *gorm.DB, store storage.ObjectStore) *AssetService {
	return &AssetService{db: db, store: store}
}

type AttachAssetRequest struct {
	Kind      string   `json:"kind"`
	R2Key     string   `json:"r2Key"`
	MimeType  string   `json:"mimeType"`
	Width     *int     `json:"width"`
	Height    *int     `json:"height"`
	AltText   string   `json:"altText"`
	Caption   string   `json:"caption"`
	Featured  bool     `json:"featured"`
	SortOrder *float64 `json:"sortOrder"`
}

type PatchAssetRequest struct {
	Kind      *string  `json:"kind"`
	MimeType  *string  `json:"mimeType"`
	AltText   *string  `json:"altText"`
	Caption   *string  `json:"caption"`
	Featured  *bool    `json:"featured"`
	SortOrder *float64 `json:"sortOrder"`
	Width     *int     `json:"width"`
	Height    *int     `json:"height"`
}

type ReorderItem struct {
	AssetID   string  `json:"assetId"`
	SortOrder float64 `json:"sortOrder"`
}

type DeleteAssetResult struct {
	AssetID string `json:"assetId"`
	Warning string `json:"warning,omitempty"`
}

// Attach creates an asset under an existing project and maintains the
// cover pointer: a featured upload, or the first asset a project ever
// gets, becomes the cover. The asset row is written before the
// project pointer; the pointer is a cache of the asset rows.
func (s *AssetService) Attach(projectID string, req *AttachAssetRequest) (string, error) {
	if req.R2Key == "" || req.MimeType == "" || req.Kind == "" {
		return "", response.NewBadRequest("r2Key, mimeType, and kind are required.")
	}
	if !AllowedAssetKinds[req.Kind] {
		return "", response.NewBadRequest("Invalid asset kind.")
	}
	if !AllowedMimeTypes[req.MimeType] {
		return "", response.NewBadRequest("Unsupported MIME type.")
	}

	var project models.Project
	err := s.db.First(&project, "id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", response.NewNotFound("Project not found.")
	}
	if err != nil {
		return "", err
	}

	sortOrder := 0.0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	asset := models.Asset{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Kind:      req.Kind,
		R2Key:     req.R2Key,
		MimeType:  req.MimeType,
		Width:     req.Width,
		Height:    req.Height,
		AltText:   req.AltText,
		Caption:   req.Caption,
		Featured:  req.Featured,
		SortOrder: sortOrder,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&asset).Error; err != nil {
		return "", err
	}

	if req.Featured || project.CoverAssetID == nil {
		if err := s.setCover(projectID, &asset.ID); err != nil {
			return "", err
		}
	}

	return asset.ID, nil
}

// Patch partially updates an asset; r2Key is immutable. Setting
// featured re-runs cover assignment.
func (s *AssetService) Patch(assetID string, req *PatchAssetRequest) error {
	var asset models.Asset
	err := s.db.First(&asset, "id = ?", assetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFound("Asset not found.")
	}
	if err != nil {
		return err
	}

	if req.Kind != nil {
		if !AllowedAssetKinds[*req.Kind] {
			return response.NewBadRequest("Invalid asset kind.")
		}
		asset.Kind = *req.Kind
	}
	if req.MimeType != nil {
		if !AllowedMimeTypes[*req.MimeType] {
			return response.NewBadRequest("Unsupported MIME type.")
		}
		asset.MimeType = *req.MimeType
	}
	if req.AltText != nil {
		asset.AltText = *req.AltText
	}
	if req.Caption != nil {
		asset.Caption = *req.Caption
	}
	if req.Featured != nil {
		asset.Featured = *req.Featured
	}
	if req.SortOrder != nil {
		asset.SortOrder = *req.SortOrder
	}
	if req.Width != nil {
		asset.Width = req.Width
	}
	if req.Height != nil {
		asset.Height = req.Height
	}

	if err := s.db.Save(&asset).Error; err != nil {
		return err
	}

	// Cover reassignment only runs when this patch set featured, not
	// when an already-featured asset is edited for unrelated fields.
	if req.Featured != nil && *req.Featured {
		return s.setCover(asset.ProjectID, &asset.ID)
	}
	return nil
}

// Delete removes an asset; the blob delete is best-effort. When the
// deleted asset was the cover (or the pointer dangles), the cover
// falls back over the remaining assets: first featured, else first in
// sort order, else none.
func (s *AssetService) Delete(ctx context.Context, assetID string) (*DeleteAssetResult, error) {
	var asset models.Asset
	err := s.db.First(&asset, "id = ?", assetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound("Asset not found.")
	}
	if err != nil {
		return nil, err
	}

	result := &DeleteAssetResult{AssetID: assetID}
	if asset.R2Key != "" {
		if err := s.store.Delete(ctx, asset.R2Key); err != nil {
			result.Warning = "Failed to delete stored object: " + err.Error()
		}
	}

	if err := s.db.Delete(&models.Asset{}, "id = ?", assetID).Error; err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, "id = ?", asset.ProjectID).Error; err != nil {
		return nil, err
	}

	var remaining []models.Asset
	if err := assetOrder(s.db.Where("project_id = ?", asset.ProjectID)).Find(&remaining).Error; err != nil {
		return nil, err
	}

	wasCover := project.CoverAssetID != nil && *project.CoverAssetID == assetID
	dangling := project.CoverAssetID != nil && !coverStillSet(project.CoverAssetID, remaining)
	if wasCover || dangling {
		fallback := ResolveCover(nil, remaining)
		if fallback != nil {
			if err := s.setCover(asset.ProjectID, &fallback.ID); err != nil {
				return nil, err
			}
		} else {
			if err := s.setCover(asset.ProjectID, nil); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// Reorder rewrites sort orders for a project's assets. Values are
// float-capable so the client can insert between siblings.
func (s *AssetService) Reorder(projectID string, items []ReorderItem) error {
	if len(items) == 0 {
		return response.NewBadRequest("No reorder items supplied.")
	}

	var count int64
	if err := s.db.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return response.NewNotFound("Project not found.")
	}

	for _, item := range items {
		res := s.db.Model(&models.Asset{}).
			Where("id = ? AND project_id = ?", item.AssetID, projectID).
			Update("sort_order", item.SortOrder)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.NewNotFound("Asset " + item.AssetID + " not found in project.")
		}
	}
	return nil
}

func (s *AssetService) setCover(projectID string, assetID *string) error {
	return s.db.Model(&models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]interface{}{
			"cover_asset_id": assetID,
			"updated_at":     time.Now(),
		}).Error
}

func coverStillSet(coverAssetID *string, assets []models.Asset) bool {
	if coverAssetID == nil {
		return false
	}
	for i := range assets {
		if assets[i].ID == *coverAssetID {
			return true
		}
	}
	return false
}
