package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/raymondartguy/portfolio-backend/internal/services"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
)

type AssetHandler struct {
	assetService   *services.AssetService
	projectService *services.ProjectService
}

func NewAssetHandler(assetService *services.AssetService, projectService *services.ProjectService) *AssetHandler {
	return &AssetHandler{assetService: assetService, projectService: projectService}
}

// Attach records an uploaded blob as an asset of a project
// POST /api/admin/projects/:id/assets
func (h *AssetHandler) Attach(c *gin.Context) {
	var req services.AttachAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	projectID := c.Param("id")
	if _, err := h.assetService.Attach(projectID, &req); err != nil {
		response.Error(c, err)
		return
	}

	// Return the full project so the client sees the new asset and any
	// cover pointer change in one round trip.
	project, err := h.projectService.Get(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// Reorder applies new sort orders to a project's assets
// POST /api/admin/projects/:id/assets/reorder
func (h *AssetHandler) Reorder(c *gin.Context) {
	var req struct {
		Items []services.ReorderItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	projectID := c.Param("id")
	if err := h.assetService.Reorder(projectID, req.Items); err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.projectService.Get(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// Patch updates asset metadata
// PATCH /api/admin/assets/:assetId
func (h *AssetHandler) Patch(c *gin.Context) {
	var req services.PatchAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.assetService.Patch(c.Param("assetId"), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"assetId": c.Param("assetId")})
}

// Delete removes an asset and repairs the cover pointer
// DELETE /api/admin/assets/:assetId
func (h *AssetHandler) Delete(c *gin.Context) {
	result, err := h.assetService.Delete(c.Request.Context(), c.Param("assetId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
