package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/raymondartguy/portfolio-backend/internal/middleware"
	"github.com/raymondartguy/portfolio-backend/internal/services"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
)

type PublishHandler struct {
	publishService *services.PublishService
}

func NewPublishHandler(publishService *services.PublishService) *PublishHandler {
	return &PublishHandler{publishService: publishService}
}

// Publish validates the published set and writes the catalog snapshot.
// With dryRun, only the validation report is returned and nothing is
// written.
// POST /api/admin/publish
func (h *PublishHandler) Publish(c *gin.Context) {
	var req struct {
		DryRun bool `json:"dryRun"`
	}
	// An empty body means a real publish.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.publishService.Publish(c.Request.Context(), req.DryRun, middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.OK && !req.DryRun {
		response.ErrorWithData(c, response.NewUnprocessable("Catalog has validation errors."), result)
		return
	}
	response.Success(c, result)
}

// BulkPublish flips several drafts to published and runs one publish
// POST /api/admin/publish/bulk
func (h *PublishHandler) BulkPublish(c *gin.Context) {
	var req struct {
		ProjectIDs []string `json:"projectIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.publishService.BulkPublish(c.Request.Context(), req.ProjectIDs, middleware.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.OK {
		response.ErrorWithData(c, response.NewUnprocessable("Bulk publish preconditions failed."), result)
		return
	}
	response.Success(c, result)
}

// DeployStatus compares the working catalog against the deployed one
// GET /api/admin/deploy-status
func (h *PublishHandler) DeployStatus(c *gin.Context) {
	result, err := h.publishService.DeployStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
