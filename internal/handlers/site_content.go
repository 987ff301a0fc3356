package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/raymondartguy/portfolio-backend/internal/services"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
)

type SiteContentHandler struct {
	siteService *services.SiteContentService
}

func NewSiteContentHandler(siteService *services.SiteContentService) *SiteContentHandler {
	return &SiteContentHandler{siteService: siteService}
}

// Get returns the site-wide hero and footer copy
// GET /api/admin/site-content
func (h *SiteContentHandler) Get(c *gin.Context) {
	content, err := h.siteService.Get()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, content)
}

// Patch updates site-wide copy; absent fields are left unchanged
// POST /api/admin/site-content
func (h *SiteContentHandler) Patch(c *gin.Context) {
	var req services.PatchSiteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	content, err := h.siteService.Patch(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, content)
}
