package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/raymondartguy/portfolio-backend/internal/services"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
)

// maxUploadBytes caps a single upload body (64 MiB covers the largest
// GLB files editors work with).
const maxUploadBytes = 64 << 20

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// CreateUploadURL mints a signed, short-lived upload ticket
// POST /api/admin/upload-url
func (h *UploadHandler) CreateUploadURL(c *gin.Context) {
	var req services.CreateUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.uploadService.CreateUploadURL(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, ticket)
}

// Upload accepts a blob write backed by a valid ticket. The ticket
// parameters arrive as query params; the blob is the raw body.
// PUT /api/admin/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes+1))
	if err != nil {
		response.BadRequest(c, "failed to read upload body")
		return
	}
	if len(body) > maxUploadBytes {
		response.BadRequest(c, "upload body too large")
		return
	}

	stored, err := h.uploadService.VerifyAndStore(
		c.Request.Context(),
		c.Query("key"),
		c.Query("mimeType"),
		c.Query("expires"),
		c.Query("signature"),
		c.ContentType(),
		body,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stored)
}
