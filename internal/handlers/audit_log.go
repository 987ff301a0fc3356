package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/raymondartguy/portfolio-backend/internal/services"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
)

type AuditLogHandler struct {
	auditService *services.AuditLogService
}

func NewAuditLogHandler(auditService *services.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

// List returns paginated audit logs
// GET /api/admin/audit-logs
func (h *AuditLogHandler) List(c *gin.Context) {
	var req services.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auditService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// GetModules returns the distinct modules seen in audit logs
// GET /api/admin/audit-logs/modules
func (h *AuditLogHandler) GetModules(c *gin.Context) {
	modules, err := h.auditService.GetModules()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, modules)
}
