package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raymondartguy/portfolio-backend/internal/storage"
	"github.com/raymondartguy/portfolio-backend/pkg/response"
)

// FileHandler serves asset blobs straight from the object store for
// deployments without a public bucket URL in front.
type FileHandler struct {
	store storage.ObjectStore
}

func NewFileHandler(store storage.ObjectStore) *FileHandler {
	return &FileHandler{store: store}
}

// Serve streams a stored blob
// GET /api/files/*key
func (h *FileHandler) Serve(c *gin.Context) {
	key := c.Param("key")
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	if key == "" {
		response.BadRequest(c, "key is required")
		return
	}

	obj, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}
	if obj == nil {
		response.NotFound(c, "file not found")
		return
	}

	// Keys are immutable once written, so clients may cache hard.
	c.Header("Cache-Control", "public, max-age=86400")
	if obj.ETag != "" {
		c.Header("ETag", `"`+obj.ETag+`"`)
		if match := c.GetHeader("If-None-Match"); match == `"`+obj.ETag+`"` {
			c.Status(http.StatusNotModified)
			return
		}
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, obj.Body)
}

// ServeByQuery is the query-parameter flavor of Serve
// GET /api/assets?key=
func (h *FileHandler) ServeByQuery(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		response.BadRequest(c, "key is required")
		return
	}
	c.Params = append(c.Params, gin.Param{Key: "key", Value: key})
	h.Serve(c)
}
