package handler

import (
	"net/http"
	"strings"

	"fabra/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	store storage.Client
}

func NewUploadHandler(store storage.Client) *UploadHandler {
	return &UploadHandler{store: store}
}

// UploadPartPhoto accepts a broken-part photo and returns its hosted URL.
func (h *UploadHandler) UploadPartPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	publicID := "part_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	url, err := h.store.UploadImage(c.Request.Context(), f, "broken-part-photos", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
