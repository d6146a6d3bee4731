package handler

import (
	"net/http"

	"fabra/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	store   storage.Client
	buckets []string
	log     *zap.Logger
}

func NewAdminHandler(store storage.Client, buckets []string, log *zap.Logger) *AdminHandler {
	return &AdminHandler{store: store, buckets: buckets, log: log}
}

type bucketResult struct {
	Bucket string `json:"bucket"`
	Status string `json:"status"` // created | exists | error
	Error  string `json:"error,omitempty"`
}

// ProvisionBuckets ensures the configured storage buckets exist. Idempotent:
// re-running reports "exists" for anything already there. One bucket failing
// does not stop the rest.
func (h *AdminHandler) ProvisionBuckets(c *gin.Context) {
	results := make([]bucketResult, 0, len(h.buckets))
	for _, name := range h.buckets {
		status, err := h.store.EnsureBucket(c.Request.Context(), name)
		r := bucketResult{Bucket: name, Status: status}
		if err != nil {
			r.Error = err.Error()
			h.log.Warn("bucket provisioning failed", zap.String("bucket", name), zap.Error(err))
		}
		results = append(results, r)
	}
	c.JSON(http.StatusOK, gin.H{"buckets": results})
}

// InitDatabase exists for parity with the deployment tooling that calls it.
// Migration runs at boot, so there is nothing left to do here.
func (h *AdminHandler) InitDatabase(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "database already initialized"})
}
