package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fabra/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore provisions buckets from a canned script.
type fakeStore struct {
	statuses map[string]string
	errs     map[string]error
	calls    []string
}

func (f *fakeStore) UploadImage(context.Context, io.Reader, string, string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeStore) EnsureBucket(_ context.Context, name string) (string, error) {
	f.calls = append(f.calls, name)
	return f.statuses[name], f.errs[name]
}

func provisionBuckets(t *testing.T, store storage.Client, buckets []string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/storage/buckets", NewAdminHandler(store, buckets, zap.NewNop()).ProvisionBuckets)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/storage/buckets", nil))
	return w
}

type bucketResponse struct {
	Buckets []struct {
		Bucket string `json:"bucket"`
		Status string `json:"status"`
		Error  string `json:"error"`
	} `json:"buckets"`
}

func TestProvisionBucketsReportsPerBucketStatus(t *testing.T) {
	store := &fakeStore{
		statuses: map[string]string{
			"broken-part-photos": storage.StatusCreated,
			"task-attachments":   storage.StatusExists,
			"employee-avatars":   storage.StatusError,
		},
		errs: map[string]error{
			"employee-avatars": errors.New("rate limited"),
		},
	}
	buckets := []string{"broken-part-photos", "task-attachments", "employee-avatars"}

	w := provisionBuckets(t, store, buckets)
	require.Equal(t, http.StatusOK, w.Code)

	var resp bucketResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Buckets, 3)

	assert.Equal(t, storage.StatusCreated, resp.Buckets[0].Status)
	assert.Empty(t, resp.Buckets[0].Error)
	assert.Equal(t, storage.StatusExists, resp.Buckets[1].Status)
	assert.Equal(t, storage.StatusError, resp.Buckets[2].Status)
	assert.Equal(t, "rate limited", resp.Buckets[2].Error)

	// A failing bucket never stops the rest.
	assert.Equal(t, buckets, store.calls)
}

func TestProvisionBucketsEmptyConfig(t *testing.T) {
	w := provisionBuckets(t, &fakeStore{}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp bucketResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Buckets)
}

func TestInitDatabaseAcknowledges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/database/init", NewAdminHandler(&fakeStore{}, nil, zap.NewNop()).InitDatabase)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/database/init", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already initialized")
}
