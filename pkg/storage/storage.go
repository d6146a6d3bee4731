package storage

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Bucket provisioning statuses reported by EnsureBucket.
const (
	StatusCreated = "created"
	StatusExists  = "exists"
	StatusError   = "error"
)

// Client wraps the hosted object store (Cloudinary). Buckets map to top-level
// folders; EnsureBucket is idempotent.
type Client interface {
	UploadImage(ctx context.Context, file io.Reader, bucket, publicID string) (url string, err error)
	EnsureBucket(ctx context.Context, name string) (status string, err error)
}

type clientImpl struct {
	cld *cloudinary.Cloudinary
}

func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &clientImpl{cld: cld}, nil
}

// Upload eager transformation: auto quality/format, capped width.
const imageEager = "q_auto,f_auto,w_1200,c_limit"

var eagerAsyncFalse = false

func (c *clientImpl) UploadImage(ctx context.Context, file io.Reader, bucket, publicID string) (string, error) {
	result, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:     bucket,
		PublicID:   publicID,
		Eager:      imageEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// EnsureBucket creates the named folder if it does not exist yet and reports
// which of the two happened.
func (c *clientImpl) EnsureBucket(ctx context.Context, name string) (string, error) {
	roots, err := c.cld.Admin.RootFolders(ctx, admin.RootFoldersParams{})
	if err != nil {
		return StatusError, err
	}
	for _, f := range roots.Folders {
		if f.Name == name {
			return StatusExists, nil
		}
	}
	if _, err := c.cld.Admin.CreateFolder(ctx, admin.CreateFolderParams{Folder: name}); err != nil {
		return StatusError, err
	}
	return StatusCreated, nil
}
