package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/handcraftlab/atelier/config"
)

// publicURLMarker is the fixed segment of every public object URL. Deletion
// re-derives the bucket and object path by locating this marker; a URL that
// does not contain it has no backing blob we manage.
const publicURLMarker = "/storage/v1/object/public/"

// Client is a thin pass-through to a Supabase-style object storage HTTP API.
// Upload takes a blob and a path and yields a public URL; Remove takes a
// path and deletes the blob.
type Client struct {
	endpoint string
	apiKey   string
}

func NewClient(cfg config.StorageConfig) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
	}
}

// Upload stores data under bucket/objectPath and returns the public URL.
func (c *Client) Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string) (string, error) {
	if c.endpoint == "" {
		return "", errors.New("storage endpoint is not configured")
	}
	objectPath = strings.TrimLeft(objectPath, "/")
	u := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.endpoint, bucket, objectPath)

	var code int
	var body string
	err := gout.POST(u).
		WithContext(ctx).
		SetHeader(gout.H{
			"authorization": "Bearer " + c.apiKey,
			"content-type":  contentType,
		}).
		SetBody(data).
		BindBody(&body).
		Code(&code).
		Do()
	if err != nil {
		return "", errors.Wrap(err, "storage upload request failed")
	}
	if code < 200 || code >= 300 {
		return "", errors.Errorf("storage upload failed: status=%d body=%s", code, body)
	}
	return c.PublicURL(bucket, objectPath), nil
}

// Remove deletes the blob at bucket/objectPath.
func (c *Client) Remove(ctx context.Context, bucket, objectPath string) error {
	if c.endpoint == "" {
		return errors.New("storage endpoint is not configured")
	}
	objectPath = strings.TrimLeft(objectPath, "/")
	u := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.endpoint, bucket, objectPath)

	var code int
	var body string
	err := gout.DELETE(u).
		WithContext(ctx).
		SetHeader(gout.H{"authorization": "Bearer " + c.apiKey}).
		BindBody(&body).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(err, "storage delete request failed")
	}
	if code < 200 || code >= 300 {
		return errors.Errorf("storage delete failed: status=%d body=%s", code, body)
	}
	return nil
}

// PublicURL builds the public address of an object.
func (c *Client) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s%s%s/%s", c.endpoint, publicURLMarker, bucket, strings.TrimLeft(objectPath, "/"))
}

// PathFromPublicURL splits a public object URL into bucket and object path.
// ok is false when the URL does not contain the public marker, which callers
// treat as "no backing blob".
func PathFromPublicURL(u string) (bucket string, objectPath string, ok bool) {
	idx := strings.Index(u, publicURLMarker)
	if idx < 0 {
		return "", "", false
	}
	rest := u[idx+len(publicURLMarker):]
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// RemoveByPublicURL is the best-effort companion cleanup used after a
// database row is gone. Failures are logged and swallowed: record
// consistency outranks blob cleanup.
func (c *Client) RemoveByPublicURL(ctx context.Context, u string) {
	bucket, objectPath, ok := PathFromPublicURL(u)
	if !ok {
		return
	}
	if err := c.Remove(ctx, bucket, objectPath); err != nil {
		zap.L().Warn("storage blob removal failed, orphaned blob left behind",
			zap.String("bucket", bucket),
			zap.String("path", objectPath),
			zap.Error(err))
	}
}
