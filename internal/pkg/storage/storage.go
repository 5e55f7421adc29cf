package storage

import (
	"bytes"
	"fmt"
	"strings"

	storagego "github.com/supabase-community/storage-go"
)

// PublicURL builds the public object URL for a stored relative path. Pure
// string concatenation; the bucket is world-readable.
func PublicURL(baseURL, bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		strings.TrimSuffix(baseURL, "/"), bucket, path)
}

// Client wraps the Supabase storage API for the ingest/cull tooling, which
// needs the service key to write and delete objects.
type Client struct {
	client  *storagego.Client
	bucket  string
	baseURL string
}

func NewClient(baseURL, serviceKey, bucket string) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		client:  storagego.NewClient(baseURL+"/storage/v1", serviceKey, nil),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (c *Client) Upload(path string, data []byte, contentType string) error {
	upsert := true
	_, err := c.client.UploadFile(c.bucket, path, bytes.NewReader(data), storagego.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

func (c *Client) Download(path string) ([]byte, error) {
	data, err := c.client.DownloadFile(c.bucket, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}
	return data, nil
}

func (c *Client) Remove(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := c.client.RemoveFile(c.bucket, paths)
	return err
}

func (c *Client) PublicURL(path string) string {
	return PublicURL(c.baseURL, c.bucket, path)
}

// PublicBucket builds public URLs without holding any credentials. The API
// serves URLs only; it never writes to storage.
type PublicBucket struct {
	BaseURL string
	Bucket  string
}

func (b PublicBucket) PublicURL(path string) string {
	return PublicURL(b.BaseURL, b.Bucket, path)
}
