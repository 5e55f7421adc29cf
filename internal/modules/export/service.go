package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"shrikemedia/internal/domain"
	"shrikemedia/internal/pkg/imaging"
)

const (
	// WebMaxDim bounds the longer side of an instant download.
	WebMaxDim = 1024
	// WebQuality is the JPEG quality for web-size exports.
	WebQuality = 85
	// FullResQuality is used when a full-resolution source has to be
	// re-encoded to JPEG for format consistency.
	FullResQuality = 92

	fetchTimeout = 30 * time.Second
)

// URLBuilder turns a stored relative path into a public object URL.
type URLBuilder interface {
	PublicURL(path string) string
}

type Service struct {
	urls  URLBuilder
	httpc *http.Client
}

func NewService(urls URLBuilder) *Service {
	return &Service{
		urls:  urls,
		httpc: &http.Client{Timeout: fetchTimeout},
	}
}

// SourceURL is the fallback target: when any transcode step fails the caller
// redirects here so the user still gets the photo.
func (s *Service) SourceURL(photo *domain.Photo) string {
	return s.urls.PublicURL(photo.StoragePath)
}

// WebSize produces the instant-download rendition: longer side capped at
// WebMaxDim (sources already within the bound are not resized), re-encoded
// as JPEG.
func (s *Service) WebSize(ctx context.Context, photo *domain.Photo) ([]byte, error) {
	data, err := s.fetch(ctx, s.SourceURL(photo))
	if err != nil {
		return nil, err
	}
	return imaging.ResizeAndEncode(data, WebMaxDim, WebQuality)
}

// FullRes returns the original bytes when the source is already JPEG and a
// full-size JPEG re-encode otherwise.
func (s *Service) FullRes(ctx context.Context, photo *domain.Photo) ([]byte, error) {
	data, err := s.fetch(ctx, s.SourceURL(photo))
	if err != nil {
		return nil, err
	}

	img, format, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	if format == "jpeg" {
		return data, nil
	}
	return imaging.EncodeJPEG(img, FullResQuality)
}

// WriteZip streams an archive of the photos' full-resolution sources under
// their filenames. Individual fetch failures skip that entry; the batch is
// best effort, a partial archive beats no archive.
func (s *Service) WriteZip(ctx context.Context, photos []domain.Photo, w io.Writer) error {
	zw := zip.NewWriter(w)

	for i := range photos {
		photo := &photos[i]
		data, err := s.fetch(ctx, s.SourceURL(photo))
		if err != nil {
			log.Printf("zip_entry_skipped photo_id=%s error=%q", photo.ID, err)
			continue
		}

		name := photo.Filename
		if name == "" {
			name = fmt.Sprintf("photo-%s.jpg", photo.ID)
		}
		entry, err := zw.Create(name)
		if err != nil {
			return err
		}
		if _, err := entry.Write(data); err != nil {
			return err
		}
	}

	return zw.Close()
}

func (s *Service) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// JPEGFilename swaps the extension for .jpg; exports are always JPEG.
func JPEGFilename(filename string) string {
	ext := path.Ext(filename)
	if ext == "" {
		return filename + ".jpg"
	}
	return strings.TrimSuffix(filename, ext) + ".jpg"
}
