package client

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"shrikemedia/internal/modules/download"
	"shrikemedia/internal/modules/export"
	"shrikemedia/internal/modules/gallery"
)

// batchFetchers bounds concurrent image fetches during a batch export so a
// large queue does not open a connection per photo.
const batchFetchers = 4

// Exporter saves photos to local files. Instant downloads go through the
// store's web-size endpoint and degrade to the raw storage object when that
// fails; batch exports fetch full resolution concurrently and zip locally.
type Exporter struct {
	api *API
}

func NewExporter(api *API) *Exporter {
	return &Exporter{api: api}
}

// InstantDownload saves the web-sized rendition of a photo into destDir and
// returns the written path. If the web endpoint cannot be reached the
// original full-resolution object is saved instead, so the viewer always
// gets an image as long as the object exists.
func (e *Exporter) InstantDownload(ctx context.Context, photo gallery.PhotoResponse, destDir string) (string, error) {
	data, err := e.api.FetchBytes(ctx, e.api.WebDownloadURL(photo.ID))
	if err != nil {
		data, err = e.api.FetchBytes(ctx, photo.FullURL)
		if err != nil {
			return "", fmt.Errorf("downloading %s: %w", photo.Filename, err)
		}
	}

	path := filepath.Join(destDir, export.JPEGFilename(photo.Filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// BatchZip fetches every session photo at full resolution and writes a zip
// archive to w. Photos that fail to fetch are skipped so one broken object
// does not sink the whole export; the skipped filenames are returned.
func (e *Exporter) BatchZip(ctx context.Context, photos []download.SessionPhoto, w io.Writer) ([]string, error) {
	type fetched struct {
		name string
		data []byte
		err  error
	}

	results := make([]fetched, len(photos))
	sem := make(chan struct{}, batchFetchers)
	var wg sync.WaitGroup

	for i, p := range photos {
		wg.Add(1)
		go func(i int, p download.SessionPhoto) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			data, err := e.api.FetchBytes(ctx, p.FullURL)
			results[i] = fetched{name: p.Filename, data: data, err: err}
		}(i, p)
	}
	wg.Wait()

	zw := zip.NewWriter(w)
	var skipped []string
	for _, r := range results {
		if r.err != nil {
			skipped = append(skipped, r.name)
			continue
		}
		entry, err := zw.Create(r.name)
		if err != nil {
			zw.Close()
			return skipped, err
		}
		if _, err := entry.Write(r.data); err != nil {
			zw.Close()
			return skipped, err
		}
	}
	if err := zw.Close(); err != nil {
		return skipped, err
	}
	return skipped, nil
}

// SaveSessionZip resolves a download token and writes the archive to path.
func (e *Exporter) SaveSessionZip(ctx context.Context, token, path string) ([]string, error) {
	view, err := e.api.ResolveDownload(ctx, token)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	skipped, err := e.BatchZip(ctx, view.Photos, f)
	if err != nil {
		return skipped, err
	}
	return skipped, f.Sync()
}
