package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"shrikemedia/internal/config"
	"shrikemedia/internal/database"
	"shrikemedia/internal/domain"
	"shrikemedia/internal/pkg/imaging"
	"shrikemedia/internal/pkg/storage"
	"shrikemedia/internal/repository"
)

// Renditions uploaded per photo. The full rendition caps the longest side so
// downloads stay reasonable; the thumb feeds the masonry grid.
const (
	fullMaxDim  = 1600
	fullQuality = 85

	thumbMaxDim  = 400
	thumbQuality = 80
)

func main() {
	slug := flag.String("event", "", "slug of the event to ingest into (required)")
	dir := flag.String("dir", "", "directory of source images (required)")
	flag.Parse()

	if *slug == "" || *dir == "" {
		log.Fatal("both -event and -dir are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.StorageServiceKey == "" {
		log.Fatal("STORAGE_SERVICE_KEY is required for ingestion")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	events := repository.NewEventRepository(db)
	photos := repository.NewPhotoRepository(db)
	store := storage.NewClient(cfg.StorageURL, cfg.StorageServiceKey, cfg.StorageBucket)

	ctx := context.Background()

	event, err := events.GetBySlug(ctx, *slug)
	if err != nil {
		log.Fatalf("event %q not found: %v", *slug, err)
	}

	files, err := listImages(*dir)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatalf("no images found in %s", *dir)
	}

	maxOrder, err := photos.MaxSortOrder(ctx, event.ID)
	if err != nil {
		log.Fatalf("reading sort order failed: %v", err)
	}
	nextOrder := maxOrder + 1

	// Re-running ingest is safe: files already ingested get their storage
	// objects re-uploaded (upsert heals missing objects) but no second row.
	existing, err := ingestedPaths(ctx, photos, event.ID)
	if err != nil {
		log.Fatalf("listing ingested photos failed: %v", err)
	}

	var ingested, refreshed, failed int
	for _, file := range files {
		inserted, err := ingestOne(ctx, photos, store, event, existing, file, nextOrder)
		if err != nil {
			log.Printf("skipping %s: %v", filepath.Base(file), err)
			failed++
			continue
		}
		if !inserted {
			log.Printf("refreshed %s (already ingested)", filepath.Base(file))
			refreshed++
			continue
		}
		log.Printf("ingested %s (sort_order=%d)", filepath.Base(file), nextOrder)
		nextOrder++
		ingested++
	}

	log.Printf("done: ingested=%d refreshed=%d failed=%d event=%s", ingested, refreshed, failed, event.Slug)
}

func ingestedPaths(ctx context.Context, photos repository.PhotoRepository, eventID string) (map[string]bool, error) {
	rows, err := photos.ListAllByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	paths := make(map[string]bool, len(rows))
	for _, p := range rows {
		paths[p.StoragePath] = true
	}
	return paths, nil
}

func ingestOne(ctx context.Context, photos repository.PhotoRepository, store *storage.Client, event *domain.Event, existing map[string]bool, file string, sortOrder int) (bool, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}

	img, _, err := imaging.Decode(data)
	if err != nil {
		return false, fmt.Errorf("decoding: %w", err)
	}

	full := imaging.ResizeToFit(img, fullMaxDim)
	fullData, err := imaging.EncodeJPEG(full, fullQuality)
	if err != nil {
		return false, fmt.Errorf("encoding full rendition: %w", err)
	}

	thumb := imaging.ResizeToFit(img, thumbMaxDim)
	thumbData, err := imaging.EncodeWebP(thumb, thumbQuality)
	if err != nil {
		return false, fmt.Errorf("encoding thumb: %w", err)
	}

	// The hash is computed from the thumb; at 4x3 components the source
	// resolution makes no visible difference.
	hash, err := imaging.EncodeBlurhash(thumb)
	if err != nil {
		return false, fmt.Errorf("encoding blurhash: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	fullPath := fmt.Sprintf("%s/full/%s.jpg", event.Slug, base)
	thumbPath := fmt.Sprintf("%s/thumb/%s.webp", event.Slug, base)

	if err := store.Upload(fullPath, fullData, "image/jpeg"); err != nil {
		return false, fmt.Errorf("uploading full rendition: %w", err)
	}
	if err := store.Upload(thumbPath, thumbData, "image/webp"); err != nil {
		return false, fmt.Errorf("uploading thumb: %w", err)
	}

	if existing[fullPath] {
		return false, nil
	}

	bounds := full.Bounds()
	photo := &domain.Photo{
		ID:          uuid.NewString(),
		EventID:     event.ID,
		StoragePath: fullPath,
		ThumbPath:   thumbPath,
		Filename:    base + ".jpg",
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Blurhash:    &hash,
		SortOrder:   sortOrder,
	}
	if err := photos.Create(ctx, photo); err != nil {
		return false, err
	}
	return true, nil
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png", ".webp":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
