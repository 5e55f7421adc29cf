package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"math"

	"shrikemedia/internal/config"
	"shrikemedia/internal/database"
	"shrikemedia/internal/domain"
	"shrikemedia/internal/pkg/imaging"
	"shrikemedia/internal/pkg/storage"
	"shrikemedia/internal/repository"
)

// Culling removes obviously bad frames after ingestion: out of focus or wildly
// overexposed. Metrics are computed from the stored thumbs and thresholds are
// relative to the batch itself (one standard deviation from the mean), because
// absolute sharpness varies wildly between venues and lenses.
const (
	// Pixels at or above this 8-bit luminance count as clipped.
	clippedLuma = 250
)

type metrics struct {
	photo      domain.Photo
	sharpness  float64
	clippedPct float64
}

func main() {
	slug := flag.String("event", "", "slug of the event to cull (required)")
	dryRun := flag.Bool("dry-run", false, "report rejects without deleting anything")
	blurOnly := flag.Bool("blur-only", false, "skip the overexposure check")
	flag.Parse()

	if *slug == "" {
		log.Fatal("-event is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.StorageServiceKey == "" {
		log.Fatal("STORAGE_SERVICE_KEY is required for culling")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	events := repository.NewEventRepository(db)
	photos := repository.NewPhotoRepository(db)
	store := storage.NewClient(cfg.StorageURL, cfg.StorageServiceKey, cfg.StorageBucket)

	ctx := context.Background()

	event, err := events.GetBySlug(ctx, *slug)
	if err != nil {
		log.Fatalf("event %q not found: %v", *slug, err)
	}

	all, err := photos.ListAllByEvent(ctx, event.ID)
	if err != nil {
		log.Fatalf("listing photos failed: %v", err)
	}
	if len(all) < 3 {
		log.Fatalf("need at least 3 photos to establish a baseline, found %d", len(all))
	}

	scored := make([]metrics, 0, len(all))
	for _, photo := range all {
		m, err := analyze(store, photo)
		if err != nil {
			log.Printf("skipping %s: %v", photo.Filename, err)
			continue
		}
		scored = append(scored, m)
	}
	if len(scored) < 3 {
		log.Fatal("too few analyzable photos to establish a baseline")
	}

	sharpMean, sharpStd := stats(scored, func(m metrics) float64 { return m.sharpness })
	clipMean, clipStd := stats(scored, func(m metrics) float64 { return m.clippedPct })

	sharpCutoff := sharpMean - sharpStd
	clipCutoff := clipMean + clipStd

	var rejects []metrics
	for _, m := range scored {
		switch {
		case m.sharpness < sharpCutoff:
			log.Printf("blurry: %s (sharpness %.1f, cutoff %.1f)", m.photo.Filename, m.sharpness, sharpCutoff)
			rejects = append(rejects, m)
		case !*blurOnly && m.clippedPct > clipCutoff:
			log.Printf("overexposed: %s (%.1f%% clipped, cutoff %.1f%%)", m.photo.Filename, m.clippedPct, clipCutoff)
			rejects = append(rejects, m)
		}
	}

	if *dryRun {
		log.Printf("dry run: %d of %d would be removed", len(rejects), len(scored))
		return
	}

	var removed int
	for _, m := range rejects {
		if err := store.Remove([]string{m.photo.ThumbPath, m.photo.StoragePath}); err != nil {
			log.Printf("removing objects for %s failed: %v", m.photo.Filename, err)
			continue
		}
		if err := photos.Delete(ctx, m.photo.ID); err != nil {
			log.Printf("deleting row for %s failed: %v", m.photo.Filename, err)
			continue
		}
		removed++
	}

	log.Printf("done: removed=%d kept=%d event=%s", removed, len(all)-removed, event.Slug)
}

func analyze(store *storage.Client, photo domain.Photo) (metrics, error) {
	data, err := store.Download(photo.ThumbPath)
	if err != nil {
		return metrics{}, err
	}
	img, _, err := imaging.Decode(data)
	if err != nil {
		return metrics{}, fmt.Errorf("decoding: %w", err)
	}

	gray := grayscale(img)
	return metrics{
		photo:      photo,
		sharpness:  laplacianVariance(gray),
		clippedPct: clippedPercent(gray),
	}, nil
}

func grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

// laplacianVariance measures sharpness as the variance of the 4-neighbour
// Laplacian response. Blurred frames have weak edges everywhere, so their
// response clusters near zero and the variance collapses.
func laplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	responses := make([]float64, 0, (w-2)*(h-2))
	var sum float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			center := float64(gray.GrayAt(x, y).Y)
			lap := float64(gray.GrayAt(x-1, y).Y) +
				float64(gray.GrayAt(x+1, y).Y) +
				float64(gray.GrayAt(x, y-1).Y) +
				float64(gray.GrayAt(x, y+1).Y) -
				4*center
			responses = append(responses, lap)
			sum += lap
		}
	}

	mean := sum / float64(len(responses))
	var variance float64
	for _, r := range responses {
		d := r - mean
		variance += d * d
	}
	return variance / float64(len(responses))
}

func clippedPercent(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	var clipped int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y >= clippedLuma {
				clipped++
			}
		}
	}
	return 100 * float64(clipped) / float64(total)
}

func stats(scored []metrics, value func(metrics) float64) (mean, stddev float64) {
	for _, m := range scored {
		mean += value(m)
	}
	mean /= float64(len(scored))

	var variance float64
	for _, m := range scored {
		d := value(m) - mean
		variance += d * d
	}
	variance /= float64(len(scored))
	return mean, math.Sqrt(variance)
}
