package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"shrikemedia/internal/config"
	"shrikemedia/internal/database"
	"shrikemedia/internal/domain"
	"shrikemedia/internal/repository"
)

func main() {
	slug := flag.String("slug", "", "URL slug for the event (required)")
	title := flag.String("title", "", "event title (required)")
	date := flag.String("date", "", "event date, YYYY-MM-DD (default today)")
	description := flag.String("description", "", "optional description shown on the gallery page")
	publish := flag.Bool("publish", false, "make the event publicly visible immediately")
	flag.Parse()

	if *slug == "" || *title == "" {
		log.Fatal("both -slug and -title are required")
	}

	eventDate := time.Now()
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", *date, err)
		}
		eventDate = parsed
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	events := repository.NewEventRepository(db)
	ctx := context.Background()

	if existing, err := events.GetBySlug(ctx, *slug); err == nil {
		log.Fatalf("slug %q already taken by event %s", *slug, existing.ID)
	}

	event := &domain.Event{
		ID:          uuid.NewString(),
		Slug:        *slug,
		Title:       *title,
		Date:        eventDate,
		IsPublished: *publish,
	}
	if *description != "" {
		event.Description = description
	}

	if err := events.Create(ctx, event); err != nil {
		log.Fatalf("create event failed: %v", err)
	}

	log.Printf("event created: id=%s slug=%s published=%t", event.ID, event.Slug, event.IsPublished)
}
