package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"shrikemedia/internal/config"
	"shrikemedia/internal/database"
	"shrikemedia/internal/domain"
	"shrikemedia/internal/modules/admin"
	"shrikemedia/internal/modules/comment"
	"shrikemedia/internal/modules/download"
	"shrikemedia/internal/modules/export"
	"shrikemedia/internal/modules/gallery"
	"shrikemedia/internal/modules/like"
	"shrikemedia/internal/modules/realtime"
	jwtsvc "shrikemedia/internal/pkg/jwt"
	"shrikemedia/internal/pkg/ratelimit"
	"shrikemedia/internal/pkg/storage"
	"shrikemedia/internal/repository"
)

const (
	commentLimit  = 5
	commentWindow = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	eventRepo := repository.NewEventRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	likeRepo := repository.NewPhotoLikeRepository(db)
	commentRepo := repository.NewPhotoCommentRepository(db)
	sessionRepo := repository.NewDownloadSessionRepository(db)

	urls := storage.PublicBucket{BaseURL: cfg.StorageURL, Bucket: cfg.StorageBucket}

	var limiter ratelimit.Limiter = ratelimit.Unlimited{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = ratelimit.NewRedis(rdb, "comments", commentLimit, commentWindow)
	}

	hub := realtime.NewHub()
	defer hub.Close()

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	events := eventGate{events: eventRepo}

	galleryService := gallery.NewService(eventRepo, photoRepo, urls)
	galleryHandler := gallery.NewHandler(galleryService)

	likeService := like.NewService(likeRepo, photoRepo, hub)
	likeHandler := like.NewHandler(likeService, events)

	commentService := comment.NewService(commentRepo, photoRepo, limiter, hub)
	commentHandler := comment.NewHandler(commentService, events)

	downloadService := download.NewService(sessionRepo, eventRepo, photoRepo, urls)
	downloadHandler := download.NewHandler(downloadService)

	exportService := export.NewService(urls)
	exportHandler := export.NewHandler(exportService, downloadService, photoRepo)

	adminService := admin.NewService(commentRepo, j, cfg.ModeratorUsername, cfg.ModeratorPassHash)
	adminHandler := admin.NewHandler(adminService, j)

	realtimeHandler := realtime.NewHandler(hub, events)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		galleryHandler.RegisterRoutes(v1)
		likeHandler.RegisterRoutes(v1)
		commentHandler.RegisterRoutes(v1)
		downloadHandler.RegisterRoutes(v1)
		exportHandler.RegisterRoutes(v1)
		adminHandler.RegisterRoutes(v1)
		realtimeHandler.RegisterRoutes(v1)
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

// eventGate resolves public slugs for the handlers; only published events
// are reachable through it.
type eventGate struct {
	events repository.EventRepository
}

func (g eventGate) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	return g.events.GetPublishedBySlug(ctx, slug)
}
