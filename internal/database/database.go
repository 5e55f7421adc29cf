package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the CGO-free "sqlite" driver

	"shrikemedia/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the gallery schema. The ingest tooling and the API share it.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Event{},
		&domain.Photo{},
		&domain.PhotoLike{},
		&domain.PhotoComment{},
		&domain.DownloadSession{},
	)
}
