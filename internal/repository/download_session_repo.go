package repository

import (
	"context"

	"gorm.io/gorm"

	"shrikemedia/internal/domain"
)

// DownloadSessionRepository manages token-addressed export sessions.
type DownloadSessionRepository interface {
	Create(ctx context.Context, session *domain.DownloadSession) error
	GetByToken(ctx context.Context, token string) (*domain.DownloadSession, error)
	IncrementDownloadCount(ctx context.Context, id string) error
}

type downloadSessionRepository struct {
	db *gorm.DB
}

func NewDownloadSessionRepository(db *gorm.DB) DownloadSessionRepository {
	return &downloadSessionRepository{db: db}
}

func (r *downloadSessionRepository) Create(ctx context.Context, session *domain.DownloadSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *downloadSessionRepository) GetByToken(ctx context.Context, token string) (*domain.DownloadSession, error) {
	var session domain.DownloadSession
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("token = ?", token).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *downloadSessionRepository) IncrementDownloadCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.DownloadSession{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}
