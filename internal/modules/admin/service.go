package admin

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	jwtsvc "shrikemedia/internal/pkg/jwt"
	"shrikemedia/internal/repository"
)

// RoleModerator is the only role the gallery backend knows about.
const RoleModerator = "moderator"

// Service authenticates the moderator and hides reported guestbook entries.
// There are no end-user accounts anywhere else in the system; this is the
// single privileged surface.
type Service struct {
	comments     repository.PhotoCommentRepository
	jwt          *jwtsvc.Service
	username     string
	passwordHash string
}

func NewService(comments repository.PhotoCommentRepository, jwt *jwtsvc.Service, username, passwordHash string) *Service {
	return &Service{
		comments:     comments,
		jwt:          jwt,
		username:     username,
		passwordHash: passwordHash,
	}
}

// Login verifies the moderator credentials and issues a bearer token.
func (s *Service) Login(_ context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidRequest
	}
	if s.passwordHash == "" || username != s.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateToken(username, RoleModerator)
}

// HideComment flips is_visible to false. Comments are never deleted, so a
// moderation mistake is recoverable at the database.
func (s *Service) HideComment(ctx context.Context, commentID string) error {
	if commentID == "" {
		return ErrInvalidRequest
	}
	if err := s.comments.Hide(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
