package usecase

import (
	"context"
	"io"
	"time"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	RevokeSessions(ctx context.Context, uid string) error
	GetUserByEmail(ctx context.Context, email string) (string, error)
}

type FileStorage interface {
	Upload(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
	ViewURL(fileID string) string
	Delete(ctx context.Context, fileID string) error
}

// Notifier pushes document-created events to connected participants.
type Notifier interface {
	PublishDocumentCreated(collection string, document interface{}, recipients []string)
}

type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}

// Upload is an inbound binary attachment.
type Upload struct {
	Reader      io.Reader
	ContentType string
}
