package repository

import (
	"context"
	"time"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
)

type StoryRepository interface {
	Create(ctx context.Context, story *entity.Story) error

	// ListActive returns stories whose expiry is strictly after now,
	// newest first, capped at limit.
	ListActive(ctx context.Context, now time.Time, limit int) ([]*entity.Story, error)

	// ListActiveByAuthor returns an author's unexpired stories.
	ListActiveByAuthor(ctx context.Context, authorID string, now time.Time) ([]*entity.Story, error)

	// MarkViewed flips viewed=true on each given story document.
	MarkViewed(ctx context.Context, storyIDs []string) error

	Delete(ctx context.Context, id string) error
}
