package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/internal/domain/repository"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
	"github.com/Vadim-maker-source/vexnum/pkg/logger"
)

const (
	ViewModeAll           = "all"
	ViewModeSubscriptions = "subscriptions"
)

const (
	storyLifetime    = 24 * time.Hour
	activeStoryLimit = 100
)

type StoryUseCase struct {
	storyRepo repository.StoryRepository
	subRepo   repository.SubscriptionRepository
	userRepo  repository.UserRepository
	storage   FileStorage
	limiter   RateLimiter
	clock     func() time.Time
}

func NewStoryUseCase(
	storyRepo repository.StoryRepository,
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	storage FileStorage,
	limiter RateLimiter,
) *StoryUseCase {
	return &StoryUseCase{
		storyRepo: storyRepo,
		subRepo:   subRepo,
		userRepo:  userRepo,
		storage:   storage,
		limiter:   limiter,
		clock:     time.Now,
	}
}

type CreateStoryInput struct {
	AuthorID  string
	MediaType string
	Duration  int // seconds, videos only
	Media     Upload
}

func (uc *StoryUseCase) CreateStory(ctx context.Context, input CreateStoryInput) (*entity.Story, error) {
	if input.MediaType != entity.MediaTypeImage && input.MediaType != entity.MediaTypeVideo {
		return nil, errors.BadRequest("Media type must be image or video", nil)
	}

	if allowed, wait := uc.limiter.Allow(input.AuthorID, "create_story"); !allowed {
		return nil, errors.TooManyRequests("Story upload limit reached", wait)
	}

	author, err := uc.userRepo.GetByUserID(ctx, input.AuthorID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	fileID, err := uc.storage.Upload(ctx, input.Media.Reader, input.Media.ContentType, "stories")
	if err != nil {
		return nil, errors.Internal("Failed to upload story media", err)
	}

	now := uc.clock()
	story := &entity.Story{
		ID:         uuid.New().String(),
		AuthorID:   author.UserID,
		AuthorName: author.Name,
		MediaURL:   uc.storage.ViewURL(fileID),
		MediaType:  input.MediaType,
		CreatedAt:  now,
		ExpiresAt:  now.Add(storyLifetime),
	}
	if author.ImageID != "" {
		story.AuthorAvatar = uc.storage.ViewURL(author.ImageID)
	}
	if input.MediaType == entity.MediaTypeVideo {
		story.Duration = input.Duration
	}

	if err := uc.storyRepo.Create(ctx, story); err != nil {
		return nil, errors.Internal("Failed to create story", err)
	}

	return story, nil
}

// ListGroups returns active stories grouped per author, filtered by
// view mode and ordered for the story tray: authors the viewer
// subscribes to first, then by each author's newest story.
func (uc *StoryUseCase) ListGroups(ctx context.Context, viewerID, viewMode string) ([]entity.UserStoryGroup, error) {
	stories, err := uc.storyRepo.ListActive(ctx, uc.clock(), activeStoryLimit)
	if err != nil {
		return nil, errors.Internal("Failed to list stories", err)
	}

	subscribed, err := uc.subscribedAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	// Group by author in fetch order, newest story first per group.
	indexByAuthor := make(map[string]int)
	groups := make([]entity.UserStoryGroup, 0)
	for _, story := range stories {
		idx, ok := indexByAuthor[story.AuthorID]
		if !ok {
			idx = len(groups)
			indexByAuthor[story.AuthorID] = idx
			groups = append(groups, entity.UserStoryGroup{
				AuthorID:     story.AuthorID,
				AuthorName:   story.AuthorName,
				AuthorAvatar: story.AuthorAvatar,
			})
		}
		groups[idx].Stories = append(groups[idx].Stories, *story)
		if !story.Viewed && story.AuthorID != viewerID {
			groups[idx].HasUnviewed = true
		}
	}

	if viewMode == ViewModeSubscriptions {
		filtered := groups[:0]
		for _, group := range groups {
			if subscribed[group.AuthorID] {
				filtered = append(filtered, group)
			}
		}
		groups = filtered
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if subscribed[groups[i].AuthorID] != subscribed[groups[j].AuthorID] {
			return subscribed[groups[i].AuthorID]
		}
		return groups[i].Stories[0].CreatedAt.After(groups[j].Stories[0].CreatedAt)
	})

	return groups, nil
}

// MarkViewed flips every unviewed active story of the author to viewed.
func (uc *StoryUseCase) MarkViewed(ctx context.Context, authorID, viewerID string) error {
	stories, err := uc.storyRepo.ListActiveByAuthor(ctx, authorID, uc.clock())
	if err != nil {
		return errors.Internal("Failed to list author stories", err)
	}

	var unviewed []string
	for _, story := range stories {
		if !story.Viewed {
			unviewed = append(unviewed, story.ID)
		}
	}
	if len(unviewed) == 0 {
		return nil
	}

	logger.Debug("Marking %d stories viewed for author %s (viewer %s)", len(unviewed), authorID, viewerID)
	if err := uc.storyRepo.MarkViewed(ctx, unviewed); err != nil {
		return errors.Internal("Failed to mark stories viewed", err)
	}
	return nil
}

// DeleteStory removes one of the author's own active stories.
func (uc *StoryUseCase) DeleteStory(ctx context.Context, authorID, storyID string) error {
	stories, err := uc.storyRepo.ListActiveByAuthor(ctx, authorID, uc.clock())
	if err != nil {
		return errors.Internal("Failed to list author stories", err)
	}

	for _, story := range stories {
		if story.ID == storyID {
			if err := uc.storyRepo.Delete(ctx, storyID); err != nil {
				return errors.Internal("Failed to delete story", err)
			}
			return nil
		}
	}

	return errors.NotFound("Story", nil)
}

func (uc *StoryUseCase) subscribedAuthors(ctx context.Context, viewerID string) (map[string]bool, error) {
	subs, err := uc.subRepo.ListByUserID(ctx, viewerID)
	if err != nil {
		return nil, errors.Internal("Failed to list subscriptions", err)
	}

	authors := make(map[string]bool, len(subs))
	for _, sub := range subs {
		authors[sub.AuthorID] = true
	}
	return authors, nil
}
