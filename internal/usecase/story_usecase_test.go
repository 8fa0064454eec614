package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newStoryUseCaseForTest(storyRepo *fakeStoryRepo, subRepo *fakeSubscriptionRepo, userRepo *fakeUserRepo, storage *fakeStorage, limiter *fakeLimiter) *StoryUseCase {
	uc := NewStoryUseCase(storyRepo, subRepo, userRepo, storage, limiter)
	uc.clock = func() time.Time { return testNow }
	return uc
}

func activeStory(id, authorID string, age time.Duration, viewed bool) *entity.Story {
	createdAt := testNow.Add(-age)
	return &entity.Story{
		ID:        id,
		AuthorID:  authorID,
		MediaType: entity.MediaTypeImage,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(24 * time.Hour),
		Viewed:    viewed,
	}
}

func TestCreateStorySetsExpiry(t *testing.T) {
	storyRepo := &fakeStoryRepo{}
	userRepo := newFakeUserRepo(&entity.User{ID: "doc-1", UserID: "author1", Name: "Ann", ImageID: "avatars/a"})
	storage := &fakeStorage{}
	uc := newStoryUseCaseForTest(storyRepo, &fakeSubscriptionRepo{}, userRepo, storage, &fakeLimiter{})

	story, err := uc.CreateStory(context.Background(), CreateStoryInput{
		AuthorID:  "author1",
		MediaType: entity.MediaTypeVideo,
		Duration:  8,
		Media:     Upload{Reader: strings.NewReader("blob"), ContentType: "video/mp4"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "author1", story.AuthorID)
	assert.Equal(t, "Ann", story.AuthorName)
	assert.Equal(t, 8, story.Duration)
	assert.Equal(t, testNow.Add(24*time.Hour), story.ExpiresAt)
	assert.Contains(t, story.MediaURL, "stories/")
	assert.Contains(t, story.AuthorAvatar, "avatars/a")
	assert.Len(t, storyRepo.stories, 1)
}

func TestCreateStoryIgnoresDurationForImages(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{UserID: "author1", Name: "Ann"})
	uc := newStoryUseCaseForTest(&fakeStoryRepo{}, &fakeSubscriptionRepo{}, userRepo, &fakeStorage{}, &fakeLimiter{})

	story, err := uc.CreateStory(context.Background(), CreateStoryInput{
		AuthorID:  "author1",
		MediaType: entity.MediaTypeImage,
		Duration:  30,
		Media:     Upload{Reader: strings.NewReader("blob"), ContentType: "image/png"},
	})

	assert.NoError(t, err)
	assert.Zero(t, story.Duration)
}

func TestCreateStoryRejectsUnknownMediaType(t *testing.T) {
	storage := &fakeStorage{}
	uc := newStoryUseCaseForTest(&fakeStoryRepo{}, &fakeSubscriptionRepo{}, newFakeUserRepo(), storage, &fakeLimiter{})

	_, err := uc.CreateStory(context.Background(), CreateStoryInput{
		AuthorID:  "author1",
		MediaType: "audio",
		Media:     Upload{Reader: strings.NewReader("blob")},
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Empty(t, storage.uploads)
}

func TestCreateStoryRateLimited(t *testing.T) {
	storage := &fakeStorage{}
	limiter := &fakeLimiter{denied: true}
	uc := newStoryUseCaseForTest(&fakeStoryRepo{}, &fakeSubscriptionRepo{}, newFakeUserRepo(), storage, limiter)

	_, err := uc.CreateStory(context.Background(), CreateStoryInput{
		AuthorID:  "author1",
		MediaType: entity.MediaTypeImage,
		Media:     Upload{Reader: strings.NewReader("blob")},
	})

	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
	assert.Equal(t, []string{"create_story"}, limiter.actions)
	assert.Empty(t, storage.uploads)
}

func TestListGroupsGroupsByAuthorInFetchOrder(t *testing.T) {
	storyRepo := &fakeStoryRepo{stories: []*entity.Story{
		activeStory("s1", "a1", 1*time.Hour, false),
		activeStory("s2", "a2", 2*time.Hour, false),
		activeStory("s3", "a1", 3*time.Hour, false),
		activeStory("expired", "a3", 30*time.Hour, false),
	}}
	uc := newStoryUseCaseForTest(storyRepo, &fakeSubscriptionRepo{}, newFakeUserRepo(), &fakeStorage{}, &fakeLimiter{})

	groups, err := uc.ListGroups(context.Background(), "viewer", ViewModeAll)

	assert.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.Equal(t, "a1", groups[0].AuthorID)
	assert.Equal(t, []string{"s1", "s3"}, []string{groups[0].Stories[0].ID, groups[0].Stories[1].ID})
	assert.Equal(t, "a2", groups[1].AuthorID)
}

func TestListGroupsHasUnviewed(t *testing.T) {
	storyRepo := &fakeStoryRepo{stories: []*entity.Story{
		activeStory("s1", "a1", 1*time.Hour, false),
		activeStory("s2", "a2", 2*time.Hour, true),
		activeStory("s3", "viewer", 3*time.Hour, false),
	}}
	uc := newStoryUseCaseForTest(storyRepo, &fakeSubscriptionRepo{}, newFakeUserRepo(), &fakeStorage{}, &fakeLimiter{})

	groups, err := uc.ListGroups(context.Background(), "viewer", ViewModeAll)

	assert.NoError(t, err)
	byAuthor := make(map[string]bool)
	for _, group := range groups {
		byAuthor[group.AuthorID] = group.HasUnviewed
	}
	assert.True(t, byAuthor["a1"])
	// All stories already viewed.
	assert.False(t, byAuthor["a2"])
	// The viewer's own stories never count as unviewed.
	assert.False(t, byAuthor["viewer"])
}

func TestListGroupsSubscribedAuthorsFirst(t *testing.T) {
	storyRepo := &fakeStoryRepo{stories: []*entity.Story{
		activeStory("s1", "a1", 1*time.Hour, false), // newest overall, not subscribed
		activeStory("s2", "a2", 2*time.Hour, false), // subscribed, newer
		activeStory("s3", "a3", 3*time.Hour, false), // subscribed, older
	}}
	subRepo := &fakeSubscriptionRepo{subs: []*entity.Subscription{
		{ID: "sub1", UserID: "viewer", AuthorID: "a2"},
		{ID: "sub2", UserID: "viewer", AuthorID: "a3"},
	}}
	uc := newStoryUseCaseForTest(storyRepo, subRepo, newFakeUserRepo(), &fakeStorage{}, &fakeLimiter{})

	groups, err := uc.ListGroups(context.Background(), "viewer", ViewModeAll)

	assert.NoError(t, err)
	assert.Equal(t, []string{"a2", "a3", "a1"}, []string{groups[0].AuthorID, groups[1].AuthorID, groups[2].AuthorID})
}

func TestListGroupsSubscriptionsModeFiltersAuthors(t *testing.T) {
	storyRepo := &fakeStoryRepo{stories: []*entity.Story{
		activeStory("s1", "a1", 1*time.Hour, false),
		activeStory("s2", "a2", 2*time.Hour, false),
		activeStory("s3", "viewer", 3*time.Hour, false),
	}}
	subRepo := &fakeSubscriptionRepo{subs: []*entity.Subscription{
		{ID: "sub1", UserID: "viewer", AuthorID: "a2"},
	}}
	uc := newStoryUseCaseForTest(storyRepo, subRepo, newFakeUserRepo(), &fakeStorage{}, &fakeLimiter{})

	groups, err := uc.ListGroups(context.Background(), "viewer", ViewModeSubscriptions)

	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, "a2", groups[0].AuthorID)
}

func TestListGroupsSubscriptionsModeExcludesOwnStories(t *testing.T) {
	storyRepo := &fakeStoryRepo{stories: []*entity.Story{
		activeStory("s1", "viewer", 1*time.Hour, false),
	}}
	uc := newStoryUseCaseForTest(storyRepo, &fakeSubscriptionRepo{}, newFakeUserRepo(), &fakeStorage{}, &fakeLimiter{})

	groups, err := uc.ListGroups(context.Background(), "viewer", ViewModeSubscriptions)

	assert.NoError(t, err)
	assert.Empty(t, groups)
}

func TestMarkViewedBatchesOnlyUnviewed(t *testing.T) {
	storyRepo := &fakeStoryRepo{stories: []*entity.Story{
		activeStory("s1", "a1", 1*time.Hour, true),
		activeStory("s2", "a1", 2*time.Hour, false),
		activeStory("s3", "a1", 3*time.Hour, false),
		activeStory("s4", "a2", 1*time.Hour, false),
	}}
	uc := newStoryUseCaseForTest(storyRepo, &fakeSubscriptionRepo{}, newFakeUserRepo(), &fakeStorage{}, &fakeLimiter{})

	err := uc.MarkViewed(context.Background(), "a1", "viewer")

	assert.NoError(t, err)
	assert.Len(t, storyRepo.marked, 1)
	assert.ElementsMatch(t, []string{"s2", "s3"}, storyRepo.marked[0])
}

func TestMarkViewedSkipsWriteWhenNothingUnviewed(t *testing.T) {
	storyRepo := &fakeStoryRepo{stories: []*entity.Story{
		activeStory("s1", "a1", 1*time.Hour, true),
	}}
	uc := newStoryUseCaseForTest(storyRepo, &fakeSubscriptionRepo{}, newFakeUserRepo(), &fakeStorage{}, &fakeLimiter{})

	err := uc.MarkViewed(context.Background(), "a1", "viewer")

	assert.NoError(t, err)
	assert.Empty(t, storyRepo.marked)
}

func TestDeleteStoryOnlyOwn(t *testing.T) {
	storyRepo := &fakeStoryRepo{stories: []*entity.Story{
		activeStory("s1", "a1", 1*time.Hour, false),
	}}
	uc := newStoryUseCaseForTest(storyRepo, &fakeSubscriptionRepo{}, newFakeUserRepo(), &fakeStorage{}, &fakeLimiter{})

	err := uc.DeleteStory(context.Background(), "someone-else", "s1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Len(t, storyRepo.stories, 1)

	err = uc.DeleteStory(context.Background(), "a1", "s1")
	assert.NoError(t, err)
	assert.Empty(t, storyRepo.stories)
}
