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

func newPostUseCaseForTest(postRepo *fakePostRepo, commentRepo *fakeCommentRepo, saveRepo *fakeSaveRepo, userRepo *fakeUserRepo, storage *fakeStorage) *PostUseCase {
	return NewPostUseCase(postRepo, commentRepo, saveRepo, userRepo, storage)
}

func seedPost(id, userID string, likes ...string) *entity.Post {
	if likes == nil {
		likes = []string{}
	}
	return &entity.Post{
		ID:        id,
		UserID:    userID,
		Title:     "title",
		Images:    []string{"posts/img"},
		Likes:     likes,
		CreatedAt: time.Now(),
	}
}

func TestCreatePostRequiresTitleAndImage(t *testing.T) {
	storage := &fakeStorage{}
	uc := newPostUseCaseForTest(&fakePostRepo{}, &fakeCommentRepo{}, &fakeSaveRepo{}, newFakeUserRepo(), storage)

	_, err := uc.CreatePost(context.Background(), CreatePostInput{
		UserID: "u1",
		Title:  "  ",
		Images: []Upload{{Reader: strings.NewReader("img")}},
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.CreatePost(context.Background(), CreatePostInput{
		UserID: "u1",
		Title:  "hello",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// Neither attempt reached storage.
	assert.Empty(t, storage.uploads)
}

func TestCreatePostUploadsAllImages(t *testing.T) {
	postRepo := &fakePostRepo{}
	storage := &fakeStorage{}
	uc := newPostUseCaseForTest(postRepo, &fakeCommentRepo{}, &fakeSaveRepo{}, newFakeUserRepo(), storage)

	post, err := uc.CreatePost(context.Background(), CreatePostInput{
		UserID: "u1",
		Title:  "hello",
		Images: []Upload{
			{Reader: strings.NewReader("a"), ContentType: "image/png"},
			{Reader: strings.NewReader("b"), ContentType: "image/jpeg"},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, post.Images, 2)
	assert.NotNil(t, post.Likes)
	assert.Empty(t, post.Likes)
	assert.Len(t, postRepo.posts, 1)
}

func TestToggleLikeAddsAndRemoves(t *testing.T) {
	postRepo := &fakePostRepo{posts: []*entity.Post{seedPost("p1", "author", "other")}}
	uc := newPostUseCaseForTest(postRepo, &fakeCommentRepo{}, &fakeSaveRepo{}, newFakeUserRepo(), &fakeStorage{})

	post, err := uc.ToggleLike(context.Background(), "u1", "p1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"other", "u1"}, post.Likes)

	post, err = uc.ToggleLike(context.Background(), "u1", "p1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"other"}, post.Likes)
}

func TestSavePostIsIdempotent(t *testing.T) {
	postRepo := &fakePostRepo{posts: []*entity.Post{seedPost("p1", "author")}}
	saveRepo := &fakeSaveRepo{}
	uc := newPostUseCaseForTest(postRepo, &fakeCommentRepo{}, saveRepo, newFakeUserRepo(), &fakeStorage{})

	first, err := uc.SavePost(context.Background(), "u1", "p1")
	assert.NoError(t, err)

	second, err := uc.SavePost(context.Background(), "u1", "p1")
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, saveRepo.saves, 1)
}

func TestListSavedPrunesStaleSaves(t *testing.T) {
	postRepo := &fakePostRepo{posts: []*entity.Post{seedPost("p1", "author")}}
	saveRepo := &fakeSaveRepo{saves: []*entity.Save{
		{ID: "save1", UserID: "u1", PostID: "p1"},
		{ID: "save2", UserID: "u1", PostID: "deleted-post"},
	}}
	userRepo := newFakeUserRepo(&entity.User{UserID: "author", Name: "Ann"})
	uc := newPostUseCaseForTest(postRepo, &fakeCommentRepo{}, saveRepo, userRepo, &fakeStorage{})

	posts, err := uc.ListSaved(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, []string{"save2"}, saveRepo.deleted)
}

func TestUnsavePostMissingSave(t *testing.T) {
	uc := newPostUseCaseForTest(&fakePostRepo{}, &fakeCommentRepo{}, &fakeSaveRepo{}, newFakeUserRepo(), &fakeStorage{})

	err := uc.UnsavePost(context.Background(), "u1", "p1")

	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListRecentDecoratesAuthorsThroughCache(t *testing.T) {
	postRepo := &fakePostRepo{posts: []*entity.Post{
		seedPost("p1", "author"),
		seedPost("p2", "author"),
	}}
	userRepo := newFakeUserRepo(&entity.User{UserID: "author", Name: "Ann", ImageID: "avatars/a"})
	uc := newPostUseCaseForTest(postRepo, &fakeCommentRepo{}, &fakeSaveRepo{}, userRepo, &fakeStorage{})

	posts, err := uc.ListRecent(context.Background())

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	for _, post := range posts {
		assert.Equal(t, "Ann", post.Author.Name)
		assert.Contains(t, post.Author.AvatarURL, "avatars/a")
	}
}

func TestCreateCommentRejectsEmptyContent(t *testing.T) {
	postRepo := &fakePostRepo{posts: []*entity.Post{seedPost("p1", "author")}}
	commentRepo := &fakeCommentRepo{}
	uc := newPostUseCaseForTest(postRepo, commentRepo, &fakeSaveRepo{}, newFakeUserRepo(), &fakeStorage{})

	_, err := uc.CreateComment(context.Background(), "u1", "p1", "   ")

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Empty(t, commentRepo.comments)
}

func TestCreateCommentRequiresExistingPost(t *testing.T) {
	uc := newPostUseCaseForTest(&fakePostRepo{}, &fakeCommentRepo{}, &fakeSaveRepo{}, newFakeUserRepo(), &fakeStorage{})

	_, err := uc.CreateComment(context.Background(), "u1", "missing", "nice")

	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestUpdatePostOnlyAuthor(t *testing.T) {
	postRepo := &fakePostRepo{posts: []*entity.Post{seedPost("p1", "author")}}
	uc := newPostUseCaseForTest(postRepo, &fakeCommentRepo{}, &fakeSaveRepo{}, newFakeUserRepo(), &fakeStorage{})

	_, err := uc.UpdatePost(context.Background(), "mallory", "p1", UpdatePostInput{Title: "new"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	post, err := uc.UpdatePost(context.Background(), "author", "p1", UpdatePostInput{Title: "new"})
	assert.NoError(t, err)
	assert.Equal(t, "new", post.Title)
}

func TestDeletePostRemovesImages(t *testing.T) {
	postRepo := &fakePostRepo{posts: []*entity.Post{seedPost("p1", "author")}}
	storage := &fakeStorage{}
	uc := newPostUseCaseForTest(postRepo, &fakeCommentRepo{}, &fakeSaveRepo{}, newFakeUserRepo(), storage)

	err := uc.DeletePost(context.Background(), "author", "p1")

	assert.NoError(t, err)
	assert.Empty(t, postRepo.posts)
	assert.Equal(t, []string{"posts/img"}, storage.deleted)
}
