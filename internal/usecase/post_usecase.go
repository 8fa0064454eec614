package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/internal/domain/repository"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
	"github.com/Vadim-maker-source/vexnum/pkg/logger"
)

const (
	recentPostLimit = 20
	authorCacheTTL  = 5 * time.Minute
)

type PostUseCase struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	saveRepo    repository.SaveRepository
	userRepo    repository.UserRepository
	storage     FileStorage

	cacheMu     sync.Mutex
	authorCache map[string]cachedAuthor
}

type cachedAuthor struct {
	info      entity.AuthorInfo
	fetchedAt time.Time
}

func NewPostUseCase(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	saveRepo repository.SaveRepository,
	userRepo repository.UserRepository,
	storage FileStorage,
) *PostUseCase {
	return &PostUseCase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		saveRepo:    saveRepo,
		userRepo:    userRepo,
		storage:     storage,
		authorCache: make(map[string]cachedAuthor),
	}
}

type CreatePostInput struct {
	UserID   string
	Title    string
	Hashtags []string
	Images   []Upload
}

func (uc *PostUseCase) CreatePost(ctx context.Context, input CreatePostInput) (*entity.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if len(input.Images) == 0 {
		return nil, errors.BadRequest("A post needs at least one image", nil)
	}

	imageIDs := make([]string, 0, len(input.Images))
	for _, image := range input.Images {
		fileID, err := uc.storage.Upload(ctx, image.Reader, image.ContentType, "posts")
		if err != nil {
			return nil, errors.Internal("Failed to upload post image", err)
		}
		imageIDs = append(imageIDs, fileID)
	}

	post := &entity.Post{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Title:     title,
		Images:    imageIDs,
		Hashtags:  input.Hashtags,
		Likes:     []string{},
		CreatedAt: time.Now(),
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, errors.Internal("Failed to create post", err)
	}

	return post, nil
}

// ListRecent returns the newest posts decorated with author display
// info resolved through a short-lived in-process cache.
func (uc *PostUseCase) ListRecent(ctx context.Context) ([]*entity.PostWithAuthor, error) {
	posts, err := uc.postRepo.ListRecent(ctx, recentPostLimit)
	if err != nil {
		return nil, errors.Internal("Failed to list posts", err)
	}
	return uc.withAuthors(ctx, posts), nil
}

func (uc *PostUseCase) ListByUser(ctx context.Context, userID string) ([]*entity.PostWithAuthor, error) {
	posts, err := uc.postRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list posts", err)
	}
	return uc.withAuthors(ctx, posts), nil
}

func (uc *PostUseCase) GetPost(ctx context.Context, postID string) (*entity.PostWithAuthor, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	decorated := &entity.PostWithAuthor{Post: *post}
	decorated.Author = uc.authorInfo(ctx, post.UserID)
	return decorated, nil
}

type UpdatePostInput struct {
	Title    string
	Hashtags []string
}

func (uc *PostUseCase) UpdatePost(ctx context.Context, userID, postID string, input UpdatePostInput) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, errors.Forbidden("Only the author can edit a post", nil)
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		post.Title = title
	}
	if input.Hashtags != nil {
		post.Hashtags = input.Hashtags
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		return nil, errors.Internal("Failed to update post", err)
	}
	return post, nil
}

func (uc *PostUseCase) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return errors.Forbidden("Only the author can delete a post", nil)
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return errors.Internal("Failed to delete post", err)
	}

	for _, fileID := range post.Images {
		// Best effort: the document is already gone.
		_ = uc.storage.Delete(ctx, fileID)
	}
	return nil
}

// ToggleLike adds or removes the user's like and rewrites the canonical
// array. The updated post is returned.
func (uc *PostUseCase) ToggleLike(ctx context.Context, userID, postID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	likes := make([]string, 0, len(post.Likes)+1)
	liked := false
	for _, id := range post.Likes {
		if id == userID {
			liked = true
			continue
		}
		likes = append(likes, id)
	}
	if !liked {
		likes = append(likes, userID)
	}

	if err := uc.postRepo.UpdateLikes(ctx, postID, likes); err != nil {
		return nil, errors.Internal("Failed to update likes", err)
	}

	post.Likes = likes
	return post, nil
}

func (uc *PostUseCase) CreateComment(ctx context.Context, userID, postID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Comment cannot be empty", nil)
	}

	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, errors.Internal("Failed to create comment", err)
	}
	return comment, nil
}

func (uc *PostUseCase) ListComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	comments, err := uc.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, errors.Internal("Failed to list comments", err)
	}
	return comments, nil
}

// SavePost bookmarks a post. Saving twice is a no-op.
func (uc *PostUseCase) SavePost(ctx context.Context, userID, postID string) (*entity.Save, error) {
	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	existing, err := uc.saveRepo.GetByUserAndPost(ctx, userID, postID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, errors.Internal("Failed to look up save", err)
	}

	save := &entity.Save{
		ID:        uuid.New().String(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	if err := uc.saveRepo.Create(ctx, save); err != nil {
		return nil, errors.Internal("Failed to save post", err)
	}
	return save, nil
}

func (uc *PostUseCase) UnsavePost(ctx context.Context, userID, postID string) error {
	save, err := uc.saveRepo.GetByUserAndPost(ctx, userID, postID)
	if err != nil {
		return err
	}

	if err := uc.saveRepo.Delete(ctx, save.ID); err != nil {
		return errors.Internal("Failed to remove save", err)
	}
	return nil
}

// ListSaved returns the user's saved posts. Saves pointing at deleted
// posts are pruned as they are discovered.
func (uc *PostUseCase) ListSaved(ctx context.Context, userID string) ([]*entity.PostWithAuthor, error) {
	saves, err := uc.saveRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list saves", err)
	}

	result := make([]*entity.PostWithAuthor, 0, len(saves))
	for _, save := range saves {
		post, err := uc.postRepo.GetByID(ctx, save.PostID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				logger.Debug("Pruning stale save %s for deleted post %s", save.ID, save.PostID)
				if deleteErr := uc.saveRepo.Delete(ctx, save.ID); deleteErr != nil {
					logger.Warn("Failed to prune save %s: %v", save.ID, deleteErr)
				}
				continue
			}
			return nil, errors.Internal("Failed to load saved post", err)
		}

		decorated := &entity.PostWithAuthor{Post: *post}
		decorated.Author = uc.authorInfo(ctx, post.UserID)
		result = append(result, decorated)
	}
	return result, nil
}

// IsSaved reports whether the user bookmarked the post.
func (uc *PostUseCase) IsSaved(ctx context.Context, userID, postID string) (bool, error) {
	_, err := uc.saveRepo.GetByUserAndPost(ctx, userID, postID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, "NOT_FOUND") {
		return false, nil
	}
	return false, errors.Internal("Failed to look up save", err)
}

// ImageURL resolves a post image id to its public URL.
func (uc *PostUseCase) ImageURL(fileID string) string {
	return uc.storage.ViewURL(fileID)
}

func (uc *PostUseCase) withAuthors(ctx context.Context, posts []*entity.Post) []*entity.PostWithAuthor {
	result := make([]*entity.PostWithAuthor, 0, len(posts))
	for _, post := range posts {
		decorated := &entity.PostWithAuthor{Post: *post}
		decorated.Author = uc.authorInfo(ctx, post.UserID)
		result = append(result, decorated)
	}
	return result
}

func (uc *PostUseCase) authorInfo(ctx context.Context, userID string) entity.AuthorInfo {
	uc.cacheMu.Lock()
	cached, ok := uc.authorCache[userID]
	uc.cacheMu.Unlock()
	if ok && time.Since(cached.fetchedAt) < authorCacheTTL {
		return cached.info
	}

	user, err := uc.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to resolve author %s: %v", userID, err)
		return entity.AuthorInfo{}
	}

	info := entity.AuthorInfo{Name: user.Name}
	if user.ImageID != "" {
		info.AvatarURL = uc.storage.ViewURL(user.ImageID)
	}

	uc.cacheMu.Lock()
	uc.authorCache[userID] = cachedAuthor{info: info, fetchedAt: time.Now()}
	uc.cacheMu.Unlock()

	return info
}
