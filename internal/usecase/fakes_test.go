package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
)

type fakeUserRepo struct {
	users map[string]*entity.User // keyed by account uid
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, user := range users {
		repo.users[user.UserID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.UserID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByUserID(ctx context.Context, userID string) (*entity.User, error) {
	if user, ok := r.users[userID]; ok {
		return user, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.UserID] = user
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

type fakeStoryRepo struct {
	stories []*entity.Story
	marked  [][]string
}

func (r *fakeStoryRepo) Create(ctx context.Context, story *entity.Story) error {
	r.stories = append(r.stories, story)
	return nil
}

func (r *fakeStoryRepo) ListActive(ctx context.Context, now time.Time, limit int) ([]*entity.Story, error) {
	active := make([]*entity.Story, 0)
	for _, story := range r.stories {
		if story.ExpiresAt.After(now) {
			active = append(active, story)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	if len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

func (r *fakeStoryRepo) ListActiveByAuthor(ctx context.Context, authorID string, now time.Time) ([]*entity.Story, error) {
	stories := make([]*entity.Story, 0)
	for _, story := range r.stories {
		if story.AuthorID == authorID && story.ExpiresAt.After(now) {
			stories = append(stories, story)
		}
	}
	return stories, nil
}

func (r *fakeStoryRepo) MarkViewed(ctx context.Context, storyIDs []string) error {
	r.marked = append(r.marked, storyIDs)
	for _, story := range r.stories {
		for _, id := range storyIDs {
			if story.ID == id {
				story.Viewed = true
			}
		}
	}
	return nil
}

func (r *fakeStoryRepo) Delete(ctx context.Context, id string) error {
	for i, story := range r.stories {
		if story.ID == id {
			r.stories = append(r.stories[:i], r.stories[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Story", nil)
}

type fakeSubscriptionRepo struct {
	subs []*entity.Subscription
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	r.subs = append(r.subs, sub)
	return nil
}

func (r *fakeSubscriptionRepo) GetByUserAndAuthor(ctx context.Context, userID, authorID string) (*entity.Subscription, error) {
	for _, sub := range r.subs {
		if sub.UserID == userID && sub.AuthorID == authorID {
			return sub, nil
		}
	}
	return nil, errors.NotFound("Subscription", nil)
}

func (r *fakeSubscriptionRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Subscription, error) {
	subs := make([]*entity.Subscription, 0)
	for _, sub := range r.subs {
		if sub.UserID == userID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (r *fakeSubscriptionRepo) ListByAuthorID(ctx context.Context, authorID string) ([]*entity.Subscription, error) {
	subs := make([]*entity.Subscription, 0)
	for _, sub := range r.subs {
		if sub.AuthorID == authorID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (r *fakeSubscriptionRepo) CountByAuthorID(ctx context.Context, authorID string) (int64, error) {
	subs, _ := r.ListByAuthorID(ctx, authorID)
	return int64(len(subs)), nil
}

func (r *fakeSubscriptionRepo) Delete(ctx context.Context, id string) error {
	for i, sub := range r.subs {
		if sub.ID == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Subscription", nil)
}

type fakeChatRepo struct {
	chats            map[string]*entity.Chat
	messages         []*entity.Message
	touched          []string
	getOrCreateCalls int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*entity.Chat)}
}

func chatKey(userID1, userID2 string) string {
	ids := []string{userID1, userID2}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

func (r *fakeChatRepo) GetOrCreate(ctx context.Context, userID1, userID2 string) (*entity.Chat, error) {
	r.getOrCreateCalls++
	key := chatKey(userID1, userID2)
	if chat, ok := r.chats[key]; ok {
		return chat, nil
	}
	chat := &entity.Chat{
		ID:           key,
		Participants: []string{userID1, userID2},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.chats[key] = chat
	return chat, nil
}

func (r *fakeChatRepo) GetByParticipants(ctx context.Context, userID1, userID2 string) (*entity.Chat, error) {
	if chat, ok := r.chats[chatKey(userID1, userID2)]; ok {
		return chat, nil
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	for _, chat := range r.chats {
		if chat.ID == id {
			return chat, nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	chats := make([]*entity.Chat, 0)
	for _, chat := range r.chats {
		for _, participant := range chat.Participants {
			if participant == userID {
				chats = append(chats, chat)
				break
			}
		}
	}
	return chats, nil
}

func (r *fakeChatRepo) Touch(ctx context.Context, id string) error {
	r.touched = append(r.touched, id)
	return nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeChatRepo) GetMessagesByChat(ctx context.Context, chatID string) ([]*entity.Message, error) {
	messages := make([]*entity.Message, 0)
	for _, message := range r.messages {
		if message.ChatID == chatID {
			messages = append(messages, message)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

type fakePostRepo struct {
	posts []*entity.Post
}

func (r *fakePostRepo) Create(ctx context.Context, post *entity.Post) error {
	r.posts = append(r.posts, post)
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	for _, post := range r.posts {
		if post.ID == id {
			return post, nil
		}
	}
	return nil, errors.NotFound("Post", nil)
}

func (r *fakePostRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Post, error) {
	posts := make([]*entity.Post, len(r.posts))
	copy(posts, r.posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (r *fakePostRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Post, error) {
	posts := make([]*entity.Post, 0)
	for _, post := range r.posts {
		if post.UserID == userID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (r *fakePostRepo) UpdateLikes(ctx context.Context, postID string, likes []string) error {
	post, err := r.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	post.Likes = likes
	return nil
}

func (r *fakePostRepo) Update(ctx context.Context, post *entity.Post) error {
	for i, existing := range r.posts {
		if existing.ID == post.ID {
			r.posts[i] = post
			return nil
		}
	}
	return errors.NotFound("Post", nil)
}

func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	for i, post := range r.posts {
		if post.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Post", nil)
}

type fakeCommentRepo struct {
	comments []*entity.Comment
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	r.comments = append(r.comments, comment)
	return nil
}

func (r *fakeCommentRepo) ListByPostID(ctx context.Context, postID string) ([]*entity.Comment, error) {
	comments := make([]*entity.Comment, 0)
	for _, comment := range r.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

type fakeSaveRepo struct {
	saves   []*entity.Save
	deleted []string
}

func (r *fakeSaveRepo) Create(ctx context.Context, save *entity.Save) error {
	r.saves = append(r.saves, save)
	return nil
}

func (r *fakeSaveRepo) GetByUserAndPost(ctx context.Context, userID, postID string) (*entity.Save, error) {
	for _, save := range r.saves {
		if save.UserID == userID && save.PostID == postID {
			return save, nil
		}
	}
	return nil, errors.NotFound("Save", nil)
}

func (r *fakeSaveRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Save, error) {
	saves := make([]*entity.Save, 0)
	for _, save := range r.saves {
		if save.UserID == userID {
			saves = append(saves, save)
		}
	}
	return saves, nil
}

func (r *fakeSaveRepo) Delete(ctx context.Context, id string) error {
	for i, save := range r.saves {
		if save.ID == id {
			r.deleted = append(r.deleted, id)
			r.saves = append(r.saves[:i], r.saves[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Save", nil)
}

type fakeStorage struct {
	uploads []string
	deleted []string
}

func (s *fakeStorage) Upload(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	fileID := fmt.Sprintf("%s/file-%d", folder, len(s.uploads)+1)
	s.uploads = append(s.uploads, fileID)
	return fileID, nil
}

func (s *fakeStorage) ViewURL(fileID string) string {
	return "https://files.test/" + fileID
}

func (s *fakeStorage) Delete(ctx context.Context, fileID string) error {
	s.deleted = append(s.deleted, fileID)
	return nil
}

type fakeLimiter struct {
	denied  bool
	actions []string
}

func (l *fakeLimiter) Allow(userID, action string) (bool, time.Duration) {
	l.actions = append(l.actions, action)
	if l.denied {
		return false, time.Minute
	}
	return true, 0
}

type publishedEvent struct {
	collection string
	document   interface{}
	recipients []string
}

type fakeNotifier struct {
	events []publishedEvent
}

func (n *fakeNotifier) PublishDocumentCreated(collection string, document interface{}, recipients []string) {
	n.events = append(n.events, publishedEvent{collection: collection, document: document, recipients: recipients})
}
