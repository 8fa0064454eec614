package repository

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/internal/domain/repository"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
	"github.com/Vadim-maker-source/vexnum/pkg/logger"
)

type firestorePostRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestorePostRepository(client *firestore.Client, collection string) repository.PostRepository {
	return &firestorePostRepository{
		client:     client,
		collection: collection,
	}
}

// postDoc is the wire shape of a post document. Likes arrives either as
// a genuine array or as a JSON-encoded string, depending on which
// client wrote it; it is normalized exactly once here.
type postDoc struct {
	ID        string      `firestore:"id"`
	UserID    string      `firestore:"userId"`
	Title     string      `firestore:"title"`
	Images    []string    `firestore:"images"`
	Hashtags  []string    `firestore:"hashtags,omitempty"`
	Likes     interface{} `firestore:"likes"`
	CreatedAt time.Time   `firestore:"createdAt"`
}

func normalizeLikes(raw interface{}) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []interface{}:
		likes := make([]string, 0, len(v))
		for _, item := range v {
			id, ok := item.(string)
			if !ok {
				return nil, errors.BadRequest("Malformed likes entry in post document", nil)
			}
			likes = append(likes, id)
		}
		return likes, nil
	case string:
		// Legacy write path stored the array JSON-encoded.
		var likes []string
		if err := json.Unmarshal([]byte(v), &likes); err != nil {
			return nil, errors.BadRequest("Malformed likes field in post document", err)
		}
		return likes, nil
	default:
		return nil, errors.BadRequest("Unexpected likes shape in post document", nil)
	}
}

func (r *firestorePostRepository) docToPost(doc *firestore.DocumentSnapshot) (*entity.Post, error) {
	var raw postDoc
	if err := doc.DataTo(&raw); err != nil {
		return nil, errors.Internal("Failed to parse post data", err)
	}

	likes, err := normalizeLikes(raw.Likes)
	if err != nil {
		logger.Error("Post %s carries malformed likes: %v", doc.Ref.ID, err)
		return nil, err
	}

	return &entity.Post{
		ID:        doc.Ref.ID,
		UserID:    raw.UserID,
		Title:     raw.Title,
		Images:    raw.Images,
		Hashtags:  raw.Hashtags,
		Likes:     likes,
		CreatedAt: raw.CreatedAt,
	}, nil
}

func (r *firestorePostRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	post.CreatedAt = time.Now()

	_, err := r.client.Collection(r.collection).Doc(post.ID).Set(ctx, post)
	if err != nil {
		return errors.Internal("Failed to create post", err)
	}

	return nil
}

func (r *firestorePostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	doc, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Post", err)
		}
		return nil, errors.Internal("Failed to get post", err)
	}

	return r.docToPost(doc)
}

func (r *firestorePostRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Post, error) {
	query := r.client.Collection(r.collection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var posts []*entity.Post

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating posts: %v", err)
			return nil, errors.Internal("Failed to iterate posts", err)
		}

		post, err := r.docToPost(doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func (r *firestorePostRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Post, error) {
	query := r.client.Collection(r.collection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch user posts", err)
	}

	var posts []*entity.Post
	for _, doc := range docs {
		post, err := r.docToPost(doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// UpdateLikes always writes the canonical array shape, regardless of
// what the document held before.
func (r *firestorePostRepository) UpdateLikes(ctx context.Context, postID string, likes []string) error {
	if likes == nil {
		likes = []string{}
	}

	_, err := r.client.Collection(r.collection).Doc(postID).Update(ctx, []firestore.Update{
		{Path: "likes", Value: likes},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Post", err)
		}
		return errors.Internal("Failed to update likes", err)
	}

	return nil
}

func (r *firestorePostRepository) Update(ctx context.Context, post *entity.Post) error {
	_, err := r.client.Collection(r.collection).Doc(post.ID).Set(ctx, post)
	if err != nil {
		return errors.Internal("Failed to update post", err)
	}

	return nil
}

func (r *firestorePostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.collection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete post", err)
	}

	return nil
}
