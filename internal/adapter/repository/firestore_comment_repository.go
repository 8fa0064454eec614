package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/internal/domain/repository"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
)

type firestoreCommentRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreCommentRepository(client *firestore.Client, collection string) repository.CommentRepository {
	return &firestoreCommentRepository{
		client:     client,
		collection: collection,
	}
}

func (r *firestoreCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()

	_, err := r.client.Collection(r.collection).Doc(comment.ID).Set(ctx, comment)
	if err != nil {
		return errors.Internal("Failed to create comment", err)
	}

	return nil
}

func (r *firestoreCommentRepository) ListByPostID(ctx context.Context, postID string) ([]*entity.Comment, error) {
	query := r.client.Collection(r.collection).
		Where("postId", "==", postID).
		OrderBy("createdAt", firestore.Asc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch comments", err)
	}

	var comments []*entity.Comment
	for _, doc := range docs {
		var comment entity.Comment
		if err := doc.DataTo(&comment); err != nil {
			continue // Skip malformed documents
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, &comment)
	}

	return comments, nil
}
