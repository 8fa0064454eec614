package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/internal/domain/repository"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
)

type firestoreSubscriptionRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreSubscriptionRepository(client *firestore.Client, collection string) repository.SubscriptionRepository {
	return &firestoreSubscriptionRepository{
		client:     client,
		collection: collection,
	}
}

func (r *firestoreSubscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	sub.CreatedAt = time.Now()

	_, err := r.client.Collection(r.collection).Doc(sub.ID).Set(ctx, sub)
	if err != nil {
		return errors.Internal("Failed to create subscription", err)
	}

	return nil
}

func (r *firestoreSubscriptionRepository) GetByUserAndAuthor(ctx context.Context, userID, authorID string) (*entity.Subscription, error) {
	query := r.client.Collection(r.collection).
		Where("userId", "==", userID).
		Where("authorId", "==", authorID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Subscription", nil)
		}
		return nil, errors.Internal("Failed to query subscription", err)
	}

	var sub entity.Subscription
	if err := doc.DataTo(&sub); err != nil {
		return nil, errors.Internal("Failed to parse subscription data", err)
	}
	sub.ID = doc.Ref.ID

	return &sub, nil
}

func (r *firestoreSubscriptionRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Subscription, error) {
	return r.list(ctx, "userId", userID)
}

func (r *firestoreSubscriptionRepository) ListByAuthorID(ctx context.Context, authorID string) ([]*entity.Subscription, error) {
	return r.list(ctx, "authorId", authorID)
}

func (r *firestoreSubscriptionRepository) list(ctx context.Context, field, value string) ([]*entity.Subscription, error) {
	docs, err := r.client.Collection(r.collection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch subscriptions", err)
	}

	var subs []*entity.Subscription
	for _, doc := range docs {
		var sub entity.Subscription
		if err := doc.DataTo(&sub); err != nil {
			continue // Skip malformed documents
		}
		sub.ID = doc.Ref.ID
		subs = append(subs, &sub)
	}

	return subs, nil
}

func (r *firestoreSubscriptionRepository) CountByAuthorID(ctx context.Context, authorID string) (int64, error) {
	docs, err := r.client.Collection(r.collection).Where("authorId", "==", authorID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count subscribers", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreSubscriptionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.collection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete subscription", err)
	}

	return nil
}
