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

type firestoreSaveRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreSaveRepository(client *firestore.Client, collection string) repository.SaveRepository {
	return &firestoreSaveRepository{
		client:     client,
		collection: collection,
	}
}

func (r *firestoreSaveRepository) Create(ctx context.Context, save *entity.Save) error {
	if save.ID == "" {
		save.ID = uuid.New().String()
	}
	save.CreatedAt = time.Now()

	_, err := r.client.Collection(r.collection).Doc(save.ID).Set(ctx, save)
	if err != nil {
		return errors.Internal("Failed to create save", err)
	}

	return nil
}

func (r *firestoreSaveRepository) GetByUserAndPost(ctx context.Context, userID, postID string) (*entity.Save, error) {
	query := r.client.Collection(r.collection).
		Where("user", "==", userID).
		Where("post", "==", postID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Save", nil)
		}
		return nil, errors.Internal("Failed to query save", err)
	}

	var save entity.Save
	if err := doc.DataTo(&save); err != nil {
		return nil, errors.Internal("Failed to parse save data", err)
	}
	save.ID = doc.Ref.ID

	return &save, nil
}

func (r *firestoreSaveRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Save, error) {
	query := r.client.Collection(r.collection).
		Where("user", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch saves", err)
	}

	var saves []*entity.Save
	for _, doc := range docs {
		var save entity.Save
		if err := doc.DataTo(&save); err != nil {
			continue // Skip malformed documents
		}
		save.ID = doc.Ref.ID
		saves = append(saves, &save)
	}

	return saves, nil
}

func (r *firestoreSaveRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.collection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete save", err)
	}

	return nil
}
