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
	"github.com/Vadim-maker-source/vexnum/pkg/logger"
)

type firestoreStoryRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStoryRepository(client *firestore.Client, collection string) repository.StoryRepository {
	return &firestoreStoryRepository{
		client:     client,
		collection: collection,
	}
}

func (r *firestoreStoryRepository) Create(ctx context.Context, story *entity.Story) error {
	if story.ID == "" {
		story.ID = uuid.New().String()
	}

	_, err := r.client.Collection(r.collection).Doc(story.ID).Set(ctx, story)
	if err != nil {
		return errors.Internal("Failed to create story", err)
	}

	return nil
}

func (r *firestoreStoryRepository) ListActive(ctx context.Context, now time.Time, limit int) ([]*entity.Story, error) {
	query := r.client.Collection(r.collection).
		Where("expiresAt", ">", now).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var stories []*entity.Story

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating stories: %v", err)
			return nil, errors.Internal("Failed to iterate stories", err)
		}

		var story entity.Story
		if err := doc.DataTo(&story); err != nil {
			logger.Error("Error parsing story data: %v", err)
			return nil, errors.Internal("Failed to parse story data", err)
		}
		story.ID = doc.Ref.ID

		stories = append(stories, &story)
	}

	return stories, nil
}

func (r *firestoreStoryRepository) ListActiveByAuthor(ctx context.Context, authorID string, now time.Time) ([]*entity.Story, error) {
	query := r.client.Collection(r.collection).
		Where("authorId", "==", authorID).
		Where("expiresAt", ">", now)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch author stories", err)
	}

	var stories []*entity.Story
	for _, doc := range docs {
		var story entity.Story
		if err := doc.DataTo(&story); err != nil {
			continue // Skip malformed documents
		}
		story.ID = doc.Ref.ID
		stories = append(stories, &story)
	}

	return stories, nil
}

func (r *firestoreStoryRepository) MarkViewed(ctx context.Context, storyIDs []string) error {
	// BulkWriter flushes the updates together but is not atomic, so
	// every job result is checked individually.
	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(storyIDs))
	for _, id := range storyIDs {
		docRef := r.client.Collection(r.collection).Doc(id)
		job, err := bw.Update(docRef, []firestore.Update{{Path: "viewed", Value: true}})
		if err != nil {
			return errors.Internal("Failed to queue viewed update", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errors.Internal("Failed to mark story viewed", err)
		}
	}

	return nil
}

func (r *firestoreStoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.collection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete story", err)
	}

	return nil
}
