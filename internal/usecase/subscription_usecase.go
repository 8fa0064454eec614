package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/internal/domain/repository"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
)

type SubscriptionUseCase struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionUseCase(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// Subscribe follows an author. Subscribing twice returns the existing
// subscription; following yourself is rejected.
func (uc *SubscriptionUseCase) Subscribe(ctx context.Context, userID, authorID string) (*entity.Subscription, error) {
	if userID == authorID {
		return nil, errors.BadRequest("Cannot subscribe to yourself", nil)
	}

	if _, err := uc.userRepo.GetByUserID(ctx, authorID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	existing, err := uc.subRepo.GetByUserAndAuthor(ctx, userID, authorID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, errors.Internal("Failed to look up subscription", err)
	}

	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	if err := uc.subRepo.Create(ctx, sub); err != nil {
		return nil, errors.Internal("Failed to create subscription", err)
	}
	return sub, nil
}

func (uc *SubscriptionUseCase) Unsubscribe(ctx context.Context, userID, authorID string) error {
	sub, err := uc.subRepo.GetByUserAndAuthor(ctx, userID, authorID)
	if err != nil {
		return err
	}

	if err := uc.subRepo.Delete(ctx, sub.ID); err != nil {
		return errors.Internal("Failed to delete subscription", err)
	}
	return nil
}

// IsSubscribed reports whether userID follows authorID.
func (uc *SubscriptionUseCase) IsSubscribed(ctx context.Context, userID, authorID string) (bool, error) {
	_, err := uc.subRepo.GetByUserAndAuthor(ctx, userID, authorID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, "NOT_FOUND") {
		return false, nil
	}
	return false, errors.Internal("Failed to look up subscription", err)
}

func (uc *SubscriptionUseCase) ListSubscriptions(ctx context.Context, userID string) ([]*entity.Subscription, error) {
	subs, err := uc.subRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list subscriptions", err)
	}
	return subs, nil
}

func (uc *SubscriptionUseCase) ListSubscribers(ctx context.Context, authorID string) ([]*entity.Subscription, error) {
	subs, err := uc.subRepo.ListByAuthorID(ctx, authorID)
	if err != nil {
		return nil, errors.Internal("Failed to list subscribers", err)
	}
	return subs, nil
}

func (uc *SubscriptionUseCase) SubscriberCount(ctx context.Context, authorID string) (int64, error) {
	count, err := uc.subRepo.CountByAuthorID(ctx, authorID)
	if err != nil {
		return 0, errors.Internal("Failed to count subscribers", err)
	}
	return count, nil
}
