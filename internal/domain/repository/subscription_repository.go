package repository

import (
	"context"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByUserAndAuthor(ctx context.Context, userID, authorID string) (*entity.Subscription, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Subscription, error)
	ListByAuthorID(ctx context.Context, authorID string) ([]*entity.Subscription, error)
	CountByAuthorID(ctx context.Context, authorID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
