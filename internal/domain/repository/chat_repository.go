package repository

import (
	"context"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
)

type ChatRepository interface {
	// GetOrCreate resolves the single chat for an unordered participant
	// pair, creating it when absent. Concurrent creates for the same
	// pair must converge on one document.
	GetOrCreate(ctx context.Context, userID1, userID2 string) (*entity.Chat, error)

	// GetByParticipants returns the chat for a pair without creating it.
	GetByParticipants(ctx context.Context, userID1, userID2 string) (*entity.Chat, error)

	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error)
	Touch(ctx context.Context, id string) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessagesByChat(ctx context.Context, chatID string) ([]*entity.Message, error)
}
