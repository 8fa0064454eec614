package repository

import (
	"context"
	"sort"
	"strings"
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

type firestoreChatRepository struct {
	client             *firestore.Client
	chatsCollection    string
	messagesCollection string
}

func NewFirestoreChatRepository(client *firestore.Client, chatsCollection, messagesCollection string) repository.ChatRepository {
	return &firestoreChatRepository{
		client:             client,
		chatsCollection:    chatsCollection,
		messagesCollection: messagesCollection,
	}
}

// pairKey builds the deterministic chat document id for an unordered
// participant pair. The id doubles as the uniqueness constraint: two
// racing creates land on the same document.
func pairKey(userID1, userID2 string) string {
	ids := []string{userID1, userID2}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

func (r *firestoreChatRepository) GetOrCreate(ctx context.Context, userID1, userID2 string) (*entity.Chat, error) {
	id := pairKey(userID1, userID2)
	docRef := r.client.Collection(r.chatsCollection).Doc(id)

	now := time.Now()
	chat := &entity.Chat{
		ID:           id,
		Participants: []string{userID1, userID2},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := docRef.Create(ctx, chat)
	if err == nil {
		return chat, nil
	}
	if status.Code(err) != codes.AlreadyExists {
		return nil, errors.Internal("Failed to create chat", err)
	}

	// Lost the race (or the chat predates this call): re-read.
	return r.GetByID(ctx, id)
}

func (r *firestoreChatRepository) GetByParticipants(ctx context.Context, userID1, userID2 string) (*entity.Chat, error) {
	return r.GetByID(ctx, pairKey(userID1, userID2))
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection(r.chatsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", nil)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	chat.ID = doc.Ref.ID

	return &chat, nil
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	query := r.client.Collection(r.chatsCollection).
		Where("participants", "array-contains", userID).
		OrderBy("updatedAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching chats for user %s: %v", userID, err)
		return nil, errors.Internal("Failed to fetch chats", err)
	}

	var chats []*entity.Chat
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			continue // Skip bad data instead of failing
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) Touch(ctx context.Context, id string) error {
	_, err := r.client.Collection(r.chatsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(r.messagesCollection).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetMessagesByChat(ctx context.Context, chatID string) ([]*entity.Message, error) {
	query := r.client.Collection(r.messagesCollection).
		Where("chatId", "==", chatID).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating messages for chat %s: %v", chatID, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Error("Error parsing message data for chat %s: %v", chatID, err)
			return nil, errors.Internal("Failed to parse message data", err)
		}
		message.ID = doc.Ref.ID

		messages = append(messages, &message)
	}

	return messages, nil
}
