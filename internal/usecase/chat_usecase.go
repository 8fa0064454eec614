package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/internal/domain/repository"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
	"github.com/Vadim-maker-source/vexnum/pkg/logger"
)

// A single message carries at most this many image attachments.
const maxMessageImages = 4

type ChatUseCase struct {
	chatRepo           repository.ChatRepository
	storage            FileStorage
	limiter            RateLimiter
	notifier           Notifier
	messagesCollection string
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	storage FileStorage,
	limiter RateLimiter,
	notifier Notifier,
	messagesCollection string,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:           chatRepo,
		storage:            storage,
		limiter:            limiter,
		notifier:           notifier,
		messagesCollection: messagesCollection,
	}
}

// GetOrCreateChat resolves the single chat for the pair, creating it on
// first contact.
func (uc *ChatUseCase) GetOrCreateChat(ctx context.Context, userID, otherUserID string) (*entity.Chat, error) {
	if userID == otherUserID {
		return nil, errors.BadRequest("Cannot open a chat with yourself", nil)
	}
	if otherUserID == "" {
		return nil, errors.BadRequest("Recipient is required", nil)
	}

	return uc.chatRepo.GetOrCreate(ctx, userID, otherUserID)
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string) ([]*entity.Chat, error) {
	chats, err := uc.chatRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list chats", err)
	}
	return chats, nil
}

type SendMessageInput struct {
	SenderID   string
	ReceiverID string
	Content    string
	Images     []Upload
}

// SendMessage validates the payload, uploads attachments, creates the
// message and pushes a document-created event to both participants.
// Validation happens before any remote call.
func (uc *ChatUseCase) SendMessage(ctx context.Context, input SendMessageInput) (*entity.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && len(input.Images) == 0 {
		return nil, errors.BadRequest("Message must carry text or at least one image", nil)
	}
	if len(input.Images) > maxMessageImages {
		return nil, errors.BadRequest("A message carries at most 4 images", nil)
	}
	if input.SenderID == input.ReceiverID {
		return nil, errors.BadRequest("Cannot message yourself", nil)
	}

	if allowed, wait := uc.limiter.Allow(input.SenderID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("Message limit reached", wait)
	}

	chat, err := uc.chatRepo.GetOrCreate(ctx, input.SenderID, input.ReceiverID)
	if err != nil {
		return nil, err
	}

	imageIDs := make([]string, 0, len(input.Images))
	for _, image := range input.Images {
		fileID, err := uc.storage.Upload(ctx, image.Reader, image.ContentType, "messages")
		if err != nil {
			return nil, errors.Internal("Failed to upload message image", err)
		}
		imageIDs = append(imageIDs, fileID)
	}

	message := &entity.Message{
		ID:         uuid.New().String(),
		ChatID:     chat.ID,
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Content:    content,
		ImageIDs:   imageIDs,
		CreatedAt:  time.Now(),
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, errors.Internal("Failed to create message", err)
	}

	if err := uc.chatRepo.Touch(ctx, chat.ID); err != nil {
		logger.Warn("Failed to touch chat %s: %v", chat.ID, err)
	}

	uc.notifier.PublishDocumentCreated(uc.messagesCollection, message, chat.Participants)

	return message, nil
}

// GetMessages returns a chat's history, oldest first. Only participants
// may read it.
func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, chatID string) ([]*entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !contains(chat.Participants, userID) {
		return nil, errors.Forbidden("Not a participant of this chat", nil)
	}

	messages, err := uc.chatRepo.GetMessagesByChat(ctx, chatID)
	if err != nil {
		return nil, errors.Internal("Failed to list messages", err)
	}
	return messages, nil
}

// ImageURL resolves an attachment id to its public URL.
func (uc *ChatUseCase) ImageURL(fileID string) string {
	return uc.storage.ViewURL(fileID)
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
