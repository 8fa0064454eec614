package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vadim-maker-source/vexnum/pkg/errors"
)

func newChatUseCaseForTest(chatRepo *fakeChatRepo, storage *fakeStorage, limiter *fakeLimiter, notifier *fakeNotifier) *ChatUseCase {
	return NewChatUseCase(chatRepo, storage, limiter, notifier, "messages")
}

func imageUploads(n int) []Upload {
	uploads := make([]Upload, 0, n)
	for i := 0; i < n; i++ {
		uploads = append(uploads, Upload{Reader: strings.NewReader("img"), ContentType: "image/png"})
	}
	return uploads
}

func TestGetOrCreateChatConvergesOnOneChat(t *testing.T) {
	chatRepo := newFakeChatRepo()
	uc := newChatUseCaseForTest(chatRepo, &fakeStorage{}, &fakeLimiter{}, &fakeNotifier{})

	first, err := uc.GetOrCreateChat(context.Background(), "alice", "bob")
	assert.NoError(t, err)

	second, err := uc.GetOrCreateChat(context.Background(), "bob", "alice")
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, chatRepo.chats, 1)
}

func TestGetOrCreateChatRejectsSelf(t *testing.T) {
	uc := newChatUseCaseForTest(newFakeChatRepo(), &fakeStorage{}, &fakeLimiter{}, &fakeNotifier{})

	_, err := uc.GetOrCreateChat(context.Background(), "alice", "alice")

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageRequiresContentOrImage(t *testing.T) {
	chatRepo := newFakeChatRepo()
	storage := &fakeStorage{}
	limiter := &fakeLimiter{}
	uc := newChatUseCaseForTest(chatRepo, storage, limiter, &fakeNotifier{})

	_, err := uc.SendMessage(context.Background(), SendMessageInput{
		SenderID:   "alice",
		ReceiverID: "bob",
		Content:    "   ",
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	// Validation fires before any remote call.
	assert.Zero(t, chatRepo.getOrCreateCalls)
	assert.Empty(t, storage.uploads)
	assert.Empty(t, limiter.actions)
}

func TestSendMessageRejectsTooManyImages(t *testing.T) {
	chatRepo := newFakeChatRepo()
	uc := newChatUseCaseForTest(chatRepo, &fakeStorage{}, &fakeLimiter{}, &fakeNotifier{})

	_, err := uc.SendMessage(context.Background(), SendMessageInput{
		SenderID:   "alice",
		ReceiverID: "bob",
		Images:     imageUploads(5),
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Zero(t, chatRepo.getOrCreateCalls)
}

func TestSendMessageRateLimited(t *testing.T) {
	chatRepo := newFakeChatRepo()
	limiter := &fakeLimiter{denied: true}
	uc := newChatUseCaseForTest(chatRepo, &fakeStorage{}, limiter, &fakeNotifier{})

	_, err := uc.SendMessage(context.Background(), SendMessageInput{
		SenderID:   "alice",
		ReceiverID: "bob",
		Content:    "hi",
	})

	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
	assert.Equal(t, []string{"send_message"}, limiter.actions)
	assert.Zero(t, chatRepo.getOrCreateCalls)
}

func TestSendMessageCreatesUploadsAndPublishes(t *testing.T) {
	chatRepo := newFakeChatRepo()
	storage := &fakeStorage{}
	notifier := &fakeNotifier{}
	uc := newChatUseCaseForTest(chatRepo, storage, &fakeLimiter{}, notifier)

	message, err := uc.SendMessage(context.Background(), SendMessageInput{
		SenderID:   "alice",
		ReceiverID: "bob",
		Content:    "  hello  ",
		Images:     imageUploads(2),
	})

	assert.NoError(t, err)
	assert.Equal(t, "hello", message.Content)
	assert.Len(t, message.ImageIDs, 2)
	assert.Equal(t, chatKey("alice", "bob"), message.ChatID)
	assert.Len(t, chatRepo.messages, 1)
	assert.Equal(t, []string{message.ChatID}, chatRepo.touched)

	// Both participants receive the document-created event.
	assert.Len(t, notifier.events, 1)
	assert.Equal(t, "messages", notifier.events[0].collection)
	assert.ElementsMatch(t, []string{"alice", "bob"}, notifier.events[0].recipients)
}

func TestSendMessageImageOnly(t *testing.T) {
	uc := newChatUseCaseForTest(newFakeChatRepo(), &fakeStorage{}, &fakeLimiter{}, &fakeNotifier{})

	message, err := uc.SendMessage(context.Background(), SendMessageInput{
		SenderID:   "alice",
		ReceiverID: "bob",
		Images:     imageUploads(1),
	})

	assert.NoError(t, err)
	assert.Empty(t, message.Content)
	assert.Len(t, message.ImageIDs, 1)
}

func TestGetMessagesRequiresParticipant(t *testing.T) {
	chatRepo := newFakeChatRepo()
	uc := newChatUseCaseForTest(chatRepo, &fakeStorage{}, &fakeLimiter{}, &fakeNotifier{})

	chat, err := uc.GetOrCreateChat(context.Background(), "alice", "bob")
	assert.NoError(t, err)

	_, err = uc.GetMessages(context.Background(), "mallory", chat.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.GetMessages(context.Background(), "alice", chat.ID)
	assert.NoError(t, err)
}

func TestGetMessagesOrderedOldestFirst(t *testing.T) {
	chatRepo := newFakeChatRepo()
	uc := newChatUseCaseForTest(chatRepo, &fakeStorage{}, &fakeLimiter{}, &fakeNotifier{})

	for _, text := range []string{"one", "two", "three"} {
		_, err := uc.SendMessage(context.Background(), SendMessageInput{
			SenderID:   "alice",
			ReceiverID: "bob",
			Content:    text,
		})
		assert.NoError(t, err)
	}

	messages, err := uc.GetMessages(context.Background(), "bob", chatKey("alice", "bob"))
	assert.NoError(t, err)
	assert.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "three", messages[2].Content)
}
