package entity

import "time"

// Message is immutable once created. A message must carry non-empty
// text or at least one image.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	ChatID     string    `json:"chat_id" firestore:"chatId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	ReceiverID string    `json:"receiver_id" firestore:"receiverId"`
	Content    string    `json:"content,omitempty" firestore:"content,omitempty"`
	ImageIDs   []string  `json:"image_ids,omitempty" firestore:"imageIds,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
