package entity

import "time"

// Subscription is a one-directional follow from a subscriber to an
// author. At most one exists per (userId, authorId) pair; callers must
// guard against self-subscription.
type Subscription struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	AuthorID  string    `json:"author_id" firestore:"authorId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
