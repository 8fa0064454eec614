package entity

import "time"

// Save is a bookmark from a user to a post.
type Save struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"user"`
	PostID    string    `json:"post_id" firestore:"post"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
