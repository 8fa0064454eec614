package entity

import "time"

type Comment struct {
	ID        string    `json:"id" firestore:"id"`
	PostID    string    `json:"post_id" firestore:"postId"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Content   string    `json:"content" firestore:"content"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
