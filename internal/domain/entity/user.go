package entity

import "time"

type User struct {
	ID      string `json:"id" firestore:"id"`
	UserID  string `json:"user_id" firestore:"userId"`
	Name    string `json:"name" firestore:"name"`
	Email   string `json:"email" firestore:"email"`
	Bio     string `json:"bio,omitempty" firestore:"bio,omitempty"`
	ImageID string `json:"image_id,omitempty" firestore:"imageId,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
