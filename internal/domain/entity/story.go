package entity

import "time"

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type Story struct {
	ID           string `json:"id" firestore:"id"`
	AuthorID     string `json:"author_id" firestore:"authorId"`
	AuthorName   string `json:"author_name" firestore:"authorName"`
	AuthorAvatar string `json:"author_avatar,omitempty" firestore:"authorAvatar,omitempty"`
	MediaURL     string `json:"media_url" firestore:"mediaUrl"`
	MediaType    string `json:"media_type" firestore:"mediaType"` // "image" or "video"

	// Declared playback length in seconds, videos only. Zero means the
	// author did not supply one.
	Duration int `json:"duration,omitempty" firestore:"duration,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	ExpiresAt time.Time `json:"expires_at" firestore:"expiresAt"`

	// Set once any viewer opens the author's story set. Stored on the
	// story document itself; the remote schema is authoritative here.
	Viewed bool `json:"viewed" firestore:"viewed"`
}

// UserStoryGroup is the per-author view of active stories. It is
// recomputed on every fetch and never persisted.
type UserStoryGroup struct {
	AuthorID     string  `json:"author_id"`
	AuthorName   string  `json:"author_name"`
	AuthorAvatar string  `json:"author_avatar,omitempty"`
	Stories      []Story `json:"stories"`
	HasUnviewed  bool    `json:"has_unviewed"`
}
