package entity

import "time"

type Post struct {
	ID       string   `json:"id" firestore:"id"`
	UserID   string   `json:"user_id" firestore:"userId"`
	Title    string   `json:"title" firestore:"title"`
	Images   []string `json:"images" firestore:"images"`
	Hashtags []string `json:"hashtags,omitempty" firestore:"hashtags,omitempty"`

	// Canonically an array of user ids. Legacy documents carry a
	// JSON-encoded string instead; the repository normalizes that shape
	// once on read.
	Likes []string `json:"likes" firestore:"likes"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// AuthorInfo decorates a post with display data for its author.
type AuthorInfo struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type PostWithAuthor struct {
	Post
	Author AuthorInfo `json:"author"`
}
