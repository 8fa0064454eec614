package entity

import "time"

// Chat is a two-party conversation container. At most one chat exists
// per unordered participant pair; the repository enforces this with a
// deterministic document id derived from the sorted pair.
type Chat struct {
	ID           string    `json:"id" firestore:"id"`
	Participants []string  `json:"participants" firestore:"participants"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}
