package models

import "time"

// Platform describes a social media platform and its content constraints.
// Immutable once fetched from the catalog.
type Platform struct {
	ID           string `json:"id"`
	DisplayLabel string `json:"display_label"`
	MaxLength    int    `json:"max_length"`
	HashtagLimit int    `json:"hashtag_limit"`
}

// GeneratedPost is a single piece of platform copy. Immutable once produced.
type GeneratedPost struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

// PostBatch is one completed generation result: the posts from a single
// request together with the originating product name and timestamp.
// Never mutated after creation; ID is stable so the UI can track per-post
// copy state across renders.
type PostBatch struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Posts       []GeneratedPost `json:"posts"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// ClonePosts returns an independent copy of a post sequence.
func ClonePosts(posts []GeneratedPost) []GeneratedPost {
	if posts == nil {
		return nil
	}
	out := make([]GeneratedPost, len(posts))
	copy(out, posts)
	return out
}
