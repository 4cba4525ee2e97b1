package models

import "time"

// Like represents a like on a post. The composite unique index guarantees at
// most one like per (post, user) pair.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"postId" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"userId" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToggleLikeResponse reports the outcome of a like toggle. LikesCount is
// recounted from the store after the mutation.
type ToggleLikeResponse struct {
	Message    string `json:"message"`
	Liked      bool   `json:"liked"`
	LikesCount int64  `json:"likesCount"`
}
