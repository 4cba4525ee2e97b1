package models

import "time"

// Comment represents a comment threaded under a post. Mention resolution
// follows the same rule as posts.
type Comment struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Content          string    `json:"content" gorm:"type:text"`
	PostID           uint      `json:"postId" gorm:"index"`
	UserID           uint      `json:"userId" gorm:"index"`
	User             *User     `json:"user,omitempty"`
	MentionedUserIDs []uint    `json:"mentionedUserIds" gorm:"serializer:json"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
