package models

import "time"

// Post represents a feed post owned by a single user. MentionedUserIDs is
// stored as a JSON column and stays NULL when no mention resolves, so the
// wire format distinguishes "no mentions" from an empty list.
type Post struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Content          string    `json:"content" gorm:"type:text"`
	ImageURL         *string   `json:"imageUrl"`
	UserID           uint      `json:"userId" gorm:"index"`
	User             *User     `json:"user,omitempty"`
	MentionedUserIDs []uint    `json:"mentionedUserIds" gorm:"serializer:json"`
	Likes            []Like    `json:"likes,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Comments         []Comment `json:"comments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreatePostRequest defines the request body for creating a new post.
// Posts arrive as multipart forms so content binds from a form field; the
// image itself is read from the "image" file part by the handler.
type CreatePostRequest struct {
	Content string `json:"content" form:"content" validate:"required"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// ImageURL carries the no-file calling path: absent means keep the current
// image, an empty string clears it.
type UpdatePostRequest struct {
	Content  string  `json:"content" form:"content" validate:"required"`
	ImageURL *string `json:"imageUrl,omitempty" form:"imageUrl"`
}

// UserFeedResponse bundles the feed with the requesting user so the client
// can render both from a single call.
type UserFeedResponse struct {
	Posts []Post     `json:"posts"`
	User  PublicUser `json:"user"`
}
