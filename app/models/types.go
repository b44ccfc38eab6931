package models

import "time"

// Media represents a social-media account posts are published to.
type Media struct {
	ID        int       `json:"id" validate:"gte=0"`
	Title     string    `json:"title" validate:"required"`
	Username  string    `json:"username" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Post represents a piece of content that can be published to a media.
type Post struct {
	ID        int       `json:"id" validate:"gte=0"`
	Title     string    `json:"title" validate:"required"`
	Text      string    `json:"text" validate:"required"`
	Image     *string   `json:"image" validate:"omitnil,url"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Publication links a post to a media at a given date.
type Publication struct {
	ID        int       `json:"id" validate:"gte=0"`
	MediaID   int       `json:"mediaId" validate:"required,gt=0"`
	PostID    int       `json:"postId" validate:"required,gt=0"`
	Date      time.Time `json:"date" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Status is the derived state of a publication.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
)
