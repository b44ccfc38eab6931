package repositories

import (
	"context"

	"publicator/app/models"
)

// MediaRepository defines the interface for media data access
type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id int) (*models.Media, error)
	// FindByIdentity returns the media with exactly this (title, username) pair.
	FindByIdentity(ctx context.Context, title, username string) (*models.Media, error)
	List(ctx context.Context) ([]*models.Media, error)
	Update(ctx context.Context, media *models.Media) error
	Delete(ctx context.Context, id int) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int) error
}

// PublicationRepository defines the interface for publication data access
type PublicationRepository interface {
	Create(ctx context.Context, pub *models.Publication) error
	GetByID(ctx context.Context, id int) (*models.Publication, error)
	List(ctx context.Context) ([]*models.Publication, error)
	ListByMedia(ctx context.Context, mediaID int) ([]*models.Publication, error)
	ListByPost(ctx context.Context, postID int) ([]*models.Publication, error)
	Update(ctx context.Context, pub *models.Publication) error
	Delete(ctx context.Context, id int) error
}
