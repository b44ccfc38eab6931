package services

import "context"

// PublicationLookup answers whether a media or post is referenced by any
// publication. PublicationService implements it; Media and Post services
// receive it after construction through AttachPublications, which keeps the
// dependency graph acyclic.
type PublicationLookup interface {
	HasPublicationsForMedia(ctx context.Context, mediaID int) (bool, error)
	HasPublicationsForPost(ctx context.Context, postID int) (bool, error)
}
