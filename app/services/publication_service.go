package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"publicator/app/models"
	"publicator/app/repositories"

	"go.uber.org/zap"
)

// MediaFinder resolves a media id, failing with a not-found rejection
type MediaFinder interface {
	FindOne(ctx context.Context, id int) (*models.Media, error)
}

// PostFinder resolves a post id, failing with a not-found rejection
type PostFinder interface {
	FindOne(ctx context.Context, id int) (*models.Post, error)
}

// PublicationService handles scheduling posts to media
type PublicationService struct {
	pubRepo repositories.PublicationRepository
	medias  MediaFinder
	posts   PostFinder
	log     *zap.Logger
	now     func() time.Time
}

// NewPublicationService creates a new PublicationService
func NewPublicationService(pubRepo repositories.PublicationRepository, medias MediaFinder, posts PostFinder, log *zap.Logger) *PublicationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PublicationService{
		pubRepo: pubRepo,
		medias:  medias,
		posts:   posts,
		log:     log,
		now:     time.Now,
	}
}

func (s *PublicationService) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the service clock reading
func (s *PublicationService) Now() time.Time {
	return s.now()
}

// Create stores a publication after checking both references exist
func (s *PublicationService) Create(ctx context.Context, pub *models.Publication) error {
	if err := s.ensureReferences(ctx, &pub.MediaID, &pub.PostID); err != nil {
		return err
	}

	pub.BeforeCreate(s.now())
	if err := s.pubRepo.Create(ctx, pub); err != nil {
		return s.translate(err, "create publication")
	}

	s.log.Debug("publication created",
		zap.Int("publication_id", pub.ID),
		zap.Int("media_id", pub.MediaID),
		zap.Int("post_id", pub.PostID),
		zap.Time("date", pub.Date),
	)
	return nil
}

// FindAll returns the publications matching the filter at the current instant
func (s *PublicationService) FindAll(ctx context.Context, filter PublicationFilter) ([]*models.Publication, error) {
	pubs, err := s.pubRepo.List(ctx)
	if err != nil {
		return nil, s.translate(err, "list publications")
	}

	now := s.now()
	matched := make([]*models.Publication, 0, len(pubs))
	for _, p := range pubs {
		if filter.Matches(p, now) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// FindOne returns a publication by id
func (s *PublicationService) FindOne(ctx context.Context, id int) (*models.Publication, error) {
	pub, err := s.pubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "get publication")
	}
	return pub, nil
}

// Update merges the patch into a publication that is still scheduled.
// Ids present in the patch must resolve; a publication whose date has
// passed is frozen.
func (s *PublicationService) Update(ctx context.Context, id int, patch models.PublicationPatch) (*models.Publication, error) {
	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureReferences(ctx, patch.MediaID, patch.PostID); err != nil {
		return nil, err
	}

	now := s.now()
	if !existing.IsScheduledAt(now) {
		s.log.Debug("update of published publication refused", zap.Int("publication_id", id))
		return nil, newError(KindForbidden, MsgAlreadyPublished)
	}

	merged := *existing
	merged.Apply(patch)
	merged.BeforeUpdate(now)
	if err := s.pubRepo.Update(ctx, &merged); err != nil {
		return nil, s.translate(err, "update publication")
	}
	return &merged, nil
}

// Remove deletes a publication
func (s *PublicationService) Remove(ctx context.Context, id int) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	if err := s.pubRepo.Delete(ctx, id); err != nil {
		return s.translate(err, "delete publication")
	}
	return nil
}

// HasPublicationsForMedia reports whether any publication references the media
func (s *PublicationService) HasPublicationsForMedia(ctx context.Context, mediaID int) (bool, error) {
	pubs, err := s.pubRepo.ListByMedia(ctx, mediaID)
	if err != nil {
		return false, s.translate(err, "list publications by media")
	}
	return len(pubs) > 0, nil
}

// HasPublicationsForPost reports whether any publication references the post
func (s *PublicationService) HasPublicationsForPost(ctx context.Context, postID int) (bool, error) {
	pubs, err := s.pubRepo.ListByPost(ctx, postID)
	if err != nil {
		return false, s.translate(err, "list publications by post")
	}
	return len(pubs) > 0, nil
}

// ensureReferences resolves the non-nil ids, media first
func (s *PublicationService) ensureReferences(ctx context.Context, mediaID, postID *int) error {
	if mediaID != nil {
		if _, err := s.medias.FindOne(ctx, *mediaID); err != nil {
			return err
		}
	}
	if postID != nil {
		if _, err := s.posts.FindOne(ctx, *postID); err != nil {
			return err
		}
	}
	return nil
}

func (s *PublicationService) translate(err error, op string) error {
	var missing *repositories.MissingReferenceError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return newError(KindNotFound, MsgPublicationNotFound)
	case errors.As(err, &missing) && missing.Entity == "post":
		return newError(KindNotFound, MsgPostNotFound)
	case errors.Is(err, repositories.ErrMissingReference):
		return newError(KindNotFound, MsgMediaNotFound)
	case isCancellation(err):
		return err
	}
	s.log.Error("publication store failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

var _ PublicationLookup = (*PublicationService)(nil)
