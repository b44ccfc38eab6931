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

// MediaService handles business logic for media accounts
type MediaService struct {
	mediaRepo    repositories.MediaRepository
	publications PublicationLookup
	log          *zap.Logger
	now          func() time.Time
}

// NewMediaService creates a new MediaService
func NewMediaService(mediaRepo repositories.MediaRepository, log *zap.Logger) *MediaService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaService{
		mediaRepo: mediaRepo,
		log:       log,
		now:       time.Now,
	}
}

// AttachPublications wires the reference check used by Remove
func (s *MediaService) AttachPublications(lookup PublicationLookup) {
	s.publications = lookup
}

// SetClock replaces the time source, for tests
func (s *MediaService) SetClock(now func() time.Time) {
	s.now = now
}

// Create stores a new media, rejecting a duplicate (title, username) pair
func (s *MediaService) Create(ctx context.Context, media *models.Media) error {
	if err := s.ensureUnique(ctx, media.Title, media.Username, 0); err != nil {
		return err
	}

	media.BeforeCreate(s.now())
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return s.translate(err, "create media")
	}

	s.log.Debug("media created", zap.Int("media_id", media.ID))
	return nil
}

// FindAll returns every media
func (s *MediaService) FindAll(ctx context.Context) ([]*models.Media, error) {
	medias, err := s.mediaRepo.List(ctx)
	if err != nil {
		return nil, s.translate(err, "list media")
	}
	return medias, nil
}

// FindOne returns a media by id
func (s *MediaService) FindOne(ctx context.Context, id int) (*models.Media, error) {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "get media")
	}
	return media, nil
}

// Update merges the patch into an existing media. The merged pair must not
// collide with another media; the record may keep its own pair.
func (s *MediaService) Update(ctx context.Context, id int, patch models.MediaPatch) (*models.Media, error) {
	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	merged.Apply(patch)
	if err := s.ensureUnique(ctx, merged.Title, merged.Username, id); err != nil {
		return nil, err
	}

	merged.BeforeUpdate(s.now())
	if err := s.mediaRepo.Update(ctx, &merged); err != nil {
		return nil, s.translate(err, "update media")
	}
	return &merged, nil
}

// Remove deletes a media that no publication references
func (s *MediaService) Remove(ctx context.Context, id int) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}

	if s.publications != nil {
		used, err := s.publications.HasPublicationsForMedia(ctx, id)
		if err != nil {
			return err
		}
		if used {
			s.log.Debug("media removal refused", zap.Int("media_id", id))
			return newError(KindForbidden, MsgMediaInUse)
		}
	}

	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		return s.translate(err, "delete media")
	}
	return nil
}

// ensureUnique rejects a (title, username) pair held by a media other than exceptID
func (s *MediaService) ensureUnique(ctx context.Context, title, username string, exceptID int) error {
	found, err := s.mediaRepo.FindByIdentity(ctx, title, username)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return s.translate(err, "find media by identity")
	case found.ID != exceptID:
		s.log.Debug("duplicate media rejected", zap.String("title", title), zap.String("username", username))
		return newError(KindConflict, MsgDuplicateMedia)
	}
	return nil
}

// translate maps store errors to rejections and wraps anything else
func (s *MediaService) translate(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return newError(KindNotFound, MsgMediaNotFound)
	case errors.Is(err, repositories.ErrDuplicate):
		return newError(KindConflict, MsgDuplicateMedia)
	case errors.Is(err, repositories.ErrReferenced):
		return newError(KindForbidden, MsgMediaInUse)
	case isCancellation(err):
		return err
	}
	s.log.Error("media store failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}
