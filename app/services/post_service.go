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

// PostService handles business logic for posts
type PostService struct {
	postRepo     repositories.PostRepository
	publications PublicationLookup
	log          *zap.Logger
	now          func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, log *zap.Logger) *PostService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostService{
		postRepo: postRepo,
		log:      log,
		now:      time.Now,
	}
}

// AttachPublications wires the reference check used by Remove
func (s *PostService) AttachPublications(lookup PublicationLookup) {
	s.publications = lookup
}

func (s *PostService) SetClock(now func() time.Time) {
	s.now = now
}

// Create stores a new post
func (s *PostService) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate(s.now())
	if err := s.postRepo.Create(ctx, post); err != nil {
		return s.translate(err, "create post")
	}
	s.log.Debug("post created", zap.Int("post_id", post.ID))
	return nil
}

// FindAll returns every post
func (s *PostService) FindAll(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, s.translate(err, "list posts")
	}
	return posts, nil
}

// FindOne returns a post by id
func (s *PostService) FindOne(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "get post")
	}
	return post, nil
}

// Update merges the patch into an existing post
func (s *PostService) Update(ctx context.Context, id int, patch models.PostPatch) (*models.Post, error) {
	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	merged.Apply(patch)
	merged.BeforeUpdate(s.now())
	if err := s.postRepo.Update(ctx, &merged); err != nil {
		return nil, s.translate(err, "update post")
	}
	return &merged, nil
}

// Remove deletes a post that no publication references
func (s *PostService) Remove(ctx context.Context, id int) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}

	if s.publications != nil {
		used, err := s.publications.HasPublicationsForPost(ctx, id)
		if err != nil {
			return err
		}
		if used {
			s.log.Debug("post removal refused", zap.Int("post_id", id))
			return newError(KindForbidden, MsgPostInUse)
		}
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return s.translate(err, "delete post")
	}
	return nil
}

func (s *PostService) translate(err error, op string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return newError(KindNotFound, MsgPostNotFound)
	case errors.Is(err, repositories.ErrReferenced):
		return newError(KindForbidden, MsgPostInUse)
	case isCancellation(err):
		return err
	}
	s.log.Error("post store failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}
