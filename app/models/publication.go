package models

import (
	"errors"
	"time"
)

// Validate checks if the publication meets all validation requirements
func (p *Publication) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Publication) BeforeCreate(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
}

// BeforeUpdate refreshes the modification timestamp
func (p *Publication) BeforeUpdate(now time.Time) {
	p.UpdatedAt = now
}

// IsScheduledAt reports whether the publication date is strictly after now.
func (p *Publication) IsScheduledAt(now time.Time) bool {
	return p.Date.After(now)
}

// IsPublishedAt is the complement of IsScheduledAt.
func (p *Publication) IsPublishedAt(now time.Time) bool {
	return !p.IsScheduledAt(now)
}

// StatusAt derives the publication status at the given instant. It is never stored.
func (p *Publication) StatusAt(now time.Time) Status {
	if p.IsPublishedAt(now) {
		return StatusPublished
	}
	return StatusScheduled
}

// PublicationPatch carries the fields of a partial publication update
type PublicationPatch struct {
	MediaID *int
	PostID  *int
	Date    *time.Time
}

// Apply merges the patch into the publication
func (p *Publication) Apply(patch PublicationPatch) {
	if patch.MediaID != nil {
		p.MediaID = *patch.MediaID
	}
	if patch.PostID != nil {
		p.PostID = *patch.PostID
	}
	if patch.Date != nil {
		p.Date = *patch.Date
	}
}
