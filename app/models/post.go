package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
}

// BeforeUpdate refreshes the modification timestamp
func (p *Post) BeforeUpdate(now time.Time) {
	p.UpdatedAt = now
}

// PostPatch carries the fields of a partial post update
type PostPatch struct {
	Title *string
	Text  *string
	Image *string
	// ClearImage drops the image when Image is nil
	ClearImage bool
}

// Apply merges the patch into the post
func (p *Post) Apply(patch PostPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Text != nil {
		p.Text = *patch.Text
	}
	switch {
	case patch.Image != nil:
		image := *patch.Image
		p.Image = &image
	case patch.ClearImage:
		p.Image = nil
	}
}
