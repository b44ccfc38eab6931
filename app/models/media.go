package models

import (
	"errors"
	"time"
)

// Validate checks if the media meets all validation requirements
func (m *Media) Validate() error {
	if err := validate.Struct(m); err != nil {
		return err
	}

	if m.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets the timestamps of a media about to be stored
func (m *Media) BeforeCreate(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = m.CreatedAt
}

// BeforeUpdate refreshes the modification timestamp
func (m *Media) BeforeUpdate(now time.Time) {
	m.UpdatedAt = now
}

// SameIdentity reports whether two medias share the (title, username) pair.
// The comparison is exact and case-sensitive.
func (m *Media) SameIdentity(title, username string) bool {
	return m.Title == title && m.Username == username
}

// MediaPatch carries the fields of a partial media update. Nil fields are left untouched.
type MediaPatch struct {
	Title    *string
	Username *string
}

// Apply merges the patch into the media
func (m *Media) Apply(p MediaPatch) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Username != nil {
		m.Username = *p.Username
	}
}
