package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:        1,
				Title:     "Launch",
				Text:      "We are live",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "valid post with image",
			post: &Post{
				Title:     "Launch",
				Text:      "We are live",
				Image:     strPtr("https://cdn.example.com/launch.png"),
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing title",
			post: &Post{
				Text:      "We are live",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing text",
			post: &Post{
				Title:     "Launch",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "malformed image",
			post: &Post{
				Title:     "Launch",
				Text:      "We are live",
				Image:     strPtr("not a url"),
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			post: &Post{
				Title: "Launch",
				Text:  "We are live",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	post := &Post{Title: "Launch", Text: "We are live"}

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate(now)
	assert.Equal(t, now, post.CreatedAt)
	assert.Equal(t, now, post.UpdatedAt)

	later := now.Add(time.Hour)
	post.BeforeUpdate(later)
	assert.Equal(t, now, post.CreatedAt)
	assert.Equal(t, later, post.UpdatedAt)
}

func TestPostApply(t *testing.T) {
	post := &Post{Title: "Launch", Text: "We are live"}

	post.Apply(PostPatch{Text: strPtr("We are really live")})
	assert.Equal(t, "Launch", post.Title)
	assert.Equal(t, "We are really live", post.Text)
	assert.Nil(t, post.Image)

	image := "https://cdn.example.com/a.png"
	post.Apply(PostPatch{Image: &image})
	image = "changed"
	if assert.NotNil(t, post.Image) {
		assert.Equal(t, "https://cdn.example.com/a.png", *post.Image)
	}

	post.Apply(PostPatch{ClearImage: true})
	assert.Nil(t, post.Image)
}
