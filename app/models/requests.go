package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CreateMediaRequest is the body accepted when creating a media.
type CreateMediaRequest struct {
	Title    string `json:"title" validate:"required"`
	Username string `json:"username" validate:"required"`
}

func (r *CreateMediaRequest) Validate() error {
	return validate.Struct(r)
}

// Media builds the entity described by the request
func (r *CreateMediaRequest) Media() *Media {
	return &Media{Title: r.Title, Username: r.Username}
}

// UpdateMediaRequest is the body accepted when updating a media. Absent fields are kept.
type UpdateMediaRequest struct {
	Title    *string `json:"title" validate:"omitnil,min=1"`
	Username *string `json:"username" validate:"omitnil,min=1"`
}

func (r *UpdateMediaRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdateMediaRequest) Patch() MediaPatch {
	return MediaPatch{Title: r.Title, Username: r.Username}
}

// CreatePostRequest is the body accepted when creating a post.
type CreatePostRequest struct {
	Title string  `json:"title" validate:"required"`
	Text  string  `json:"text" validate:"required"`
	Image *string `json:"image" validate:"omitnil,url"`
}

func (r *CreatePostRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CreatePostRequest) Post() *Post {
	return &Post{Title: r.Title, Text: r.Text, Image: r.Image}
}

// UpdatePostRequest is the body accepted when updating a post.
// An explicit "image": null removes the image; leaving the field out keeps it.
type UpdatePostRequest struct {
	Title *string `json:"title" validate:"omitnil,min=1"`
	Text  *string `json:"text" validate:"omitnil,min=1"`
	Image *string `json:"image" validate:"omitnil,url"`

	ClearImage bool `json:"-"`
}

func (r *UpdatePostRequest) UnmarshalJSON(data []byte) error {
	type plain UpdatePostRequest
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, value := range fields {
		if strings.EqualFold(key, "image") && bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			r.ClearImage = true
		}
	}
	return nil
}

func (r *UpdatePostRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdatePostRequest) Patch() PostPatch {
	return PostPatch{Title: r.Title, Text: r.Text, Image: r.Image, ClearImage: r.ClearImage}
}

// CreatePublicationRequest is the body accepted when creating a publication.
type CreatePublicationRequest struct {
	MediaID int    `json:"mediaId" validate:"required,gt=0"`
	PostID  int    `json:"postId" validate:"required,gt=0"`
	Date    string `json:"date" validate:"required,iso8601"`
}

func (r *CreatePublicationRequest) Validate() error {
	return validate.Struct(r)
}

// Publication builds the entity described by the request. Call Validate first.
func (r *CreatePublicationRequest) Publication() (*Publication, error) {
	date, err := ParseISO8601(r.Date)
	if err != nil {
		return nil, err
	}
	return &Publication{MediaID: r.MediaID, PostID: r.PostID, Date: date}, nil
}

// UpdatePublicationRequest is the body accepted when updating a publication.
type UpdatePublicationRequest struct {
	MediaID *int    `json:"mediaId" validate:"omitnil,gt=0"`
	PostID  *int    `json:"postId" validate:"omitnil,gt=0"`
	Date    *string `json:"date" validate:"omitnil,iso8601"`
}

func (r *UpdatePublicationRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdatePublicationRequest) Patch() (PublicationPatch, error) {
	patch := PublicationPatch{MediaID: r.MediaID, PostID: r.PostID}
	if r.Date != nil {
		date, err := ParseISO8601(*r.Date)
		if err != nil {
			return PublicationPatch{}, err
		}
		patch.Date = &date
	}
	return patch, nil
}
