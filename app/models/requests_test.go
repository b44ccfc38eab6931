package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestParseISO8601(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-05-01T12:30:00Z", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), true},
		{"2024-05-01T12:30:00.250Z", time.Date(2024, 5, 1, 12, 30, 0, 250000000, time.UTC), true},
		{"2024-05-01T12:30:00", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), true},
		{"2024-05-01T12:30", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC), true},
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
		{"2024-13-01", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseISO8601(tt.input)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	withOffset, err := ParseISO8601("2024-05-01T14:30:00+02:00")
	require.NoError(t, err)
	assert.True(t, withOffset.Equal(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)))
}

func TestCreateRequestsValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr bool
	}{
		{"media ok", &CreateMediaRequest{Title: "Instagram", Username: "driven"}, false},
		{"media missing username", &CreateMediaRequest{Title: "Instagram"}, true},
		{"post ok", &CreatePostRequest{Title: "Launch", Text: "Live"}, false},
		{"post ok with image", &CreatePostRequest{Title: "Launch", Text: "Live", Image: strPtr("https://x.io/a.png")}, false},
		{"post bad image", &CreatePostRequest{Title: "Launch", Text: "Live", Image: strPtr("a.png")}, true},
		{"post missing text", &CreatePostRequest{Title: "Launch"}, true},
		{"publication ok", &CreatePublicationRequest{MediaID: 1, PostID: 1, Date: "2030-01-01T00:00:00Z"}, false},
		{"publication zero media", &CreatePublicationRequest{PostID: 1, Date: "2030-01-01"}, true},
		{"publication negative post", &CreatePublicationRequest{MediaID: 1, PostID: -1, Date: "2030-01-01"}, true},
		{"publication bad date", &CreatePublicationRequest{MediaID: 1, PostID: 1, Date: "tomorrow"}, true},
		{"publication missing date", &CreatePublicationRequest{MediaID: 1, PostID: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateRequestsValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr bool
	}{
		{"empty media update", &UpdateMediaRequest{}, false},
		{"media blank title", &UpdateMediaRequest{Title: strPtr("")}, true},
		{"empty post update", &UpdatePostRequest{}, false},
		{"post bad image", &UpdatePostRequest{Image: strPtr("nope")}, true},
		{"empty publication update", &UpdatePublicationRequest{}, false},
		{"publication zero media", &UpdatePublicationRequest{MediaID: intPtr(0)}, true},
		{"publication bad date", &UpdatePublicationRequest{Date: strPtr("soon")}, true},
		{"publication good date", &UpdatePublicationRequest{Date: strPtr("2030-01-01")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestConversions(t *testing.T) {
	pub, err := (&CreatePublicationRequest{MediaID: 2, PostID: 3, Date: "2030-01-01"}).Publication()
	require.NoError(t, err)
	assert.Equal(t, 2, pub.MediaID)
	assert.Equal(t, 3, pub.PostID)
	assert.Equal(t, 2030, pub.Date.Year())

	patch, err := (&UpdatePublicationRequest{PostID: intPtr(4), Date: strPtr("2031-02-03")}).Patch()
	require.NoError(t, err)
	assert.Nil(t, patch.MediaID)
	assert.Equal(t, 4, *patch.PostID)
	assert.Equal(t, time.February, patch.Date.Month())

	media := (&CreateMediaRequest{Title: "Instagram", Username: "driven"}).Media()
	assert.Equal(t, "Instagram", media.Title)
	assert.Zero(t, media.ID)
}

func TestValidationMessage(t *testing.T) {
	err := (&CreatePublicationRequest{PostID: 1, Date: "nope"}).Validate()
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "mediaId is required")
	assert.Contains(t, msg, "date must be a valid ISO 8601 date")
}

func TestUpdatePostRequestImageNull(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		clear bool
		image *string
	}{
		{"absent keeps image", `{"title":"Launch"}`, false, nil},
		{"null clears image", `{"image":null}`, true, nil},
		{"value replaces image", `{"image":"https://cdn.example.com/a.png"}`, false, strPtr("https://cdn.example.com/a.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdatePostRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			require.NoError(t, req.Validate())

			patch := req.Patch()
			assert.Equal(t, tt.clear, patch.ClearImage)
			assert.Equal(t, tt.image, patch.Image)
		})
	}
}
