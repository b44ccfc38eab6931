package services

import (
	"strings"
	"time"

	"publicator/app/models"
)

// PublicationFilter selects publications by state and a lower date bound.
// A nil field means the criterion is absent.
type PublicationFilter struct {
	Published *bool
	After     *time.Time
}

// ParsePublicationFilter turns raw query values into a filter. Empty strings
// are treated as absent.
func ParsePublicationFilter(published, after string) (PublicationFilter, error) {
	var f PublicationFilter

	if published != "" {
		switch strings.ToLower(published) {
		case "true", "1":
			v := true
			f.Published = &v
		case "false", "0":
			v := false
			f.Published = &v
		default:
			return PublicationFilter{}, newError(KindBadRequest, MsgInvalidPublished)
		}
	}

	if after != "" {
		t, err := models.ParseISO8601(after)
		if err != nil {
			return PublicationFilter{}, newError(KindBadRequest, MsgInvalidAfter)
		}
		f.After = &t
	}

	return f, nil
}

// Matches evaluates the filter against a publication at instant now.
// Every comparison is strict.
func (f PublicationFilter) Matches(p *models.Publication, now time.Time) bool {
	afterBound := f.After == nil || p.Date.After(*f.After)

	if f.Published == nil {
		return afterBound
	}
	if *f.Published {
		return p.Date.Before(now) && afterBound
	}
	return p.Date.After(now) && afterBound
}
