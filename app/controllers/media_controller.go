package controllers

import (
	"net/http"

	"publicator/app/models"
	"publicator/app/services"

	"go.uber.org/zap"
)

// MediaController handles HTTP requests for media accounts
type MediaController struct {
	mediaService *services.MediaService
	log          *zap.Logger
}

// NewMediaController creates a new MediaController
func NewMediaController(mediaService *services.MediaService, log *zap.Logger) *MediaController {
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaController{mediaService: mediaService, log: log}
}

// Index lists every media
func (mc *MediaController) Index(w http.ResponseWriter, r *http.Request) {
	medias, err := mc.mediaService.FindAll(r.Context())
	if err != nil {
		sendError(w, r, mc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, medias)
}

// Show returns a single media
func (mc *MediaController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, r, mc.log, err)
		return
	}

	media, err := mc.mediaService.FindOne(r.Context(), id)
	if err != nil {
		sendError(w, r, mc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, media)
}

// Create registers a new media
func (mc *MediaController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, mc.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(w, r, mc.log, validationFailed(models.ValidationMessage(err)))
		return
	}

	media := req.Media()
	if err := mc.mediaService.Create(r.Context(), media); err != nil {
		sendError(w, r, mc.log, err)
		return
	}
	sendJSON(w, http.StatusCreated, media)
}

// Edit applies a partial update to a media
func (mc *MediaController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, r, mc.log, err)
		return
	}

	var req models.UpdateMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, mc.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(w, r, mc.log, validationFailed(models.ValidationMessage(err)))
		return
	}

	media, err := mc.mediaService.Update(r.Context(), id, req.Patch())
	if err != nil {
		sendError(w, r, mc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, media)
}

// Delete removes a media
func (mc *MediaController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, r, mc.log, err)
		return
	}

	if err := mc.mediaService.Remove(r.Context(), id); err != nil {
		sendError(w, r, mc.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
