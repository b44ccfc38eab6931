package controllers

import (
	"net/http"
	"time"

	"publicator/app/models"
	"publicator/app/services"

	"go.uber.org/zap"
)

// PublicationController handles HTTP requests for publications
type PublicationController struct {
	publicationService *services.PublicationService
	log                *zap.Logger
}

// publicationView adds the derived status to the stored record
type publicationView struct {
	*models.Publication
	Status models.Status `json:"status"`
}

func newPublicationView(p *models.Publication, now time.Time) publicationView {
	return publicationView{Publication: p, Status: p.StatusAt(now)}
}

// NewPublicationController creates a new PublicationController
func NewPublicationController(publicationService *services.PublicationService, log *zap.Logger) *PublicationController {
	if log == nil {
		log = zap.NewNop()
	}
	return &PublicationController{publicationService: publicationService, log: log}
}

// Index lists publications, optionally filtered by ?published= and ?after=
func (pc *PublicationController) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := services.ParsePublicationFilter(query.Get("published"), query.Get("after"))
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}

	pubs, err := pc.publicationService.FindAll(r.Context(), filter)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}

	now := pc.publicationService.Now()
	views := make([]publicationView, 0, len(pubs))
	for _, p := range pubs {
		views = append(views, newPublicationView(p, now))
	}
	sendJSON(w, http.StatusOK, views)
}

// Show returns a single publication
func (pc *PublicationController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}

	pub, err := pc.publicationService.FindOne(r.Context(), id)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, newPublicationView(pub, pc.publicationService.Now()))
}

// Create schedules a post on a media
func (pc *PublicationController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePublicationRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(w, r, pc.log, validationFailed(models.ValidationMessage(err)))
		return
	}

	pub, err := req.Publication()
	if err != nil {
		sendError(w, r, pc.log, validationFailed(err.Error()))
		return
	}
	if err := pc.publicationService.Create(r.Context(), pub); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusCreated, newPublicationView(pub, pc.publicationService.Now()))
}

// Edit applies a partial update to a scheduled publication
func (pc *PublicationController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}

	var req models.UpdatePublicationRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(w, r, pc.log, validationFailed(models.ValidationMessage(err)))
		return
	}

	patch, err := req.Patch()
	if err != nil {
		sendError(w, r, pc.log, validationFailed(err.Error()))
		return
	}
	pub, err := pc.publicationService.Update(r.Context(), id, patch)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, newPublicationView(pub, pc.publicationService.Now()))
}

// Delete removes a publication
func (pc *PublicationController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}

	if err := pc.publicationService.Remove(r.Context(), id); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
