package controllers

import (
	"net/http"

	"publicator/app/models"
	"publicator/app/services"

	"go.uber.org/zap"
)

const msgPostValidation = "All fields are required or use the correct format"

// PostController handles HTTP requests for posts
type PostController struct {
	postService *services.PostService
	log         *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, log *zap.Logger) *PostController {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostController{postService: postService, log: log}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.FindAll(r.Context())
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}

	post, err := pc.postService.FindOne(r.Context(), id)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		pc.log.Debug("post rejected", zap.String("reason", models.ValidationMessage(err)))
		sendError(w, r, pc.log, validationFailed(msgPostValidation))
		return
	}

	post := req.Post()
	if err := pc.postService.Create(r.Context(), post); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Edit handles updating an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}

	var req models.UpdatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	if err := req.Validate(); err != nil {
		pc.log.Debug("post update rejected", zap.String("reason", models.ValidationMessage(err)))
		sendError(w, r, pc.log, validationFailed(msgPostValidation))
		return
	}

	post, err := pc.postService.Update(r.Context(), id, req.Patch())
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}

	if err := pc.postService.Remove(r.Context(), id); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
