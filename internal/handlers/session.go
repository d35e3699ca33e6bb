// Package handlers exposes the workflow over HTTP. Handlers translate
// between JSON and controller actions; no workflow logic lives here.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GintasS/social-media-post-generator/internal/logger"
	"github.com/GintasS/social-media-post-generator/internal/models"
	"github.com/GintasS/social-media-post-generator/internal/session"
	"github.com/GintasS/social-media-post-generator/internal/telemetry"
	"github.com/GintasS/social-media-post-generator/internal/workflow"
)

type SessionHandler struct {
	sessions *session.Manager
	tel      *telemetry.Provider
	logger   logger.Logger
}

func NewSessionHandler(sessions *session.Manager, tel *telemetry.Provider, log logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		tel:      tel,
		logger:   log,
	}
}

// Create starts a new workflow session seeded from the backend.
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.sessions.Create(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID,
		"state":      s.Controller.Snapshot(),
	})
}

// Get returns the session's state snapshot.
func (h *SessionHandler) Get(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": s.Controller.Snapshot()})
}

// Delete removes a session.
func (h *SessionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !h.sessions.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	h.logger.Info("Session deleted", logger.String("session_id", id))
	c.Status(http.StatusNoContent)
}

// draftPatch carries the optional draft fields; only present fields are
// applied, so a partial edit never clobbers the rest of the draft.
type draftPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

// UpdateDraft applies the provided draft fields one edit at a time.
func (h *SessionHandler) UpdateDraft(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var patch draftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if patch.Name != nil {
		s.Controller.Apply(workflow.SetName{Value: *patch.Name})
	}
	if patch.Description != nil {
		s.Controller.Apply(workflow.SetDescription{Value: *patch.Description})
	}
	if patch.Price != nil {
		s.Controller.Apply(workflow.SetPrice{Value: *patch.Price})
	}
	if patch.Category != nil {
		s.Controller.Apply(workflow.SetCategory{Value: *patch.Category})
	}

	c.JSON(http.StatusOK, gin.H{"state": s.Controller.Snapshot()})
}

type optionsRequest struct {
	NumberOfPosts int      `json:"number_of_posts"`
	Platforms     []string `json:"platforms"`
}

// UpdateOptions replaces the generation options.
func (h *SessionHandler) UpdateOptions(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req optionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := s.Controller.Apply(workflow.SetOptions{Count: req.NumberOfPosts, Platforms: req.Platforms}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": s.Controller.Snapshot()})
}

type settingsRequest struct {
	ModelName   string  `json:"model_name"`
	Temperature float64 `json:"temperature"`
	WebSearch   bool    `json:"web_search"`
}

// UpdateSettings replaces the model settings.
func (h *SessionHandler) UpdateSettings(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	settings := models.ModelSettings{
		Model:            req.ModelName,
		Temperature:      req.Temperature,
		WebSearchEnabled: req.WebSearch,
	}
	if err := s.Controller.Apply(workflow.SaveSettings{Settings: settings}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": s.Controller.Snapshot()})
}

// Generate validates and dispatches a generation call. The call itself runs
// on its own goroutine; the client observes settlement by polling the
// snapshot. The request context is not propagated because it is cancelled
// as soon as this response is written.
func (h *SessionHandler) Generate(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	err := s.Controller.SubmitAsync(context.Background())
	switch {
	case errors.Is(err, workflow.ErrValidationFailed):
		if h.tel != nil {
			h.tel.RecordValidationFailure(c.Request.Context())
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        "Product draft failed validation",
			"field_errors": s.Controller.Snapshot().FieldErrors,
		})
	case errors.Is(err, workflow.ErrGenerationInFlight):
		if h.tel != nil {
			h.tel.RecordSubmitRejected(c.Request.Context())
		}
		c.JSON(http.StatusConflict, gin.H{"error": "A generation request is already in flight"})
	case err != nil:
		h.logger.Error("Generate dispatch failed",
			logger.String("session_id", s.ID),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch generation"})
	default:
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
	}
}

type viewRequest struct {
	View string `json:"view"`
}

// SwitchView changes the active view.
func (h *SessionHandler) SwitchView(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := s.Controller.Apply(workflow.SwitchView{View: workflow.View(req.View)}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": s.Controller.Snapshot()})
}

// History returns the batches, newest first.
func (h *SessionHandler) History(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	batches := s.Controller.Snapshot().History
	c.JSON(http.StatusOK, gin.H{
		"batches": batches,
		"count":   len(batches),
	})
}

// ClearHistory empties the ledger.
func (h *SessionHandler) ClearHistory(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	s.Controller.Apply(workflow.ClearHistory{})
	c.Status(http.StatusNoContent)
}

// CarouselNext advances the carousel one post, wrapping at the end.
func (h *SessionHandler) CarouselNext(c *gin.Context) {
	h.applyCarousel(c, workflow.CarouselNext{})
}

// CarouselPrevious steps the carousel back one post, wrapping at the start.
func (h *SessionHandler) CarouselPrevious(c *gin.Context) {
	h.applyCarousel(c, workflow.CarouselPrevious{})
}

type carouselRequest struct {
	Index int `json:"index"`
}

// CarouselGoTo jumps the carousel to a specific post.
func (h *SessionHandler) CarouselGoTo(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req carouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := s.Controller.Apply(workflow.CarouselGoTo{Index: req.Index}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"index": s.Controller.Snapshot().CarouselIndex})
}

type copiedRequest struct {
	Key string `json:"key"`
}

// MarkCopied records which post was copied; the flag expires on its own.
func (h *SessionHandler) MarkCopied(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req copiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	s.Controller.Apply(workflow.MarkCopied{Key: req.Key})
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) applyCarousel(c *gin.Context, action workflow.Action) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	s.Controller.Apply(action)
	c.JSON(http.StatusOK, gin.H{"index": s.Controller.Snapshot().CarouselIndex})
}

func (h *SessionHandler) lookup(c *gin.Context) (*session.Session, bool) {
	id := c.Param("id")
	s, ok := h.sessions.Get(id)
	if !ok {
		h.logger.Debug("Session not found", logger.String("session_id", id))
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return s, true
}
