// Package workflow implements the generation workflow state machine: form
// validation, the asynchronous request lifecycle, history accumulation,
// and carousel navigation, composed behind a single controller. The
// package is framework-agnostic; rendering and transport live elsewhere.
package workflow

import (
	"github.com/GintasS/social-media-post-generator/internal/models"
)

// View identifies the active tab of the generator interface.
type View string

const (
	ViewGenerator View = "generator"
	ViewSettings  View = "settings"
	ViewPosts     View = "posts"
	ViewHistory   View = "history"
)

// KnownView reports whether v is a recognized view.
func KnownView(v View) bool {
	switch v {
	case ViewGenerator, ViewSettings, ViewPosts, ViewHistory:
		return true
	}
	return false
}

// Phase is the per-request lifecycle state, orthogonal to the active view.
type Phase string

const (
	// PhaseIdle means no generation call is outstanding.
	PhaseIdle Phase = "idle"
	// PhaseLoading means a generation call has been dispatched and has not
	// settled yet. A second dispatch is rejected while in this phase.
	PhaseLoading Phase = "loading"
)

// Snapshot is a read-only copy of the controller state, safe to render or
// serialize while the controller keeps mutating.
type Snapshot struct {
	View               View                     `json:"view"`
	Phase              Phase                    `json:"phase"`
	Draft              models.ProductDraft      `json:"draft"`
	FieldErrors        models.FieldErrors       `json:"field_errors,omitempty"`
	GenerateError      string                   `json:"generate_error,omitempty"`
	Settings           models.ModelSettings     `json:"settings"`
	Options            models.GenerationOptions `json:"options"`
	AvailablePlatforms []models.Platform        `json:"available_platforms"`
	Posts              []models.GeneratedPost   `json:"posts"`
	CarouselIndex      int                      `json:"carousel_index"`
	History            []models.PostBatch       `json:"history"`
	CopiedKey          string                   `json:"copied_key,omitempty"`
}
