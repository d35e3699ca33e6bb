// Package models defines the domain types shared across the post generation workflow.
package models

// Field length limits for a product draft. The generation backend enforces
// the same bounds, so drafts that pass local validation are never rejected
// remotely for length.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 400
)

// Draft field names used as keys in FieldErrors.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
)

// ProductDraft is the in-progress, user-edited product description prior
// to submission. It is owned exclusively by the workflow controller.
type ProductDraft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
}

// FieldErrors maps a draft field name to a human-readable message.
// Absence of a key means the field is valid.
type FieldErrors map[string]string

// Clone returns an independent copy so snapshots cannot alias controller state.
func (e FieldErrors) Clone() FieldErrors {
	if e == nil {
		return nil
	}
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
