// Package validation checks product drafts before a generation request is
// dispatched. Validation is pure: same draft in, same errors out.
package validation

import (
	"fmt"
	"strings"

	"github.com/GintasS/social-media-post-generator/internal/models"
)

// Messages surfaced inline next to the offending form field.
const (
	MsgNameRequired        = "Product Name is required"
	MsgDescriptionRequired = "Description is required"
	MsgPriceNegative       = "Price cannot be negative"
)

// Validate runs every field rule independently and returns the full error
// set. An empty result means the draft is ready to submit. Rules never
// short-circuit across fields, so the caller always sees every problem at
// once.
func Validate(draft models.ProductDraft) models.FieldErrors {
	errs := models.FieldErrors{}

	switch {
	case strings.TrimSpace(draft.Name) == "":
		errs[models.FieldName] = MsgNameRequired
	case len(draft.Name) > models.MaxNameLength:
		errs[models.FieldName] = fmt.Sprintf("Product Name must be %d characters or less", models.MaxNameLength)
	}

	switch {
	case strings.TrimSpace(draft.Description) == "":
		errs[models.FieldDescription] = MsgDescriptionRequired
	case len(draft.Description) > models.MaxDescriptionLength:
		errs[models.FieldDescription] = fmt.Sprintf("Description must be %d characters or less", models.MaxDescriptionLength)
	}

	if draft.Price < 0 {
		errs[models.FieldPrice] = MsgPriceNegative
	}

	return errs
}
