package workflow

import "github.com/GintasS/social-media-post-generator/internal/models"

// Action is a message consumed by the controller's Apply function. All
// state transitions except generation dispatch and settlement go through
// actions, so the full transition surface is enumerable.
type Action interface {
	isAction()
}

// SetName edits the draft's product name and clears its stored field error.
type SetName struct{ Value string }

// SetDescription edits the draft's description and clears its stored field error.
type SetDescription struct{ Value string }

// SetPrice edits the draft's price and clears its stored field error.
type SetPrice struct{ Value float64 }

// SetCategory edits the draft's optional category. No validation applies.
type SetCategory struct{ Value string }

// SetOptions replaces the generation options. The platform selection is
// re-intersected with the current catalog so it always stays a subset of
// what the catalog reports.
type SetOptions struct {
	Count     int
	Platforms []string
}

// SaveSettings replaces the model settings.
type SaveSettings struct{ Settings models.ModelSettings }

// SwitchView activates a different tab. Pure view change: no validation,
// no side effects on draft, options, or history.
type SwitchView struct{ View View }

// ClearHistory empties the ledger. The view is left as-is, so a history
// tab simply shows the empty state.
type ClearHistory struct{}

// CarouselNext advances the post carousel cursor.
type CarouselNext struct{}

// CarouselPrevious moves the post carousel cursor back.
type CarouselPrevious struct{}

// CarouselGoTo jumps the carousel to a specific post.
type CarouselGoTo struct{ Index int }

// MarkCopied records that the post identified by Key was copied to the
// clipboard. The indicator expires on its own after the configured TTL.
type MarkCopied struct{ Key string }

// ApplyCatalog installs a platform catalog. The first application selects
// all delivered platforms; later applications intersect the previous
// selection with the delivered set instead of discarding it.
type ApplyCatalog struct{ Platforms []models.Platform }

// SeedDraft loads a starting draft (the backend's default product) into the
// form. Seeding happens once per session; the draft is never reset
// automatically afterwards.
type SeedDraft struct{ Draft models.ProductDraft }

func (SetName) isAction()          {}
func (SetDescription) isAction()   {}
func (SetPrice) isAction()         {}
func (SetCategory) isAction()      {}
func (SetOptions) isAction()       {}
func (SaveSettings) isAction()     {}
func (SwitchView) isAction()       {}
func (ClearHistory) isAction()     {}
func (CarouselNext) isAction()     {}
func (CarouselPrevious) isAction() {}
func (CarouselGoTo) isAction()     {}
func (MarkCopied) isAction()       {}
func (ApplyCatalog) isAction()     {}
func (SeedDraft) isAction()        {}
