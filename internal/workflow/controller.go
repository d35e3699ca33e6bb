package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GintasS/social-media-post-generator/internal/carousel"
	"github.com/GintasS/social-media-post-generator/internal/generation"
	"github.com/GintasS/social-media-post-generator/internal/history"
	"github.com/GintasS/social-media-post-generator/internal/logger"
	"github.com/GintasS/social-media-post-generator/internal/models"
	"github.com/GintasS/social-media-post-generator/internal/validation"
)

// User-visible messages for the three generation failure modes. Each mode
// gets a distinct message so the user can tell "nothing came back", "the
// generation itself failed", and "couldn't reach the service" apart.
const (
	MsgEmptyResult      = "No posts were generated. Please try again or adjust your product details."
	MsgRemoteError      = "An error occurred while generating posts. Please check your settings and try again."
	MsgTransportFailure = "Failed to generate posts. Please check your connection and try again."
)

// DefaultCopiedTTL is how long the "copied to clipboard" indicator stays
// visible after a copy.
const DefaultCopiedTTL = 2 * time.Second

var (
	// ErrGenerationInFlight is returned when a submit arrives while a
	// generation call is still outstanding.
	ErrGenerationInFlight = errors.New("a generation request is already in flight")
	// ErrValidationFailed is returned when the draft fails validation; the
	// field errors are stored on the controller state.
	ErrValidationFailed = errors.New("product draft failed validation")
)

// Config carries the controller's collaborators. Zero values get defaults,
// so tests can inject only what they need.
type Config struct {
	Generator generation.Generator
	Logger    logger.Logger
	// Clock supplies timestamps for batches and the copied indicator.
	Clock func() time.Time
	// NewID mints batch identifiers.
	NewID func() string
	// HistoryCap bounds the ledger; 0 means unbounded.
	HistoryCap int
	// CopiedTTL overrides DefaultCopiedTTL.
	CopiedTTL time.Duration
}

// Controller owns all mutable workflow state for one session and is its
// single writer. Every transition happens under the controller mutex; the
// mutex is released for the duration of the generation call itself, so the
// rest of the interface stays responsive while a call is outstanding.
type Controller struct {
	mu sync.Mutex

	draft       models.ProductDraft
	options     models.GenerationOptions
	settings    models.ModelSettings
	view        View
	phase       Phase
	posts       []models.GeneratedPost
	fieldErrors models.FieldErrors
	generateErr string

	available      []models.Platform
	catalogApplied bool

	car    carousel.Carousel
	ledger *history.Ledger

	copiedKey   string
	copiedUntil time.Time
	copiedTTL   time.Duration

	gen   generation.Generator
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

// New creates a controller in the generator view with baseline settings
// and an empty ledger.
func New(cfg Config) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return uuid.NewString() }
	}
	if cfg.CopiedTTL == 0 {
		cfg.CopiedTTL = DefaultCopiedTTL
	}

	return &Controller{
		options:   models.DefaultGenerationOptions(),
		settings:  models.DefaultModelSettings(),
		view:      ViewGenerator,
		phase:     PhaseIdle,
		ledger:    history.New(cfg.HistoryCap),
		copiedTTL: cfg.CopiedTTL,
		gen:       cfg.Generator,
		log:       cfg.Logger,
		now:       cfg.Clock,
		newID:     cfg.NewID,
	}
}

// Apply executes a single state transition. Unknown or malformed actions
// return an error and leave the state untouched.
func (c *Controller) Apply(action Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch a := action.(type) {
	case SetName:
		c.draft.Name = a.Value
		delete(c.fieldErrors, models.FieldName)
	case SetDescription:
		c.draft.Description = a.Value
		delete(c.fieldErrors, models.FieldDescription)
	case SetPrice:
		c.draft.Price = a.Value
		delete(c.fieldErrors, models.FieldPrice)
	case SetCategory:
		c.draft.Category = a.Value
	case SetOptions:
		if a.Count < models.MinPostCount || a.Count > models.MaxPostCount {
			return fmt.Errorf("post count %d outside [%d,%d]", a.Count, models.MinPostCount, models.MaxPostCount)
		}
		c.options.Count = a.Count
		c.options.Platforms = c.intersectWithCatalog(a.Platforms)
	case SaveSettings:
		if !models.KnownModel(a.Settings.Model) {
			return fmt.Errorf("unknown model %q", a.Settings.Model)
		}
		if a.Settings.Temperature < 0 || a.Settings.Temperature > 1 {
			return fmt.Errorf("temperature %v outside [0,1]", a.Settings.Temperature)
		}
		c.settings = a.Settings
	case SwitchView:
		if !KnownView(a.View) {
			return fmt.Errorf("unknown view %q", a.View)
		}
		c.view = a.View
	case ClearHistory:
		c.ledger.Clear()
	case CarouselNext:
		c.car.Next()
	case CarouselPrevious:
		c.car.Previous()
	case CarouselGoTo:
		if err := c.car.GoTo(a.Index); err != nil {
			return err
		}
	case MarkCopied:
		c.copiedKey = a.Key
		c.copiedUntil = c.now().Add(c.copiedTTL)
	case ApplyCatalog:
		c.applyCatalog(a.Platforms)
	case SeedDraft:
		c.draft = a.Draft
	default:
		return fmt.Errorf("unknown action %T", action)
	}
	return nil
}

// applyCatalog installs the delivered platforms and reconciles the
// selection: select everything on the first delivery, intersect the
// existing selection afterwards.
func (c *Controller) applyCatalog(platforms []models.Platform) {
	c.available = make([]models.Platform, len(platforms))
	copy(c.available, platforms)

	if !c.catalogApplied {
		c.catalogApplied = true
		ids := make([]string, len(platforms))
		for i, p := range platforms {
			ids[i] = p.ID
		}
		c.options.Platforms = ids
		return
	}
	c.options.Platforms = c.intersectWithCatalog(c.options.Platforms)
}

// intersectWithCatalog filters ids to those the catalog reports, preserving
// the requested order.
func (c *Controller) intersectWithCatalog(ids []string) []string {
	known := make(map[string]bool, len(c.available))
	for _, p := range c.available {
		known[p.ID] = true
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if known[id] {
			out = append(out, id)
		}
	}
	return out
}

// Submit validates the draft and, if it passes, dispatches one generation
// call and settles the state once the call completes. It returns
// ErrGenerationInFlight without side effects while another call is
// outstanding, and ErrValidationFailed after replacing the stored field
// errors. The controller mutex is not held during the backend call, so
// every other action remains enactable while loading. Once dispatched the
// call runs to completion; there is no abort path.
func (c *Controller) Submit(ctx context.Context) (generation.Result, error) {
	draft, settings, options, err := c.begin()
	if err != nil {
		return "", err
	}
	return c.run(ctx, draft, settings, options), nil
}

// SubmitAsync is Submit with the generation call moved onto its own
// goroutine. The in-flight and validation checks still happen synchronously,
// so callers get ErrGenerationInFlight and ErrValidationFailed immediately;
// settlement is observed through later snapshots.
func (c *Controller) SubmitAsync(ctx context.Context) error {
	draft, settings, options, err := c.begin()
	if err != nil {
		return err
	}
	go c.run(ctx, draft, settings, options)
	return nil
}

// begin performs the pre-dispatch checks and transitions to loading,
// returning a snapshot of the inputs the generation call will use.
func (c *Controller) begin() (models.ProductDraft, models.ModelSettings, models.GenerationOptions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseLoading {
		return models.ProductDraft{}, models.ModelSettings{}, models.GenerationOptions{}, ErrGenerationInFlight
	}

	if errs := validation.Validate(c.draft); len(errs) > 0 {
		c.fieldErrors = errs
		return models.ProductDraft{}, models.ModelSettings{}, models.GenerationOptions{}, ErrValidationFailed
	}

	c.fieldErrors = nil
	c.generateErr = ""
	c.phase = PhaseLoading

	options := models.GenerationOptions{
		Count:     c.options.Count,
		Platforms: append([]string(nil), c.options.Platforms...),
	}
	return c.draft, c.settings, options, nil
}

// run executes the generation call without holding the mutex, then settles.
func (c *Controller) run(ctx context.Context, draft models.ProductDraft, settings models.ModelSettings, options models.GenerationOptions) generation.Result {
	outcome := c.gen.Generate(ctx, draft, settings, options)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.settle(draft.Name, outcome)
	return outcome.Result
}

// settle applies a lifecycle settlement. Every failure path returns to the
// generator view semantics: phase idle, draft untouched, ledger untouched,
// an actionable message stored. Nothing is retried automatically.
func (c *Controller) settle(productName string, outcome generation.Outcome) {
	c.phase = PhaseIdle

	switch outcome.Result {
	case generation.ResultSuccess:
		c.posts = models.ClonePosts(outcome.Posts)
		batch := models.PostBatch{
			ID:          c.newID(),
			ProductName: productName,
			Posts:       models.ClonePosts(outcome.Posts),
			GeneratedAt: c.now(),
		}
		c.ledger.Append(batch)
		c.view = ViewPosts
		c.car.Reset(len(c.posts))
		c.log.Info("Generation settled",
			logger.String("batch_id", batch.ID),
			logger.String("product_name", productName),
			logger.Int("posts", len(c.posts)),
		)
	case generation.ResultEmpty:
		c.generateErr = MsgEmptyResult
		c.log.Warn("Generation returned no posts",
			logger.String("product_name", productName),
		)
	case generation.ResultRemoteError:
		c.generateErr = MsgRemoteError
		c.log.Warn("Backend flagged generation as failed",
			logger.String("product_name", productName),
		)
	case generation.ResultTransportFailure:
		c.generateErr = MsgTransportFailure
		c.log.Error("Generation request failed",
			logger.String("product_name", productName),
			logger.Error(outcome.Err),
		)
	}
}

// Snapshot returns a defensive copy of the full controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	copiedKey := ""
	if c.copiedKey != "" && c.now().Before(c.copiedUntil) {
		copiedKey = c.copiedKey
	}

	return Snapshot{
		View:               c.view,
		Phase:              c.phase,
		Draft:              c.draft,
		FieldErrors:        c.fieldErrors.Clone(),
		GenerateError:      c.generateErr,
		Settings:           c.settings,
		Options: models.GenerationOptions{
			Count:     c.options.Count,
			Platforms: append([]string(nil), c.options.Platforms...),
		},
		AvailablePlatforms: append([]models.Platform(nil), c.available...),
		Posts:              models.ClonePosts(c.posts),
		CarouselIndex:      c.car.Index(),
		History:            c.ledger.Batches(),
		CopiedKey:          copiedKey,
	}
}
