// Package session owns the registry of live workflow sessions. Each session
// wraps one workflow controller keyed by a generated identifier.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GintasS/social-media-post-generator/internal/catalog"
	"github.com/GintasS/social-media-post-generator/internal/generation"
	"github.com/GintasS/social-media-post-generator/internal/logger"
	"github.com/GintasS/social-media-post-generator/internal/models"
	"github.com/GintasS/social-media-post-generator/internal/telemetry"
	"github.com/GintasS/social-media-post-generator/internal/workflow"
)

// Backend is the surface the manager needs from the generation service:
// the platform catalog, the default product seed, and generation itself.
type Backend interface {
	catalog.Source
	generation.Generator
	GetDefaultProduct(ctx context.Context) (models.ProductDraft, error)
}

// Config carries the manager's collaborators.
type Config struct {
	Backend    Backend
	Logger     logger.Logger
	Telemetry  *telemetry.Provider
	HistoryCap int
	CopiedTTL  time.Duration
}

// Session is one live workflow with its identifier.
type Session struct {
	ID         string
	Controller *workflow.Controller
	CreatedAt  time.Time
}

// Manager is a concurrency-safe session registry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	backend    Backend
	log        logger.Logger
	tel        *telemetry.Provider
	historyCap int
	copiedTTL  time.Duration
}

// NewManager creates an empty registry.
func NewManager(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	return &Manager{
		sessions:   make(map[string]*Session),
		backend:    cfg.Backend,
		log:        cfg.Logger,
		tel:        cfg.Telemetry,
		historyCap: cfg.HistoryCap,
		copiedTTL:  cfg.CopiedTTL,
	}
}

// Create builds a new session: a fresh controller seeded with the platform
// catalog and the backend's default product. Both seeds are best effort;
// a backend that is down yields a usable session with an empty catalog and
// an empty draft.
func (m *Manager) Create(ctx context.Context) *Session {
	ctl := workflow.New(workflow.Config{
		Generator:  m.instrumentedGenerator(),
		Logger:     m.log,
		HistoryCap: m.historyCap,
		CopiedTTL:  m.copiedTTL,
	})

	cat := catalog.Load(ctx, m.backend, m.log)
	if cat.Empty() && m.tel != nil {
		m.tel.RecordCatalogLoadFailure(ctx)
	}
	ctl.Apply(workflow.ApplyCatalog{Platforms: cat.Platforms()})

	if draft, err := m.backend.GetDefaultProduct(ctx); err != nil {
		m.log.Warn("Default product unavailable, starting with empty draft",
			logger.Error(err),
		)
	} else {
		ctl.Apply(workflow.SeedDraft{Draft: draft})
	}

	s := &Session{
		ID:         uuid.NewString(),
		Controller: ctl,
		CreatedAt:  time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if m.tel != nil {
		m.tel.RecordSessionCreated(ctx)
	}
	m.log.Info("Session created", logger.String("session_id", s.ID))
	return s
}

// Get returns the session for id, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes the session for id and reports whether it existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok && m.tel != nil {
		m.tel.RecordSessionClosed(context.Background())
	}
	return ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// instrumentedGenerator wraps the backend generator with a span and
// settlement metrics when telemetry is configured.
func (m *Manager) instrumentedGenerator() generation.Generator {
	if m.tel == nil {
		return m.backend
	}
	return generation.GeneratorFunc(func(ctx context.Context, draft models.ProductDraft, settings models.ModelSettings, options models.GenerationOptions) generation.Outcome {
		ctx, span := m.tel.StartGeneration(ctx, draft.Name, options.Count)
		defer span.End()

		start := time.Now()
		outcome := m.backend.Generate(ctx, draft, settings, options)
		m.tel.RecordGeneration(ctx, string(outcome.Result), len(outcome.Posts), time.Since(start))
		return outcome
	})
}
