package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GintasS/social-media-post-generator/internal/generation"
	"github.com/GintasS/social-media-post-generator/internal/models"
	"github.com/GintasS/social-media-post-generator/internal/session"
	"github.com/GintasS/social-media-post-generator/internal/workflow"
)

type stubBackend struct {
	platforms    []models.Platform
	platformsErr error
	product      models.ProductDraft
	productErr   error
	outcome      generation.Outcome
}

func (s *stubBackend) GetPlatforms(ctx context.Context) ([]models.Platform, error) {
	return s.platforms, s.platformsErr
}

func (s *stubBackend) GetDefaultProduct(ctx context.Context) (models.ProductDraft, error) {
	return s.product, s.productErr
}

func (s *stubBackend) Generate(ctx context.Context, draft models.ProductDraft, settings models.ModelSettings, options models.GenerationOptions) generation.Outcome {
	return s.outcome
}

func TestCreateSeedsCatalogAndDefaultProduct(t *testing.T) {
	backend := &stubBackend{
		platforms: []models.Platform{{ID: "twitter"}, {ID: "linkedin"}},
		product:   models.ProductDraft{Name: "EcoBottle Pro", Description: "Insulated bottle", Price: 29.99},
	}
	m := session.NewManager(session.Config{Backend: backend})

	s := m.Create(context.Background())

	require.NotEmpty(t, s.ID)
	snap := s.Controller.Snapshot()
	assert.Equal(t, []string{"twitter", "linkedin"}, snap.Options.Platforms)
	assert.Equal(t, "EcoBottle Pro", snap.Draft.Name)
	assert.Equal(t, 1, m.Count())
}

func TestCreateSurvivesBackendFailures(t *testing.T) {
	backend := &stubBackend{
		platformsErr: errors.New("connection refused"),
		productErr:   errors.New("connection refused"),
	}
	m := session.NewManager(session.Config{Backend: backend})

	s := m.Create(context.Background())

	snap := s.Controller.Snapshot()
	assert.Empty(t, snap.AvailablePlatforms)
	assert.Empty(t, snap.Draft.Name)
	assert.Equal(t, workflow.ViewGenerator, snap.View)
}

func TestGetAndDelete(t *testing.T) {
	backend := &stubBackend{}
	m := session.NewManager(session.Config{Backend: backend})
	s := m.Create(context.Background())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	assert.True(t, m.Delete(s.ID))
	assert.False(t, m.Delete(s.ID))
	assert.Equal(t, 0, m.Count())
}

func TestSessionsAreIsolated(t *testing.T) {
	backend := &stubBackend{outcome: generation.Success([]models.GeneratedPost{{Platform: "twitter", Content: "hi"}})}
	m := session.NewManager(session.Config{Backend: backend})

	a := m.Create(context.Background())
	b := m.Create(context.Background())
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.Controller.Apply(workflow.SetName{Value: "EcoBottle Pro"}))
	assert.Empty(t, b.Controller.Snapshot().Draft.Name)
}
