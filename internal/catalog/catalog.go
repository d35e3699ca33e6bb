// Package catalog holds the set of selectable platforms, sourced once from
// the generation backend at startup.
package catalog

import (
	"context"

	"github.com/GintasS/social-media-post-generator/internal/logger"
	"github.com/GintasS/social-media-post-generator/internal/models"
)

// Source fetches the platform list from the catalog collaborator.
type Source interface {
	GetPlatforms(ctx context.Context) ([]models.Platform, error)
}

// Catalog is an immutable snapshot of the delivered platforms, in delivery
// order.
type Catalog struct {
	platforms []models.Platform
}

// Load fetches the catalog once. Loading is fail-open: on error the catalog
// stays empty and generation proceeds with an empty platform selection; the
// failure is logged, not surfaced, and no retry is scheduled.
func Load(ctx context.Context, src Source, log logger.Logger) *Catalog {
	platforms, err := src.GetPlatforms(ctx)
	if err != nil {
		log.Warn("Platform catalog unavailable, continuing with empty selection",
			logger.Error(err),
		)
		return &Catalog{}
	}

	log.Info("Platform catalog loaded",
		logger.Int("platforms", len(platforms)),
	)
	return &Catalog{platforms: platforms}
}

// FromPlatforms builds a catalog directly, bypassing the collaborator.
// Used in tests.
func FromPlatforms(platforms []models.Platform) *Catalog {
	out := make([]models.Platform, len(platforms))
	copy(out, platforms)
	return &Catalog{platforms: out}
}

// Platforms returns a copy of the delivered platforms.
func (c *Catalog) Platforms() []models.Platform {
	out := make([]models.Platform, len(c.platforms))
	copy(out, c.platforms)
	return out
}

// IDs returns the platform identifiers in delivery order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.platforms))
	for i, p := range c.platforms {
		ids[i] = p.ID
	}
	return ids
}

// Empty reports whether the catalog delivered no platforms.
func (c *Catalog) Empty() bool {
	return len(c.platforms) == 0
}
