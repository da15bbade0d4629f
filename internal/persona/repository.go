// Package persona stores and resolves the persona catalog. Identifiers are
// normalized to one canonical form (lowercase, hyphenated) at this
// boundary; callers never deal with underscore variants.
package persona

import (
	"context"
	"errors"
	"sort"

	"github.com/meshai-labs/meshai/internal/models"
)

// ErrNotFound reports a lookup for an unknown persona ID.
var ErrNotFound = errors.New("persona not found")

// Repository is the persona catalog capability the pipeline depends on.
// FileRepository, SQLiteRepository, and PostgresRepository implement it.
type Repository interface {
	// Resolve returns the personas for the given IDs in request order.
	// Unresolvable IDs are silently skipped; fewer results than requested
	// IDs is a legitimate outcome, not an error.
	Resolve(ctx context.Context, ids []string) ([]models.Persona, error)

	List(ctx context.Context) ([]models.Persona, error)
	Get(ctx context.Context, id string) (*models.Persona, error)
	Create(ctx context.Context, p *models.Persona) error
	Update(ctx context.Context, p *models.Persona) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	Ping(ctx context.Context) error
	Close()
}

// sortCatalog orders a catalog listing: defaults first, then by ID.
func sortCatalog(personas []models.Persona) {
	sort.Slice(personas, func(i, j int) bool {
		if personas[i].IsDefault != personas[j].IsDefault {
			return personas[i].IsDefault
		}
		return personas[i].ID < personas[j].ID
	})
}
