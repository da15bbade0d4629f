package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/meshai-labs/meshai/internal/models"
)

// FileRepository keeps the catalog as one JSON document per persona in a
// directory, loaded into memory at startup. Creations write through to
// disk. This is the default backend for single-instance deployments.
type FileRepository struct {
	dir string

	mu       sync.RWMutex
	personas map[string]models.Persona
}

// NewFileRepository loads all persona files under dir, creating the
// directory and seeding the default catalog when it is empty.
func NewFileRepository(dir string) (*FileRepository, error) {
	if dir == "" {
		dir = "./data/personas"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	r := &FileRepository{
		dir:      dir,
		personas: make(map[string]models.Persona),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read persona file %s: %w", path, err)
		}
		var p models.Persona
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse persona file %s: %w", path, err)
		}
		p.ID = models.CanonicalID(p.ID)
		r.personas[p.ID] = p
	}

	if len(r.personas) == 0 {
		for _, p := range Defaults() {
			if err := r.write(&p); err != nil {
				return nil, err
			}
			r.personas[p.ID] = p
		}
	}

	return r, nil
}

func (r *FileRepository) write(p *models.Persona) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(r.dir, p.ID+".json"), data, 0644)
}

// Resolve returns personas for the given IDs in request order, silently
// skipping any that do not exist.
func (r *FileRepository) Resolve(ctx context.Context, ids []string) ([]models.Persona, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Persona
	for _, id := range ids {
		if p, ok := r.personas[models.CanonicalID(id)]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// List returns the full catalog, defaults first, each group sorted by ID.
func (r *FileRepository) List(ctx context.Context) ([]models.Persona, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Persona, 0, len(r.personas))
	for _, p := range r.personas {
		out = append(out, p)
	}
	sortCatalog(out)
	return out, nil
}

// Get returns one persona or ErrNotFound.
func (r *FileRepository) Get(ctx context.Context, id string) (*models.Persona, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.personas[models.CanonicalID(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Create adds a persona and persists it. A missing ID is derived from the
// name; collisions get a random suffix.
func (r *FileRepository) Create(ctx context.Context, p *models.Persona) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = slugify(p.Name)
	}
	p.ID = models.CanonicalID(p.ID)
	if _, taken := r.personas[p.ID]; taken {
		p.ID = p.ID + "-" + uuid.NewString()[:8]
	}

	if err := r.write(p); err != nil {
		return err
	}
	r.personas[p.ID] = *p
	return nil
}

// Update replaces an existing persona and persists the change. The
// default flag is not updatable.
func (r *FileRepository) Update(ctx context.Context, p *models.Persona) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = models.CanonicalID(p.ID)
	existing, ok := r.personas[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.IsDefault = existing.IsDefault

	if err := r.write(p); err != nil {
		return err
	}
	r.personas[p.ID] = *p
	return nil
}

// Delete removes a persona and its backing file.
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id = models.CanonicalID(id)
	if _, ok := r.personas[id]; !ok {
		return ErrNotFound
	}

	if err := os.Remove(filepath.Join(r.dir, id+".json")); err != nil {
		return err
	}
	delete(r.personas, id)
	return nil
}

// Count returns the catalog size.
func (r *FileRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.personas), nil
}

// Ping verifies the backing directory is still accessible.
func (r *FileRepository) Ping(ctx context.Context) error {
	_, err := os.Stat(r.dir)
	return err
}

// Close is a no-op for the file backend.
func (r *FileRepository) Close() {}

// slugify derives a canonical persona ID from a display name.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = uuid.NewString()[:8]
	}
	return slug
}
