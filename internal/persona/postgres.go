package persona

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meshai-labs/meshai/internal/models"
)

// PostgresRepository stores the catalog in PostgreSQL, for deployments
// where several instances share one catalog.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects a pool, ensures the schema, and seeds the
// default catalog.
func NewPostgresRepository(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	r := &PostgresRepository{pool: pool}
	if err := r.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := r.seedDefaults(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

func (r *PostgresRepository) initSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS personas (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			avatar TEXT DEFAULT '👤',
			personality_traits JSONB,
			communication_style TEXT DEFAULT '',
			background_context TEXT DEFAULT '',
			expertise_areas JSONB,
			sentiment_bias DOUBLE PRECISION DEFAULT 0,
			engagement_level DOUBLE PRECISION DEFAULT 0.5,
			controversy_tolerance DOUBLE PRECISION DEFAULT 0.5,
			is_default BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_personas_is_default ON personas(is_default);
	`)
	return err
}

func (r *PostgresRepository) seedDefaults(ctx context.Context) error {
	for _, p := range Defaults() {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO personas
				(id, name, description, avatar, personality_traits, communication_style,
				 background_context, expertise_areas, sentiment_bias, engagement_level,
				 controversy_tolerance, is_default)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.Name, p.Description, p.Avatar, p.PersonalityTraits,
			p.CommunicationStyle, p.BackgroundContext, p.ExpertiseAreas,
			p.SentimentBias, p.EngagementLevel, p.ControversyTolerance)
		if err != nil {
			return err
		}
	}
	return nil
}

const pgPersonaColumns = `id, name, description, avatar, personality_traits,
	communication_style, background_context, expertise_areas,
	sentiment_bias, engagement_level, controversy_tolerance, is_default`

func scanPGPersona(row pgx.Row) (*models.Persona, error) {
	var p models.Persona
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Avatar,
		&p.PersonalityTraits, &p.CommunicationStyle, &p.BackgroundContext,
		&p.ExpertiseAreas, &p.SentimentBias, &p.EngagementLevel,
		&p.ControversyTolerance, &p.IsDefault)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Resolve returns personas for the given IDs in request order, skipping
// unknown IDs.
func (r *PostgresRepository) Resolve(ctx context.Context, ids []string) ([]models.Persona, error) {
	var out []models.Persona
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// List returns the full catalog, defaults first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Persona, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+pgPersonaColumns+` FROM personas
		ORDER BY is_default DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Persona
	for rows.Next() {
		p, err := scanPGPersona(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Get returns one persona or ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Persona, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+pgPersonaColumns+` FROM personas WHERE id = $1
	`, models.CanonicalID(id))

	p, err := scanPGPersona(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Create inserts a persona, deriving a canonical ID from the name when
// missing.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Persona) error {
	if p.ID == "" {
		p.ID = slugify(p.Name)
	}
	p.ID = models.CanonicalID(p.ID)

	if _, err := r.Get(ctx, p.ID); err == nil {
		p.ID = p.ID + "-" + uuid.NewString()[:8]
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO personas
			(id, name, description, avatar, personality_traits, communication_style,
			 background_context, expertise_areas, sentiment_bias, engagement_level,
			 controversy_tolerance, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE)
	`, p.ID, p.Name, p.Description, p.Avatar, p.PersonalityTraits,
		p.CommunicationStyle, p.BackgroundContext, p.ExpertiseAreas,
		p.SentimentBias, p.EngagementLevel, p.ControversyTolerance)
	return err
}

// Update replaces an existing persona. The default flag is not updatable.
func (r *PostgresRepository) Update(ctx context.Context, p *models.Persona) error {
	p.ID = models.CanonicalID(p.ID)

	ct, err := r.pool.Exec(ctx, `
		UPDATE personas SET
			name = $2, description = $3, avatar = $4, personality_traits = $5,
			communication_style = $6, background_context = $7, expertise_areas = $8,
			sentiment_bias = $9, engagement_level = $10, controversy_tolerance = $11
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.Avatar, p.PersonalityTraits,
		p.CommunicationStyle, p.BackgroundContext, p.ExpertiseAreas,
		p.SentimentBias, p.EngagementLevel, p.ControversyTolerance)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a persona.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM personas WHERE id = $1`, models.CanonicalID(id))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the catalog size.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM personas`).Scan(&n)
	return n, err
}

// Ping checks the database connection.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the connection pool.
func (r *PostgresRepository) Close() {
	r.pool.Close()
}
