package persona

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/meshai-labs/meshai/internal/models"
)

// SQLiteRepository stores the catalog in an embedded SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (or creates) the database at dbPath.
// If dbPath is empty, defaults to "./data/meshai.db".
func NewSQLiteRepository(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	if dbPath == "" {
		dbPath = "./data/meshai.db"
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	r := &SQLiteRepository{db: db}
	if err := r.initSchema(ctx); err != nil {
		return nil, err
	}
	if err := r.seedDefaults(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// initSchema creates the personas table if it does not exist.
func (r *SQLiteRepository) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS personas (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		avatar TEXT DEFAULT '👤',
		personality_traits TEXT,
		communication_style TEXT DEFAULT '',
		background_context TEXT DEFAULT '',
		expertise_areas TEXT,
		sentiment_bias REAL DEFAULT 0,
		engagement_level REAL DEFAULT 0.5,
		controversy_tolerance REAL DEFAULT 0.5,
		is_default INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_personas_is_default ON personas(is_default);
	`
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// seedDefaults inserts the built-in catalog, skipping rows that exist.
func (r *SQLiteRepository) seedDefaults(ctx context.Context) error {
	for _, p := range Defaults() {
		traits, expertise, err := encodeJSONFields(&p)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO personas
				(id, name, description, avatar, personality_traits, communication_style,
				 background_context, expertise_areas, sentiment_bias, engagement_level,
				 controversy_tolerance, is_default)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		`, p.ID, p.Name, p.Description, p.Avatar, traits, p.CommunicationStyle,
			p.BackgroundContext, expertise, p.SentimentBias, p.EngagementLevel,
			p.ControversyTolerance)
		if err != nil {
			return err
		}
	}
	return nil
}

const personaColumns = `id, name, description, avatar, personality_traits,
	communication_style, background_context, expertise_areas,
	sentiment_bias, engagement_level, controversy_tolerance, is_default`

func scanPersona(row interface{ Scan(...any) error }) (*models.Persona, error) {
	var p models.Persona
	var traits, expertise sql.NullString
	var isDefault int
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Avatar, &traits,
		&p.CommunicationStyle, &p.BackgroundContext, &expertise,
		&p.SentimentBias, &p.EngagementLevel, &p.ControversyTolerance, &isDefault)
	if err != nil {
		return nil, err
	}
	p.IsDefault = isDefault != 0
	if err := decodeJSONFields(&p, traits.String, expertise.String); err != nil {
		return nil, err
	}
	return &p, nil
}

func encodeJSONFields(p *models.Persona) (traits, expertise string, err error) {
	if p.PersonalityTraits != nil {
		b, err := json.Marshal(p.PersonalityTraits)
		if err != nil {
			return "", "", err
		}
		traits = string(b)
	}
	if p.ExpertiseAreas != nil {
		b, err := json.Marshal(p.ExpertiseAreas)
		if err != nil {
			return "", "", err
		}
		expertise = string(b)
	}
	return traits, expertise, nil
}

func decodeJSONFields(p *models.Persona, traits, expertise string) error {
	if traits != "" {
		if err := json.Unmarshal([]byte(traits), &p.PersonalityTraits); err != nil {
			return err
		}
	}
	if expertise != "" {
		if err := json.Unmarshal([]byte(expertise), &p.ExpertiseAreas); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns personas for the given IDs in request order, skipping
// unknown IDs.
func (r *SQLiteRepository) Resolve(ctx context.Context, ids []string) ([]models.Persona, error) {
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
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Persona, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+personaColumns+` FROM personas
		ORDER BY is_default DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Persona
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Get returns one persona or ErrNotFound.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Persona, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+personaColumns+` FROM personas WHERE id = ?
	`, models.CanonicalID(id))

	p, err := scanPersona(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Create inserts a persona, deriving a canonical ID from the name when
// missing.
func (r *SQLiteRepository) Create(ctx context.Context, p *models.Persona) error {
	if p.ID == "" {
		p.ID = slugify(p.Name)
	}
	p.ID = models.CanonicalID(p.ID)

	if _, err := r.Get(ctx, p.ID); err == nil {
		p.ID = p.ID + "-" + uuid.NewString()[:8]
	}

	traits, expertise, err := encodeJSONFields(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO personas
			(id, name, description, avatar, personality_traits, communication_style,
			 background_context, expertise_areas, sentiment_bias, engagement_level,
			 controversy_tolerance, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
	`, p.ID, p.Name, p.Description, p.Avatar, traits, p.CommunicationStyle,
		p.BackgroundContext, expertise, p.SentimentBias, p.EngagementLevel,
		p.ControversyTolerance)
	return err
}

// Update replaces an existing persona. The default flag is not updatable.
func (r *SQLiteRepository) Update(ctx context.Context, p *models.Persona) error {
	p.ID = models.CanonicalID(p.ID)

	traits, expertise, err := encodeJSONFields(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE personas SET
			name = ?, description = ?, avatar = ?, personality_traits = ?,
			communication_style = ?, background_context = ?, expertise_areas = ?,
			sentiment_bias = ?, engagement_level = ?, controversy_tolerance = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Avatar, traits, p.CommunicationStyle,
		p.BackgroundContext, expertise, p.SentimentBias, p.EngagementLevel,
		p.ControversyTolerance, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a persona.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM personas WHERE id = ?`, models.CanonicalID(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the catalog size.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM personas`).Scan(&n)
	return n, err
}

// Ping checks the database connection.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database.
func (r *SQLiteRepository) Close() {
	r.db.Close()
}
