package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/lineup/internal/models"
	"github.com/desertthunder/lineup/internal/shared"
)

// ArtistRepository handles registry lookups and seeding for reconciliation.
//
// A nil receiver or nil database handle is valid: reconciliation then fails
// open and treats every extracted name as new. Degraded operation without a
// configured registry is a deliberate policy, not an error.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new ArtistRepository with the given database connection.
//
// db may be nil when no registry is configured.
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Enabled reports whether a registry database is available.
func (r *ArtistRepository) Enabled() bool {
	return r != nil && r.db != nil
}

// Create inserts a new artist into the registry with generated ID and sequence.
//
// An empty slug is derived from the name.
func (r *ArtistRepository) Create(artist *models.Artist) error {
	if !r.Enabled() {
		return fmt.Errorf("%w: no registry database configured", shared.ErrInvalidConfig)
	}
	if strings.TrimSpace(artist.Name) == "" {
		return fmt.Errorf("%w: artist name is required", shared.ErrInvalidInput)
	}
	if artist.Slug == "" {
		artist.Slug = Slugify(artist.Name)
	}

	sequence, err := NextSequence(r.db, "artists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO artists (id, sequence, name, slug, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		shared.GenerateID(),
		sequence,
		artist.Name,
		artist.Slug,
		artist.ImageURL,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	return nil
}

// FindByNames runs a single batched case-insensitive lookup and returns
// matches keyed by lower-cased name.
func (r *ArtistRepository) FindByNames(names []string) (map[string]models.Artist, error) {
	matches := make(map[string]models.Artist, len(names))
	if len(names) == 0 {
		return matches, nil
	}

	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		placeholders[i] = "LOWER(?)"
		args[i] = name
	}

	query := fmt.Sprintf(`
		SELECT name, slug, image_url FROM artists
		WHERE deleted_at IS NULL AND LOWER(name) IN (%s)
	`, strings.Join(placeholders, ","))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(&artist.Name, &artist.Slug, &artist.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		matches[strings.ToLower(artist.Name)] = artist
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read artists: %w", err)
	}

	return matches, nil
}

// Reconcile partitions extracted names into registry matches and unknowns,
// preserving input order in both partitions.
//
// Without a configured database every name lands in New.
func (r *ArtistRepository) Reconcile(names []string) (*models.Reconciliation, error) {
	result := &models.Reconciliation{
		Existing: []models.Artist{},
		New:      []string{},
	}

	if !r.Enabled() {
		result.New = append(result.New, names...)
		return result, nil
	}

	matches, err := r.FindByNames(names)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		if artist, ok := matches[strings.ToLower(name)]; ok {
			result.Existing = append(result.Existing, artist)
		} else {
			result.New = append(result.New, name)
		}
	}

	return result, nil
}

// List returns all registry artists in insertion order.
func (r *ArtistRepository) List() ([]models.Artist, error) {
	if !r.Enabled() {
		return []models.Artist{}, nil
	}

	rows, err := r.db.Query(`
		SELECT name, slug, image_url FROM artists
		WHERE deleted_at IS NULL
		ORDER BY sequence
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(&artist.Name, &artist.Slug, &artist.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read artists: %w", err)
	}

	return artists, nil
}

// Slugify derives a URL-safe slug from an artist name: lower-cased, with
// runs of non-alphanumerics collapsed to single dashes.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := false

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
