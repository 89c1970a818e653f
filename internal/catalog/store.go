package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"bookscout/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

var _ Provider = (*Store)(nil)

// NewStore opens (and if necessary initializes) the catalog database at dbPath.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("catalog db path required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// UpsertBook inserts or replaces a catalog entry.
func (s *Store) UpsertBook(ctx context.Context, book BookRecord) error {
	if strings.TrimSpace(book.ID) == "" {
		return errors.New("book id required")
	}
	if strings.TrimSpace(book.Title) == "" {
		return errors.New("book title required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, title, author, genres, tropes, mood, themes, synopsis, page_count, publish_year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			genres = excluded.genres,
			tropes = excluded.tropes,
			mood = excluded.mood,
			themes = excluded.themes,
			synopsis = excluded.synopsis,
			page_count = excluded.page_count,
			publish_year = excluded.publish_year`,
		book.ID, book.Title, book.Author,
		encodeList(book.Genres), encodeList(book.Tropes), encodeList(book.Mood), encodeList(book.Themes),
		book.Synopsis, book.PageCount, book.PublishYear)
	if err != nil {
		return fmt.Errorf("upsert book %q: %w", book.ID, err)
	}
	return nil
}

// Books returns the whole catalog ordered by title.
func (s *Store) Books(ctx context.Context) ([]BookRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectBooks+" ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()
	return scanBooks(rows)
}

// UnreadBooks returns the books the user has not marked read, ordered by
// title for stable catalog indices.
func (s *Store) UnreadBooks(ctx context.Context, userID string) ([]BookRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectBooks+`
		WHERE id NOT IN (SELECT book_id FROM read_status WHERE user_id = ?)
		ORDER BY title`, userID)
	if err != nil {
		return nil, fmt.Errorf("query unread books: %w", err)
	}
	defer rows.Close()
	return scanBooks(rows)
}

// MarkRead records that the user finished a book.
func (s *Store) MarkRead(ctx context.Context, userID, bookID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(bookID) == "" {
		return errors.New("user id and book id required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO read_status (user_id, book_id, read_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id, book_id) DO UPDATE SET read_at = excluded.read_at`,
		userID, bookID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// UpsertProfile inserts or replaces a user profile.
func (s *Store) UpsertProfile(ctx context.Context, profile UserProfile) error {
	if strings.TrimSpace(profile.UserID) == "" {
		return errors.New("user id required")
	}
	history, err := json.Marshal(profile.RatingHistory)
	if err != nil {
		return fmt.Errorf("encode rating history: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, favorite_genres, favorite_tropes, disliked_tropes, preferred_mood, rating_history)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			favorite_genres = excluded.favorite_genres,
			favorite_tropes = excluded.favorite_tropes,
			disliked_tropes = excluded.disliked_tropes,
			preferred_mood = excluded.preferred_mood,
			rating_history = excluded.rating_history`,
		profile.UserID,
		encodeList(profile.FavoriteGenres), encodeList(profile.FavoriteTropes),
		encodeList(profile.DislikedTropes), encodeList(profile.PreferredMood),
		string(history))
	if err != nil {
		return fmt.Errorf("upsert profile %q: %w", profile.UserID, err)
	}
	return nil
}

// Profile returns the stored profile for userID. A missing profile is tagged
// services.ErrNotFound; callers treat it as "no secondary signal".
func (s *Store) Profile(ctx context.Context, userID string) (UserProfile, error) {
	profile := UserProfile{UserID: userID}
	var favGenres, favTropes, dislikedTropes, mood, history string
	err := s.db.QueryRowContext(ctx, `
		SELECT favorite_genres, favorite_tropes, disliked_tropes, preferred_mood, rating_history
		FROM profiles WHERE user_id = ?`, userID).
		Scan(&favGenres, &favTropes, &dislikedTropes, &mood, &history)
	if errors.Is(err, sql.ErrNoRows) {
		return profile, services.Wrap(services.ErrNotFound, "catalog", "profile", "no profile for user", nil)
	}
	if err != nil {
		return profile, fmt.Errorf("query profile: %w", err)
	}
	profile.FavoriteGenres = decodeList(favGenres)
	profile.FavoriteTropes = decodeList(favTropes)
	profile.DislikedTropes = decodeList(dislikedTropes)
	profile.PreferredMood = decodeList(mood)
	if err := json.Unmarshal([]byte(history), &profile.RatingHistory); err != nil {
		return profile, fmt.Errorf("decode rating history: %w", err)
	}
	return profile, nil
}

const selectBooks = `
	SELECT id, title, author, genres, tropes, mood, themes, synopsis, page_count, publish_year
	FROM books`

func scanBooks(rows *sql.Rows) ([]BookRecord, error) {
	var books []BookRecord
	for rows.Next() {
		var book BookRecord
		var genres, tropes, mood, themes string
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &genres, &tropes, &mood, &themes,
			&book.Synopsis, &book.PageCount, &book.PublishYear); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		book.Genres = decodeList(genres)
		book.Tropes = decodeList(tropes)
		book.Mood = decodeList(mood)
		book.Themes = decodeList(themes)
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func encodeList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
