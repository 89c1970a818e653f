package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"bookscout/internal/services"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	store, err := NewStore(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUpsertAndListBooks(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	books, err := store.Books(ctx)
	if err != nil {
		t.Fatalf("Books failed: %v", err)
	}
	if len(books) != len(SampleBooks()) {
		t.Fatalf("got %d books, want %d", len(books), len(SampleBooks()))
	}
	// Title ordering keeps catalog indices stable between requests.
	for i := 1; i < len(books); i++ {
		if books[i-1].Title > books[i].Title {
			t.Fatalf("books not ordered by title: %q before %q", books[i-1].Title, books[i].Title)
		}
	}
	var found *BookRecord
	for i := range books {
		if books[i].ID == "bk-001" {
			found = &books[i]
		}
	}
	if found == nil {
		t.Fatal("seeded book bk-001 missing")
	}
	if len(found.Genres) != 2 || found.Genres[0] != "fantasy" {
		t.Errorf("genres round-trip failed: %v", found.Genres)
	}
}

func TestUnreadBooksExcludesRead(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	if err := store.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	if err := store.MarkRead(ctx, "u1", "bk-002"); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	unread, err := store.UnreadBooks(ctx, "u1")
	if err != nil {
		t.Fatalf("UnreadBooks failed: %v", err)
	}
	if len(unread) != len(SampleBooks())-1 {
		t.Fatalf("got %d unread, want %d", len(unread), len(SampleBooks())-1)
	}
	for _, book := range unread {
		if book.ID == "bk-002" {
			t.Error("read book still listed as unread")
		}
	}

	// Other users keep the full catalog.
	all, err := store.UnreadBooks(ctx, "u2")
	if err != nil {
		t.Fatalf("UnreadBooks failed: %v", err)
	}
	if len(all) != len(SampleBooks()) {
		t.Errorf("got %d unread for u2, want %d", len(all), len(SampleBooks()))
	}
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	want := UserProfile{
		UserID:         "reader",
		FavoriteGenres: []string{"horror"},
		PreferredMood:  []string{"eerie"},
		RatingHistory:  []Rating{{BookID: "bk-006", Score: 5}},
	}
	if err := store.UpsertProfile(ctx, want); err != nil {
		t.Fatalf("UpsertProfile failed: %v", err)
	}

	got, err := store.Profile(ctx, "reader")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if got.FavoriteGenres[0] != "horror" || got.PreferredMood[0] != "eerie" {
		t.Errorf("profile round-trip failed: %+v", got)
	}
	if len(got.RatingHistory) != 1 || got.RatingHistory[0].Score != 5 {
		t.Errorf("rating history round-trip failed: %+v", got.RatingHistory)
	}
}

func TestProfileMissingIsNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Profile(context.Background(), "ghost")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertBookValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	if err := store.UpsertBook(ctx, BookRecord{Title: "No ID"}); err == nil {
		t.Error("expected error for missing id")
	}
	if err := store.UpsertBook(ctx, BookRecord{ID: "x"}); err == nil {
		t.Error("expected error for missing title")
	}
}
