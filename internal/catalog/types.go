package catalog

import "context"

// BookRecord describes one catalog entry. The discovery pipeline treats
// records as read-only.
type BookRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Genres      []string `json:"genres"`
	Tropes      []string `json:"tropes"`
	Mood        []string `json:"mood"`
	Themes      []string `json:"themes"`
	Synopsis    string   `json:"synopsis"`
	PageCount   int      `json:"pageCount"`
	PublishYear int      `json:"publishYear"`
}

// Rating is one entry of a user's rating history.
type Rating struct {
	BookID string  `json:"bookId"`
	Score  float64 `json:"score"`
}

// UserProfile captures reading preferences used as secondary matching signal.
type UserProfile struct {
	UserID         string   `json:"userId"`
	FavoriteGenres []string `json:"favoriteGenres"`
	FavoriteTropes []string `json:"favoriteTropes"`
	DislikedTropes []string `json:"dislikedTropes"`
	PreferredMood  []string `json:"preferredMood"`
	RatingHistory  []Rating `json:"ratingHistory"`
}

// Provider supplies the pipeline's external collaborators: the unread slice
// of the catalog and the requesting user's profile.
type Provider interface {
	UnreadBooks(ctx context.Context, userID string) ([]BookRecord, error)
	Profile(ctx context.Context, userID string) (UserProfile, error)
}
