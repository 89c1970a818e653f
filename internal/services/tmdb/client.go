package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrNotFound indicates the title produced no TMDB matches.
var ErrNotFound = errors.New("tmdb: title not found")

// Movie is the metadata bundle the theme resolver consumes.
type Movie struct {
	ID       int64
	Title    string
	Year     string
	Overview string
	Genres   []string
}

// Searcher defines the metadata lookup used by theme resolution.
type Searcher interface {
	LookupMovie(ctx context.Context, title string) (*Movie, error)
}

type searchResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	GenreIDs     []int64 `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type genreListResponse struct {
	Genres []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// Client provides access to the TMDB API for title lookups.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client

	genreMu    sync.Mutex
	genreNames map[int64]string
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// LookupMovie searches TMDB for the supplied title and returns the best match
// with genre IDs resolved to names. Returns ErrNotFound when the search comes
// back empty.
func (c *Client) LookupMovie(ctx context.Context, title string) (*Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/multi")
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("query", title)
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload searchResponse
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, ErrNotFound
	}

	// Search results come back popularity-ordered; take the first entry that
	// has a usable title.
	var best *searchResult
	for i := range payload.Results {
		if movieTitle(payload.Results[i]) != "" {
			best = &payload.Results[i]
			break
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}

	genres, err := c.resolveGenres(ctx, best.GenreIDs)
	if err != nil {
		// Genre names are an enhancement; the overview alone still feeds the
		// summarization call.
		genres = nil
	}

	return &Movie{
		ID:       best.ID,
		Title:    movieTitle(*best),
		Year:     releaseYear(*best),
		Overview: strings.TrimSpace(best.Overview),
		Genres:   genres,
	}, nil
}

func movieTitle(result searchResult) string {
	if title := strings.TrimSpace(result.Title); title != "" {
		return title
	}
	return strings.TrimSpace(result.Name)
}

func releaseYear(result searchResult) string {
	date := strings.TrimSpace(result.ReleaseDate)
	if date == "" {
		date = strings.TrimSpace(result.FirstAirDate)
	}
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

// resolveGenres maps TMDB genre IDs to names, fetching and memoizing the
// genre tables on first use.
func (c *Client) resolveGenres(ctx context.Context, ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	c.genreMu.Lock()
	defer c.genreMu.Unlock()

	if c.genreNames == nil {
		names := make(map[int64]string)
		for _, kind := range []string{"movie", "tv"} {
			endpoint, err := url.Parse(fmt.Sprintf("%s/genre/%s/list", c.baseURL, kind))
			if err != nil {
				return nil, fmt.Errorf("parse tmdb url: %w", err)
			}
			params := url.Values{}
			params.Set("api_key", c.apiKey)
			if c.language != "" {
				params.Set("language", c.language)
			}
			endpoint.RawQuery = params.Encode()

			var payload genreListResponse
			if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
				return nil, err
			}
			for _, genre := range payload.Genres {
				names[genre.ID] = genre.Name
			}
		}
		c.genreNames = names
	}

	genres := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := c.genreNames[id]; ok {
			genres = append(genres, name)
		}
	}
	return genres, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb request returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}
