package tmdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kutuphanem/proj/internal/clients/catalog"
	"kutuphanem/proj/internal/config"
	"kutuphanem/proj/internal/domain/models"
)

const (
	posterSize   = "w500"
	backdropSize = "w1280"
	castLimit    = 10
)

var ErrNotConfigured = errors.New("TMDB API key is not configured")

type Client struct {
	api          *catalog.Client
	apiKey       string
	language     string
	imageBaseURL string
}

func New(log *slog.Logger, cfg config.TMDBClient, opts ...catalog.Option) *Client {
	return &Client{
		api:          catalog.New(log, "tmdb", cfg.BaseURL, cfg.Timeout, opts...),
		apiKey:       cfg.ApiKey,
		language:     cfg.Language,
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
	}
}

// MovieResult is one entry of a TMDB result page, in the provider's shape.
type MovieResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path"`
	GenreIDs      []int   `json:"genre_ids"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
}

type Page struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type movieDetails struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Runtime      *int32  `json:"runtime"`
	Genres       []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

type credits struct {
	Cast []struct {
		Name      string `json:"name"`
		Character string `json:"character"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) query(extra url.Values) (url.Values, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	for k, v := range extra {
		q[k] = v
	}
	return q, nil
}

// Movie fetches details and credits for tmdbID (one call each) and returns
// the normalized record, not yet persisted.
func (c *Client) Movie(ctx context.Context, tmdbID int64) (*models.Movie, error) {
	q, err := c.query(nil)
	if err != nil {
		return nil, err
	}
	var details movieDetails
	if err := c.api.Get(ctx, fmt.Sprintf("/movie/%d", tmdbID), q, &details); err != nil {
		return nil, err
	}
	var cr credits
	if err := c.api.Get(ctx, fmt.Sprintf("/movie/%d/credits", tmdbID), q, &cr); err != nil {
		return nil, err
	}

	movie := &models.Movie{
		TmdbID:      details.ID,
		Title:       details.Title,
		Overview:    optional(details.Overview),
		ReleaseDate: parseDate(details.ReleaseDate),
		PosterURL:   c.imageURL(posterSize, details.PosterPath),
		BackdropURL: c.imageURL(backdropSize, details.BackdropPath),
		Runtime:     details.Runtime,
		Genres:      make([]string, 0, len(details.Genres)),
		Directors:   []string{},
		Cast:        make([]models.CastMember, 0, castLimit),
	}
	if movie.TmdbID == 0 {
		movie.TmdbID = tmdbID
	}
	for _, g := range details.Genres {
		movie.Genres = append(movie.Genres, g.Name)
	}
	for _, p := range cr.Crew {
		if p.Job == "Director" {
			movie.Directors = append(movie.Directors, p.Name)
		}
	}
	for i, p := range cr.Cast {
		if i == castLimit {
			break
		}
		movie.Cast = append(movie.Cast, models.CastMember{Name: p.Name, Character: p.Character})
	}
	return movie, nil
}

// Search runs a title search. A non-nil year narrows it to that release year.
func (c *Client) Search(ctx context.Context, query string, page int, year *int) (*Page, error) {
	extra := url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	}
	if year != nil {
		extra.Set("year", strconv.Itoa(*year))
	}
	return c.page(ctx, "/search/movie", extra)
}

// Discover lists the most popular movies released in year.
func (c *Client) Discover(ctx context.Context, year, page int) (*Page, error) {
	return c.page(ctx, "/discover/movie", url.Values{
		"primary_release_year": {strconv.Itoa(year)},
		"sort_by":              {"popularity.desc"},
		"language":             {c.language},
		"page":                 {strconv.Itoa(page)},
	})
}

func (c *Client) Popular(ctx context.Context) (*Page, error) {
	return c.page(ctx, "/movie/popular", url.Values{"page": {"1"}})
}

func (c *Client) TopRated(ctx context.Context) (*Page, error) {
	return c.page(ctx, "/movie/top_rated", url.Values{"page": {"1"}})
}

func (c *Client) page(ctx context.Context, path string, extra url.Values) (*Page, error) {
	q, err := c.query(extra)
	if err != nil {
		return nil, err
	}
	var p Page
	if err := c.api.Get(ctx, path, q, &p); err != nil {
		return nil, err
	}
	if p.Results == nil {
		p.Results = []MovieResult{}
	}
	return &p, nil
}

// Summary converts a result into the search hit shape.
func (c *Client) Summary(r MovieResult) models.MovieSummary {
	return models.MovieSummary{
		ID:          r.ID,
		Title:       r.Title,
		ReleaseDate: optional(r.ReleaseDate),
		PosterURL:   c.imageURL(posterSize, r.PosterPath),
		Type:        "movie",
	}
}

func (c *Client) imageURL(size string, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := c.imageBaseURL + "/" + size + *path
	return &u
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseDate(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}
