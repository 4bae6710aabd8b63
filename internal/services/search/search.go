package search

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"kutuphanem/proj/internal/clients/catalog/googlebooks"
	"kutuphanem/proj/internal/clients/catalog/tmdb"
	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

const (
	LocalLimit   = 50
	RankingLimit = 20
)

type MovieProvider interface {
	Search(ctx context.Context, query string, page int, year *int) (*tmdb.Page, error)
	Discover(ctx context.Context, year, page int) (*tmdb.Page, error)
	Summary(r tmdb.MovieResult) models.MovieSummary
}

type BookProvider interface {
	Search(ctx context.Context, query string, page, maxResults int) (*googlebooks.Volumes, error)
	ByYear(ctx context.Context, year, page int) (*googlebooks.Volumes, error)
}

type MovieIndex interface {
	Filter(ctx context.Context, year *int, minRating *float64, genre *string, limit int) ([]models.MovieSummary, error)
	RatedAtLeast(ctx context.Context, tmdbIDs []int64, minRating float64) ([]models.MovieSummary, error)
	Popular(ctx context.Context, limit int) ([]models.RankedContent, error)
	TopRated(ctx context.Context, limit int) ([]models.RankedContent, error)
}

type BookIndex interface {
	Filter(ctx context.Context, year *int, minRating *float64, genre *string, limit int) ([]models.BookSummary, error)
	RatedAtLeast(ctx context.Context, googleIDs []string, minRating float64) ([]models.BookSummary, error)
	Popular(ctx context.Context, limit int) ([]models.RankedContent, error)
	TopRated(ctx context.Context, limit int) ([]models.RankedContent, error)
}

type Params struct {
	Query     string   `schema:"query"`
	Type      string   `schema:"type"`
	Genre     *string  `schema:"genre"`
	Year      *int     `schema:"year"`
	MinRating *float64 `schema:"minRating"`
	Page      int      `schema:"page"`
}

type Results struct {
	Movies []models.MovieSummary `json:"movies"`
	Books  []models.BookSummary  `json:"books"`
}

type SearchService struct {
	log    *slog.Logger
	movies MovieIndex
	books  BookIndex
	tmdb   MovieProvider
	gbooks BookProvider
}

func New(log *slog.Logger, movies MovieIndex, books BookIndex, tmdb MovieProvider, gbooks BookProvider) *SearchService {
	return &SearchService{
		log:    log,
		movies: movies,
		books:  books,
		tmdb:   tmdb,
		gbooks: gbooks,
	}
}

// kinds maps the type parameter onto the content types to search.
func kinds(t string) (movies, books bool, err error) {
	switch strings.ToLower(t) {
	case "", "all":
		return true, true, nil
	case string(fields.ContentMovie):
		return true, false, nil
	case string(fields.ContentBook):
		return false, true, nil
	}
	return false, false, ErrInvalidType
}

func (p *Params) normalize() error {
	p.Query = strings.TrimSpace(p.Query)
	if p.Genre != nil {
		g := strings.TrimSpace(*p.Genre)
		if g == "" {
			p.Genre = nil
		} else {
			p.Genre = &g
		}
	}
	if p.MinRating != nil && (*p.MinRating < 0 || *p.MinRating > 10) {
		return ErrInvalidMinRating
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Query == "" && p.Type == "" && p.Genre == nil && p.Year == nil && p.MinRating == nil {
		return ErrEmptySearch
	}
	return nil
}

// Search looks up movies and books concurrently. A failing source yields an
// empty result set instead of failing the request.
func (s *SearchService) Search(ctx context.Context, p Params) (*Results, error) {
	const op = "search.SearchService.Search"
	log := s.log.With("op", op, "query", p.Query, "type", p.Type)
	if err := p.normalize(); err != nil {
		return nil, err
	}
	wantMovies, wantBooks, err := kinds(p.Type)
	if err != nil {
		return nil, err
	}

	res := &Results{Movies: []models.MovieSummary{}, Books: []models.BookSummary{}}
	g, gctx := errgroup.WithContext(ctx)
	if wantMovies {
		g.Go(func() error {
			movies, err := s.searchMovies(gctx, p)
			if err != nil {
				log.Warn("movie search failed", "err", err.Error())
				return nil
			}
			res.Movies = movies
			return nil
		})
	}
	if wantBooks {
		g.Go(func() error {
			books, err := s.searchBooks(gctx, p)
			if err != nil {
				log.Warn("book search failed", "err", err.Error())
				return nil
			}
			res.Books = books
			return nil
		})
	}
	_ = g.Wait()
	return res, nil
}

func (s *SearchService) searchMovies(ctx context.Context, p Params) ([]models.MovieSummary, error) {
	switch {
	case p.Query != "":
		page, err := s.tmdb.Search(ctx, p.Query, p.Page, p.Year)
		if err != nil {
			return nil, err
		}
		hits := make([]models.MovieSummary, 0, len(page.Results))
		for _, r := range page.Results {
			hits = append(hits, s.tmdb.Summary(r))
		}
		if p.MinRating != nil {
			return s.ratedMovies(ctx, hits, *p.MinRating)
		}
		return hits, nil
	case p.Year != nil && p.Genre == nil && p.MinRating == nil:
		page, err := s.tmdb.Discover(ctx, *p.Year, p.Page)
		if err == nil {
			hits := make([]models.MovieSummary, 0, len(page.Results))
			for _, r := range page.Results {
				hits = append(hits, s.tmdb.Summary(r))
			}
			return hits, nil
		}
		s.log.Info("discover failed, using local cache", "op", "search.SearchService.searchMovies", "err", err.Error())
	}
	return s.movies.Filter(ctx, p.Year, p.MinRating, p.Genre, LocalLimit)
}

// ratedMovies keeps the hits whose cached average is at least minRating, in
// provider order. Movies that were never cached have no average and are
// dropped.
func (s *SearchService) ratedMovies(ctx context.Context, hits []models.MovieSummary, minRating float64) ([]models.MovieSummary, error) {
	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	rated, err := s.movies.RatedAtLeast(ctx, ids, minRating)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.MovieSummary, len(rated))
	for _, r := range rated {
		byID[r.ID] = r
	}
	out := make([]models.MovieSummary, 0, len(rated))
	for _, h := range hits {
		if r, ok := byID[h.ID]; ok {
			h.AverageRating, h.TotalRatings = r.AverageRating, r.TotalRatings
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *SearchService) searchBooks(ctx context.Context, p Params) ([]models.BookSummary, error) {
	switch {
	case p.Query != "":
		vs, err := s.gbooks.Search(ctx, p.Query, p.Page, googlebooks.SearchPageSize)
		if err != nil {
			return nil, err
		}
		hits := bookHits(vs)
		if p.MinRating != nil {
			return s.ratedBooks(ctx, hits, *p.MinRating)
		}
		return hits, nil
	case p.Year != nil && p.Genre == nil && p.MinRating == nil:
		vs, err := s.gbooks.ByYear(ctx, *p.Year, p.Page)
		if err == nil {
			return bookHits(vs), nil
		}
		s.log.Info("year lookup failed, using local cache", "op", "search.SearchService.searchBooks", "err", err.Error())
	}
	return s.books.Filter(ctx, p.Year, p.MinRating, p.Genre, LocalLimit)
}

func bookHits(vs *googlebooks.Volumes) []models.BookSummary {
	hits := make([]models.BookSummary, 0, len(vs.Items))
	for _, v := range vs.Items {
		hits = append(hits, googlebooks.Summary(v))
	}
	return hits
}

func (s *SearchService) ratedBooks(ctx context.Context, hits []models.BookSummary, minRating float64) ([]models.BookSummary, error) {
	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	rated, err := s.books.RatedAtLeast(ctx, ids, minRating)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.BookSummary, len(rated))
	for _, r := range rated {
		byID[r.ID] = r
	}
	out := make([]models.BookSummary, 0, len(rated))
	for _, h := range hits {
		if r, ok := byID[h.ID]; ok {
			h.AverageRating, h.TotalRatings = r.AverageRating, r.TotalRatings
			out = append(out, h)
		}
	}
	return out, nil
}

type ranking func(ctx context.Context, limit int) ([]models.RankedContent, error)

func (s *SearchService) rank(ctx context.Context, op, t string, movies, books ranking, less func(a, b models.RankedContent) int) ([]models.RankedContent, error) {
	log := s.log.With("op", op, "type", t)
	wantMovies, wantBooks, err := kinds(t)
	if err != nil {
		return nil, err
	}
	var m, b []models.RankedContent
	g, gctx := errgroup.WithContext(ctx)
	if wantMovies {
		g.Go(func() (err error) {
			m, err = movies(gctx, RankingLimit)
			return err
		})
	}
	if wantBooks {
		g.Go(func() (err error) {
			b, err = books(gctx, RankingLimit)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Error(err.Error())
		return nil, err
	}
	all := append(m, b...)
	slices.SortStableFunc(all, less)
	if len(all) > RankingLimit {
		all = all[:RankingLimit]
	}
	if all == nil {
		all = []models.RankedContent{}
	}
	return all, nil
}

// Popular ranks cached content by ratings, reviews and list additions.
func (s *SearchService) Popular(ctx context.Context, t string) ([]models.RankedContent, error) {
	return s.rank(ctx, "search.SearchService.Popular", t, s.movies.Popular, s.books.Popular,
		func(a, b models.RankedContent) int {
			return cmp.Compare(b.PopularityScore, a.PopularityScore)
		})
}

// TopRated ranks cached content with at least one rating by average, then count.
func (s *SearchService) TopRated(ctx context.Context, t string) ([]models.RankedContent, error) {
	return s.rank(ctx, "search.SearchService.TopRated", t, s.movies.TopRated, s.books.TopRated,
		func(a, b models.RankedContent) int {
			if c := cmp.Compare(b.AverageRating, a.AverageRating); c != 0 {
				return c
			}
			return cmp.Compare(b.TotalRatings, a.TotalRatings)
		})
}
