package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"kutuphanem/proj/internal/clients/catalog"
	"kutuphanem/proj/internal/clients/catalog/googlebooks"
	"kutuphanem/proj/internal/clients/catalog/tmdb"
	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/lib/metrics"
	"kutuphanem/proj/internal/storage"
)

type MovieStorage interface {
	GetByRef(ctx context.Context, ref int64) (*models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
}

type BookStorage interface {
	GetByRef(ctx context.Context, ref string) (*models.Book, error)
	Insert(ctx context.Context, book *models.Book) (*models.Book, error)
}

type MovieProvider interface {
	Movie(ctx context.Context, tmdbID int64) (*models.Movie, error)
	Search(ctx context.Context, query string, page int, year *int) (*tmdb.Page, error)
	Popular(ctx context.Context) (*tmdb.Page, error)
	TopRated(ctx context.Context) (*tmdb.Page, error)
}

type BookProvider interface {
	Book(ctx context.Context, volumeID string) (*models.Book, error)
	Search(ctx context.Context, query string, page, maxResults int) (*googlebooks.Volumes, error)
}

type CatalogService struct {
	log    *slog.Logger
	movies MovieStorage
	books  BookStorage
	tmdb   MovieProvider
	gbooks BookProvider
}

func New(log *slog.Logger, movies MovieStorage, books BookStorage, tmdb MovieProvider, gbooks BookProvider) *CatalogService {
	return &CatalogService{
		log:    log,
		movies: movies,
		books:  books,
		tmdb:   tmdb,
		gbooks: gbooks,
	}
}

// providerError translates client failures into service errors.
func providerError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return ErrContentNotFound
	case errors.Is(err, catalog.ErrUnavailable):
		return ErrUpstreamUnavailable
	case errors.Is(err, tmdb.ErrNotConfigured):
		return ErrProviderNotConfigured
	}
	return err
}

func parseMovieRef(ref string) (int64, error) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidRef
	}
	return id, nil
}

// GetMovie returns the cached movie for ref (internal or TMDB id), fetching
// and caching it from TMDB on a miss.
func (s *CatalogService) GetMovie(ctx context.Context, ref string) (*models.Movie, error) {
	const op = "catalog.CatalogService.GetMovie"
	log := s.log.With("op", op, "ref", ref)
	id, err := parseMovieRef(ref)
	if err != nil {
		return nil, err
	}
	movie, err := s.movies.GetByRef(ctx, id)
	if err == nil {
		metrics.CatalogCache.WithLabelValues(string(fields.ContentMovie), "hit").Inc()
		return movie, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}
	metrics.CatalogCache.WithLabelValues(string(fields.ContentMovie), "miss").Inc()

	fetched, err := s.tmdb.Movie(ctx, id)
	if err != nil {
		err = providerError(err)
		if errors.Is(err, ErrContentNotFound) {
			log.Info("movie not found upstream")
		} else {
			log.Error("fetching movie", "err", err.Error())
		}
		return nil, err
	}
	stored, err := s.movies.Insert(ctx, fetched)
	if err != nil {
		log.Error("caching movie", "err", err.Error())
		return nil, err
	}
	log.Info("movie cached", "id", stored.ID, "tmdb_id", stored.TmdbID)
	return stored, nil
}

// GetBook is GetMovie for books. ref is an internal id or a Google Books id.
func (s *CatalogService) GetBook(ctx context.Context, ref string) (*models.Book, error) {
	const op = "catalog.CatalogService.GetBook"
	log := s.log.With("op", op, "ref", ref)
	if ref == "" {
		return nil, ErrInvalidRef
	}
	book, err := s.books.GetByRef(ctx, ref)
	if err == nil {
		metrics.CatalogCache.WithLabelValues(string(fields.ContentBook), "hit").Inc()
		return book, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return nil, err
	}
	metrics.CatalogCache.WithLabelValues(string(fields.ContentBook), "miss").Inc()

	fetched, err := s.gbooks.Book(ctx, ref)
	if err != nil {
		err = providerError(err)
		if errors.Is(err, ErrContentNotFound) {
			log.Info("book not found upstream")
		} else {
			log.Error("fetching book", "err", err.Error())
		}
		return nil, err
	}
	stored, err := s.books.Insert(ctx, fetched)
	if err != nil {
		log.Error("caching book", "err", err.Error())
		return nil, err
	}
	log.Info("book cached", "id", stored.ID, "google_books_id", stored.GoogleBooksID)
	return stored, nil
}

// Resolve maps ref to the internal id of a cached content item. With fetch
// set a cache miss is filled from the provider; otherwise it is
// ErrContentNotFound.
func (s *CatalogService) Resolve(ctx context.Context, ct fields.ContentType, ref string, fetch bool) (int64, error) {
	switch ct {
	case fields.ContentMovie:
		if fetch {
			m, err := s.GetMovie(ctx, ref)
			if err != nil {
				return 0, err
			}
			return m.ID, nil
		}
		id, err := parseMovieRef(ref)
		if err != nil {
			return 0, err
		}
		m, err := s.movies.GetByRef(ctx, id)
		if err != nil {
			return 0, localLookupError(err)
		}
		return m.ID, nil
	case fields.ContentBook:
		if fetch {
			b, err := s.GetBook(ctx, ref)
			if err != nil {
				return 0, err
			}
			return b.ID, nil
		}
		b, err := s.books.GetByRef(ctx, ref)
		if err != nil {
			return 0, localLookupError(err)
		}
		return b.ID, nil
	}
	return 0, ErrInvalidContentType
}

func localLookupError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrContentNotFound
	}
	return err
}

func (s *CatalogService) SearchMovies(ctx context.Context, query string, page int) (*tmdb.Page, error) {
	const op = "catalog.CatalogService.SearchMovies"
	log := s.log.With("op", op, "query", query, "page", page)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	res, err := s.tmdb.Search(ctx, query, max(page, 1), nil)
	if err != nil {
		log.Error(err.Error())
		return nil, providerError(err)
	}
	return res, nil
}

func (s *CatalogService) SearchBooks(ctx context.Context, query string, page, maxResults int) (*googlebooks.Volumes, error) {
	const op = "catalog.CatalogService.SearchBooks"
	log := s.log.With("op", op, "query", query, "page", page)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	res, err := s.gbooks.Search(ctx, query, max(page, 1), maxResults)
	if err != nil {
		log.Error(err.Error())
		return nil, providerError(err)
	}
	return res, nil
}

func (s *CatalogService) PopularMovies(ctx context.Context) (*tmdb.Page, error) {
	res, err := s.tmdb.Popular(ctx)
	if err != nil {
		s.log.Error(err.Error(), "op", "catalog.CatalogService.PopularMovies")
		return nil, providerError(err)
	}
	return res, nil
}

func (s *CatalogService) TopRatedMovies(ctx context.Context) (*tmdb.Page, error) {
	res, err := s.tmdb.TopRated(ctx)
	if err != nil {
		s.log.Error(err.Error(), "op", "catalog.CatalogService.TopRatedMovies")
		return nil, providerError(err)
	}
	return res, nil
}
