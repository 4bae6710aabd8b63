package ratings

import (
	"context"
	"errors"
	"log/slog"

	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/services/catalog"
	"kutuphanem/proj/internal/storage"
)

const (
	MinRating = 1
	MaxRating = 10
)

type RatingStorage interface {
	Upsert(ctx context.Context, userID int64, ct fields.ContentType, contentID int64, value int32) (models.RatingSummary, error)
	Delete(ctx context.Context, userID int64, ct fields.ContentType, contentID int64) (models.RatingSummary, error)
	Get(ctx context.Context, userID int64, ct fields.ContentType, contentID int64) (*models.Rating, error)
}

type ContentResolver interface {
	Resolve(ctx context.Context, ct fields.ContentType, ref string, fetch bool) (int64, error)
}

type RatingService struct {
	log      *slog.Logger
	storage  RatingStorage
	resolver ContentResolver
}

func New(log *slog.Logger, storage RatingStorage, resolver ContentResolver) *RatingService {
	return &RatingService{
		log:      log,
		storage:  storage,
		resolver: resolver,
	}
}

// Rate records the user's rating for a content item, replacing any earlier
// one, and returns the item's refreshed aggregate.
func (s *RatingService) Rate(ctx context.Context, userID int64, ct fields.ContentType, ref string, value int) (models.RatingSummary, error) {
	const op = "ratings.RatingService.Rate"
	log := s.log.With("op", op, "user_id", userID, "content_type", ct, "ref", ref, "rating", value)
	if value < MinRating || value > MaxRating {
		return models.RatingSummary{}, ErrInvalidRating
	}
	contentID, err := s.resolver.Resolve(ctx, ct, ref, true)
	if err != nil {
		log.Info("resolving content", "err", err.Error())
		return models.RatingSummary{}, err
	}
	summary, err := s.storage.Upsert(ctx, userID, ct, contentID, int32(value))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.RatingSummary{}, catalog.ErrContentNotFound
		}
		log.Error(err.Error())
		return models.RatingSummary{}, err
	}
	log.Info("rating saved", "average", summary.AverageRating, "total", summary.TotalRatings)
	return summary, nil
}

// GetMine returns the user's rating or nil when there is none. Unknown
// content is never fetched from the provider.
func (s *RatingService) GetMine(ctx context.Context, userID int64, ct fields.ContentType, ref string) (*models.Rating, error) {
	const op = "ratings.RatingService.GetMine"
	log := s.log.With("op", op, "user_id", userID, "content_type", ct, "ref", ref)
	contentID, err := s.resolver.Resolve(ctx, ct, ref, false)
	if err != nil {
		if errors.Is(err, catalog.ErrContentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rating, err := s.storage.Get(ctx, userID, ct, contentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		log.Error(err.Error())
		return nil, err
	}
	return rating, nil
}

// Delete removes the user's rating and returns the refreshed aggregate.
func (s *RatingService) Delete(ctx context.Context, userID int64, ct fields.ContentType, ref string) (models.RatingSummary, error) {
	const op = "ratings.RatingService.Delete"
	log := s.log.With("op", op, "user_id", userID, "content_type", ct, "ref", ref)
	contentID, err := s.resolver.Resolve(ctx, ct, ref, false)
	if err != nil {
		if errors.Is(err, catalog.ErrContentNotFound) {
			return models.RatingSummary{}, ErrRatingNotFound
		}
		return models.RatingSummary{}, err
	}
	summary, err := s.storage.Delete(ctx, userID, ct, contentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.RatingSummary{}, ErrRatingNotFound
		}
		log.Error(err.Error())
		return models.RatingSummary{}, err
	}
	log.Info("rating removed")
	return summary, nil
}
