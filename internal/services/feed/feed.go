package feed

import (
	"context"
	"log/slog"

	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/filters"
	"kutuphanem/proj/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultFeedLimit     = 15
	DefaultActivityLimit = 20
)

type FollowStorage interface {
	FollowingIDs(ctx context.Context, userID int64) ([]int64, error)
}

type ActivityStorage interface {
	RecentRatings(ctx context.Context, userIDs []int64, limit int) ([]models.Activity, error)
	RecentReviews(ctx context.Context, userIDs []int64, limit int) ([]models.Activity, error)
}

type Page struct {
	Activities []models.Activity `json:"activities"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	HasMore    bool              `json:"hasMore"`
}

type FeedService struct {
	log        *slog.Logger
	follows    FollowStorage
	activities ActivityStorage
}

func New(log *slog.Logger, follows FollowStorage, activities ActivityStorage) *FeedService {
	return &FeedService{
		log:        log,
		follows:    follows,
		activities: activities,
	}
}

// GetFeed returns activities of the users userID follows and of userID itself.
func (s *FeedService) GetFeed(ctx context.Context, userID int64, f filters.Filters) (*Page, error) {
	const op = "feed.FeedService.GetFeed"
	log := s.log.With("op", op, "user_id", userID)
	f = f.Clamp(DefaultFeedLimit, filters.MaxPageSize)

	following, err := s.follows.FollowingIDs(ctx, userID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return s.page(ctx, log, audience(userID, following), f), nil
}

// GetUserActivities returns the activities of a single user.
func (s *FeedService) GetUserActivities(ctx context.Context, userID int64, f filters.Filters) (*Page, error) {
	const op = "feed.FeedService.GetUserActivities"
	log := s.log.With("op", op, "user_id", userID)
	f = f.Clamp(DefaultActivityLimit, filters.MaxPageSize)
	return s.page(ctx, log, audience(userID, nil), f), nil
}

// audience is the de-duplicated union of self and others. A non-positive
// self is left out.
func audience(self int64, others []int64) []int64 {
	seen := make(map[int64]struct{}, len(others)+1)
	ids := make([]int64, 0, len(others)+1)
	add := func(id int64) {
		if id <= 0 {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	add(self)
	for _, id := range others {
		add(id)
	}
	return ids
}

func (s *FeedService) page(ctx context.Context, log *slog.Logger, userIDs []int64, f filters.Filters) *Page {
	p := &Page{Activities: []models.Activity{}, Page: f.Page, Limit: f.Limit()}
	if len(userIDs) == 0 {
		return p
	}
	// each source contributes at most offset+limit+1 rows to the merged prefix
	fetch := f.Offset() + f.Limit() + 1

	var ratings, reviews []models.Activity
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if ratings, err = s.activities.RecentRatings(gctx, userIDs, fetch); err != nil {
			log.Error("loading ratings", "err", err.Error())
			ratings = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if reviews, err = s.activities.RecentReviews(gctx, userIDs, fetch); err != nil {
			log.Error("loading reviews", "err", err.Error())
			reviews = nil
		}
		return nil
	})
	_ = g.Wait()

	p.Activities, p.HasMore = Merge(ratings, reviews, f.Offset(), f.Limit())
	return p
}

// newer reports whether a sorts before b: later created_at first, then higher
// activity id, then ratings before reviews.
func newer(a, b models.Activity) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if a.ActivityID != b.ActivityID {
		return a.ActivityID > b.ActivityID
	}
	return a.ActivityType == fields.ActivityRating && b.ActivityType != fields.ActivityRating
}

// Merge combines two streams that are each sorted newest first, skips offset
// entries and returns at most limit of the rest. hasMore reports whether an
// entry exists past offset+limit.
func Merge(a, b []models.Activity, offset, limit int) (page []models.Activity, hasMore bool) {
	page = make([]models.Activity, 0, limit)
	i, j, n := 0, 0, 0
	for i < len(a) || j < len(b) {
		var next models.Activity
		if j >= len(b) || (i < len(a) && newer(a[i], b[j])) {
			next = a[i]
			i++
		} else {
			next = b[j]
			j++
		}
		switch {
		case n < offset:
		case n < offset+limit:
			page = append(page, next)
		default:
			return page, true
		}
		n++
	}
	return page, false
}
