package likes

import (
	"context"
	"log/slog"

	"kutuphanem/proj/internal/domain/fields"
)

type LikeStorage interface {
	Toggle(ctx context.Context, userID int64, target fields.LikeTarget, targetID int64) (bool, int64, error)
	Exists(ctx context.Context, userID int64, target fields.LikeTarget, targetID int64) (bool, error)
	Count(ctx context.Context, target fields.LikeTarget, targetID int64) (int64, error)
}

type LikeService struct {
	log     *slog.Logger
	storage LikeStorage
}

func New(log *slog.Logger, storage LikeStorage) *LikeService {
	return &LikeService{
		log:     log,
		storage: storage,
	}
}

func validate(target fields.LikeTarget, targetID int64) error {
	if !target.Valid() {
		return ErrInvalidTarget
	}
	if targetID <= 0 {
		return ErrInvalidTargetID
	}
	return nil
}

// Toggle flips the user's like on the target and returns the new state and
// like count.
func (s *LikeService) Toggle(ctx context.Context, userID int64, target fields.LikeTarget, targetID int64) (liked bool, count int64, err error) {
	const op = "likes.LikeService.Toggle"
	log := s.log.With("op", op, "user_id", userID, "target", target, "target_id", targetID)
	if err := validate(target, targetID); err != nil {
		return false, 0, err
	}
	liked, count, err = s.storage.Toggle(ctx, userID, target, targetID)
	if err != nil {
		log.Error(err.Error())
		return false, 0, err
	}
	log.Info("like toggled", "liked", liked, "count", count)
	return liked, count, nil
}

func (s *LikeService) Status(ctx context.Context, userID int64, target fields.LikeTarget, targetID int64) (bool, error) {
	if err := validate(target, targetID); err != nil {
		return false, err
	}
	liked, err := s.storage.Exists(ctx, userID, target, targetID)
	if err != nil {
		s.log.Error(err.Error(), "op", "likes.LikeService.Status")
		return false, err
	}
	return liked, nil
}

func (s *LikeService) Count(ctx context.Context, target fields.LikeTarget, targetID int64) (int64, error) {
	if err := validate(target, targetID); err != nil {
		return 0, err
	}
	count, err := s.storage.Count(ctx, target, targetID)
	if err != nil {
		s.log.Error(err.Error(), "op", "likes.LikeService.Count")
		return 0, err
	}
	return count, nil
}
