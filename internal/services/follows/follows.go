package follows

import (
	"context"
	"errors"
	"log/slog"

	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage"
)

type FollowStorage interface {
	Insert(ctx context.Context, followerID, followingID int64) error
	Delete(ctx context.Context, followerID, followingID int64) error
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	Followers(ctx context.Context, userID int64) ([]models.UserSummary, error)
	Following(ctx context.Context, userID int64) ([]models.UserSummary, error)
}

type FollowService struct {
	log     *slog.Logger
	storage FollowStorage
}

func New(log *slog.Logger, storage FollowStorage) *FollowService {
	return &FollowService{
		log:     log,
		storage: storage,
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followingID int64) error {
	const op = "follows.FollowService.Follow"
	log := s.log.With("op", op, "follower_id", followerID, "following_id", followingID)
	if followerID == followingID {
		return ErrSelfFollow
	}
	err := s.storage.Insert(ctx, followerID, followingID)
	switch {
	case err == nil:
		log.Info("followed")
		return nil
	case errors.Is(err, storage.ErrConflict):
		return ErrAlreadyFollowing
	case errors.Is(err, storage.ErrReferenceNotFound):
		return ErrUserNotFound
	}
	log.Error(err.Error())
	return err
}

// Unfollow succeeds whether or not the edge existed.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID int64) error {
	const op = "follows.FollowService.Unfollow"
	if err := s.storage.Delete(ctx, followerID, followingID); err != nil {
		s.log.Error(err.Error(), "op", op)
		return err
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	ok, err := s.storage.Exists(ctx, followerID, followingID)
	if err != nil {
		s.log.Error(err.Error(), "op", "follows.FollowService.IsFollowing")
		return false, err
	}
	return ok, nil
}

func (s *FollowService) Followers(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	users, err := s.storage.Followers(ctx, userID)
	if err != nil {
		s.log.Error(err.Error(), "op", "follows.FollowService.Followers")
		return nil, err
	}
	return users, nil
}

func (s *FollowService) Following(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	users, err := s.storage.Following(ctx, userID)
	if err != nil {
		s.log.Error(err.Error(), "op", "follows.FollowService.Following")
		return nil, err
	}
	return users, nil
}
