package reviews

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/filters"
	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/services/catalog"
	"kutuphanem/proj/internal/storage"
)

type ReviewStorage interface {
	Get(ctx context.Context, id int64) (*models.Review, error)
	Insert(ctx context.Context, userID int64, ct fields.ContentType, contentID int64, text string) (*models.Review, error)
	UpdateText(ctx context.Context, id int64, text string) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
	ListForContent(ctx context.Context, ct fields.ContentType, contentID int64, limit, offset int) ([]models.Review, int64, error)
}

type CommentStorage interface {
	Get(ctx context.Context, id int64) (*models.Comment, error)
	Insert(ctx context.Context, reviewID, userID int64, text string) (*models.Comment, error)
	UpdateText(ctx context.Context, id int64, text string) (*models.Comment, error)
	Delete(ctx context.Context, id int64) (*models.Comment, error)
	ListForReview(ctx context.Context, reviewID int64, limit, offset int) ([]models.Comment, int64, error)
}

type ContentResolver interface {
	Resolve(ctx context.Context, ct fields.ContentType, ref string, fetch bool) (int64, error)
}

type ReviewService struct {
	log      *slog.Logger
	storage  ReviewStorage
	comments CommentStorage
	resolver ContentResolver
}

func New(log *slog.Logger, storage ReviewStorage, comments CommentStorage, resolver ContentResolver) *ReviewService {
	return &ReviewService{
		log:      log,
		storage:  storage,
		comments: comments,
		resolver: resolver,
	}
}

func (s *ReviewService) Create(ctx context.Context, userID int64, ct fields.ContentType, ref, text string) (*models.Review, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "user_id", userID, "content_type", ct, "ref", ref)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	contentID, err := s.resolver.Resolve(ctx, ct, ref, true)
	if err != nil {
		log.Info("resolving content", "err", err.Error())
		return nil, err
	}
	review, err := s.storage.Insert(ctx, userID, ct, contentID, text)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, catalog.ErrContentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("review created", "id", review.ID)
	return review, nil
}

// owned loads a review and checks that userID wrote it.
func (s *ReviewService) owned(ctx context.Context, userID, id int64) (*models.Review, error) {
	review, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrForbidden
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, userID, id int64, text string) (*models.Review, error) {
	const op = "reviews.ReviewService.Update"
	log := s.log.With("op", op, "user_id", userID, "id", id)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if _, err := s.owned(ctx, userID, id); err != nil {
		log.Info("update rejected", "err", err.Error())
		return nil, err
	}
	review, err := s.storage.UpdateText(ctx, id, text)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, id int64) error {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "user_id", userID, "id", id)
	if _, err := s.owned(ctx, userID, id); err != nil {
		log.Info("delete rejected", "err", err.Error())
		return err
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReviewNotFound
		}
		log.Error(err.Error())
		return err
	}
	log.Info("review deleted")
	return nil
}

// ListForContent pages through a content item's reviews, newest first.
// Content that was never cached has no reviews.
func (s *ReviewService) ListForContent(ctx context.Context, ct fields.ContentType, ref string, f filters.Filters) ([]models.Review, int64, error) {
	const op = "reviews.ReviewService.ListForContent"
	log := s.log.With("op", op, "content_type", ct, "ref", ref)
	contentID, err := s.resolver.Resolve(ctx, ct, ref, false)
	if err != nil {
		if errors.Is(err, catalog.ErrContentNotFound) {
			return []models.Review{}, 0, nil
		}
		return nil, 0, err
	}
	reviews, total, err := s.storage.ListForContent(ctx, ct, contentID, f.Limit(), f.Offset())
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return reviews, total, nil
}

func (s *ReviewService) ListComments(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int64, error) {
	const op = "reviews.ReviewService.ListComments"
	log := s.log.With("op", op, "review_id", reviewID)
	if _, err := s.storage.Get(ctx, reviewID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, 0, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, 0, err
	}
	comments, total, err := s.comments.ListForReview(ctx, reviewID, f.Limit(), f.Offset())
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *ReviewService) AddComment(ctx context.Context, userID, reviewID int64, text string) (*models.Comment, error) {
	const op = "reviews.ReviewService.AddComment"
	log := s.log.With("op", op, "user_id", userID, "review_id", reviewID)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if _, err := s.storage.Get(ctx, reviewID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	comment, err := s.comments.Insert(ctx, reviewID, userID, text)
	if err != nil {
		// the review was deleted in between
		if errors.Is(err, storage.ErrReferenceNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return comment, nil
}

// ownedComment loads a comment under reviewID and checks that userID wrote it.
func (s *ReviewService) ownedComment(ctx context.Context, userID, reviewID, commentID int64) error {
	comment, err := s.comments.Get(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.ReviewID != reviewID {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *ReviewService) UpdateComment(ctx context.Context, userID, reviewID, commentID int64, text string) (*models.Comment, error) {
	const op = "reviews.ReviewService.UpdateComment"
	log := s.log.With("op", op, "user_id", userID, "comment_id", commentID)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if err := s.ownedComment(ctx, userID, reviewID, commentID); err != nil {
		log.Info("update rejected", "err", err.Error())
		return nil, err
	}
	comment, err := s.comments.UpdateText(ctx, commentID, text)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return comment, nil
}

func (s *ReviewService) DeleteComment(ctx context.Context, userID, reviewID, commentID int64) (*models.Comment, error) {
	const op = "reviews.ReviewService.DeleteComment"
	log := s.log.With("op", op, "user_id", userID, "comment_id", commentID)
	if err := s.ownedComment(ctx, userID, reviewID, commentID); err != nil {
		log.Info("delete rejected", "err", err.Error())
		return nil, err
	}
	comment, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return comment, nil
}
