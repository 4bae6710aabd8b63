package users

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	MaxAvatarSize      = 5 << 20
	AvatarURLPrefix    = "/uploads/"
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type UserStorage interface {
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	Update(ctx context.Context, id int64, avatarURL, bio *string) (*models.User, error)
	SetAvatar(ctx context.Context, id int64, avatarURL string) (*string, error)
	Search(ctx context.Context, query string, limit int) ([]models.UserSummary, error)
}

type UserService struct {
	log        *slog.Logger
	storage    UserStorage
	uploadsDir string
}

func New(log *slog.Logger, storage UserStorage, uploadsDir string) *UserService {
	return &UserService{
		log:        log,
		storage:    storage,
		uploadsDir: uploadsDir,
	}
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// GetProfile returns the profile of id. The email is only shown to its owner.
func (s *UserService) GetProfile(ctx context.Context, viewerID, id int64) (*models.Profile, error) {
	p, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error(err.Error(), "op", "users.UserService.GetProfile", "id", id)
		}
		return nil, notFound(err)
	}
	if viewerID != id {
		p.Email = ""
	}
	return p, nil
}

func (s *UserService) Update(ctx context.Context, actorID, id int64, avatarURL, bio *string) (*models.User, error) {
	const op = "users.UserService.Update"
	log := s.log.With("op", op, "user_id", id)
	if actorID != id {
		return nil, ErrForbidden
	}
	avatarURL, err := s.ownAvatarURL(ctx, id, trimmed(avatarURL))
	if err != nil {
		return nil, err
	}
	user, err := s.storage.Update(ctx, id, avatarURL, trimmed(bio))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error(err.Error())
		}
		return nil, notFound(err)
	}
	log.Info("profile updated")
	return user, nil
}

// ownAvatarURL keeps /uploads/ paths out of profile updates so that only
// UploadAvatar can point a user at an uploaded file. Resending the current
// value is treated as no change.
func (s *UserService) ownAvatarURL(ctx context.Context, id int64, avatarURL *string) (*string, error) {
	if avatarURL == nil || !strings.HasPrefix(*avatarURL, AvatarURLPrefix) {
		return avatarURL, nil
	}
	p, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error(err.Error(), "op", "users.UserService.ownAvatarURL", "user_id", id)
		}
		return nil, notFound(err)
	}
	if p.AvatarURL != nil && *p.AvatarURL == *avatarURL {
		return nil, nil
	}
	return nil, ErrUploadedAvatarURL
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// UploadAvatar stores the image read from src and points the user's avatar
// at it. The previous uploaded avatar is removed when possible.
func (s *UserService) UploadAvatar(ctx context.Context, actorID, id int64, src io.Reader) (string, error) {
	const op = "users.UserService.UploadAvatar"
	log := s.log.With("op", op, "user_id", id)
	if actorID != id {
		return "", ErrForbidden
	}
	data, err := io.ReadAll(io.LimitReader(src, MaxAvatarSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxAvatarSize {
		return "", ErrAvatarTooLarge
	}
	ext, ok := avatarExtensions[mimetype.Detect(data).String()]
	if !ok {
		log.Info("rejected avatar", "mime", mimetype.Detect(data).String())
		return "", ErrUnsupportedAvatar
	}

	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		log.Error("creating uploads dir", "err", err.Error())
		return "", err
	}
	name := uuid.NewString() + ext
	dst := filepath.Join(s.uploadsDir, name)
	if err := writeFile(dst, data); err != nil {
		log.Error("writing avatar", "err", err.Error())
		return "", err
	}

	avatarURL := AvatarURLPrefix + name
	previous, err := s.storage.SetAvatar(ctx, id, avatarURL)
	if err != nil {
		_ = os.Remove(dst)
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error(err.Error())
		}
		return "", notFound(err)
	}
	if previous != nil && strings.HasPrefix(*previous, AvatarURLPrefix) {
		old := filepath.Join(s.uploadsDir, path.Base(*previous))
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn("removing previous avatar", "file", old, "err", err.Error())
		}
	}
	log.Info("avatar uploaded", "url", avatarURL)
	return avatarURL, nil
}

func writeFile(name string, data []byte) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	return f.Close()
}

func (s *UserService) Search(ctx context.Context, query string, limit int) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	limit = min(max(limit, 1), MaxSearchLimit)
	found, err := s.storage.Search(ctx, query, limit)
	if err != nil {
		s.log.Error(err.Error(), "op", "users.UserService.Search")
		return nil, err
	}
	return found, nil
}
