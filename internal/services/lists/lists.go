package lists

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

const DefaultPageSize = 20

type ListStorage interface {
	AddItem(ctx context.Context, userID int64, ct fields.ContentType, contentID int64, lt fields.ListType) (*models.ListItem, error)
	RemoveItem(ctx context.Context, userID int64, ct fields.ContentType, contentID int64, lt fields.ListType) error
	Items(ctx context.Context, userID int64, lt fields.ListType, limit, offset int) ([]models.ListItem, int64, error)

	CreateCustom(ctx context.Context, userID int64, name string, description *string, isPublic bool) (*models.CustomList, error)
	GetCustom(ctx context.Context, id int64) (*models.CustomList, error)
	CustomByUser(ctx context.Context, userID int64, includePrivate bool) ([]models.CustomList, error)
	UpdateCustom(ctx context.Context, id int64, name, description *string, isPublic *bool) (*models.CustomList, error)
	DeleteCustom(ctx context.Context, id int64) error
	AddCustomItem(ctx context.Context, listID int64, ct fields.ContentType, contentID int64) (*models.CustomListItem, error)
	RemoveCustomItem(ctx context.Context, listID, itemID int64) error
	CustomItems(ctx context.Context, listID int64) ([]models.CustomListItem, error)
}

type ContentResolver interface {
	Resolve(ctx context.Context, ct fields.ContentType, ref string, fetch bool) (int64, error)
}

type ListService struct {
	log      *slog.Logger
	storage  ListStorage
	resolver ContentResolver
}

func New(log *slog.Logger, storage ListStorage, resolver ContentResolver) *ListService {
	return &ListService{
		log:      log,
		storage:  storage,
		resolver: resolver,
	}
}

// listContentType checks lt and derives the content type when ct is empty.
func listContentType(lt fields.ListType, ct fields.ContentType) (fields.ContentType, error) {
	if !lt.Valid() {
		return "", ErrInvalidListType
	}
	if ct == "" {
		return lt.ContentType(), nil
	}
	if ct != lt.ContentType() {
		return "", ErrContentTypeMismatch
	}
	return ct, nil
}

func (s *ListService) Add(ctx context.Context, userID int64, lt fields.ListType, ct fields.ContentType, ref string) (*models.ListItem, error) {
	const op = "lists.ListService.Add"
	log := s.log.With("op", op, "user_id", userID, "list_type", lt, "ref", ref)
	ct, err := listContentType(lt, ct)
	if err != nil {
		return nil, err
	}
	contentID, err := s.resolver.Resolve(ctx, ct, ref, true)
	if err != nil {
		log.Info("resolving content", "err", err.Error())
		return nil, err
	}
	item, err := s.storage.AddItem(ctx, userID, ct, contentID, lt)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrAlreadyInList
		}
		log.Error(err.Error())
		return nil, err
	}
	return item, nil
}

// Remove succeeds when the item is not in the list.
func (s *ListService) Remove(ctx context.Context, userID int64, lt fields.ListType, ct fields.ContentType, ref string) error {
	const op = "lists.ListService.Remove"
	log := s.log.With("op", op, "user_id", userID, "list_type", lt, "ref", ref)
	ct, err := listContentType(lt, ct)
	if err != nil {
		return err
	}
	contentID, err := s.resolver.Resolve(ctx, ct, ref, false)
	if err != nil {
		if errors.Is(err, catalog.ErrContentNotFound) {
			return nil
		}
		return err
	}
	if err := s.storage.RemoveItem(ctx, userID, ct, contentID, lt); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *ListService) Items(ctx context.Context, userID int64, lt fields.ListType, f filters.Filters) ([]models.ListItem, int64, error) {
	if !lt.Valid() {
		return nil, 0, ErrInvalidListType
	}
	items, total, err := s.storage.Items(ctx, userID, lt, f.Limit(), f.Offset())
	if err != nil {
		s.log.Error(err.Error(), "op", "lists.ListService.Items")
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ListService) CreateCustom(ctx context.Context, userID int64, name string, description *string, isPublic *bool) (*models.CustomList, error) {
	const op = "lists.ListService.CreateCustom"
	log := s.log.With("op", op, "user_id", userID)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	public := true
	if isPublic != nil {
		public = *isPublic
	}
	list, err := s.storage.CreateCustom(ctx, userID, name, description, public)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	log.Info("custom list created", "id", list.ID)
	return list, nil
}

// UserCustomLists returns ownerID's lists as seen by viewerID.
func (s *ListService) UserCustomLists(ctx context.Context, viewerID, ownerID int64) ([]models.CustomList, error) {
	lists, err := s.storage.CustomByUser(ctx, ownerID, viewerID == ownerID)
	if err != nil {
		s.log.Error(err.Error(), "op", "lists.ListService.UserCustomLists")
		return nil, err
	}
	return lists, nil
}

// visible loads a list that viewerID may read. Private lists of other users
// are reported as missing.
func (s *ListService) visible(ctx context.Context, viewerID, listID int64) (*models.CustomList, error) {
	list, err := s.storage.GetCustom(ctx, listID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if !list.IsPublic && list.UserID != viewerID {
		return nil, ErrListNotFound
	}
	return list, nil
}

func (s *ListService) owned(ctx context.Context, userID, listID int64) (*models.CustomList, error) {
	list, err := s.storage.GetCustom(ctx, listID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	if list.UserID != userID {
		return nil, ErrForbidden
	}
	return list, nil
}

func (s *ListService) GetCustom(ctx context.Context, viewerID, listID int64) (*models.CustomList, error) {
	return s.visible(ctx, viewerID, listID)
}

func (s *ListService) UpdateCustom(ctx context.Context, userID, listID int64, name, description *string, isPublic *bool) (*models.CustomList, error) {
	const op = "lists.ListService.UpdateCustom"
	log := s.log.With("op", op, "user_id", userID, "list_id", listID)
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		name = &trimmed
	}
	if _, err := s.owned(ctx, userID, listID); err != nil {
		log.Info("update rejected", "err", err.Error())
		return nil, err
	}
	list, err := s.storage.UpdateCustom(ctx, listID, name, description, isPublic)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrListNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return list, nil
}

func (s *ListService) DeleteCustom(ctx context.Context, userID, listID int64) error {
	const op = "lists.ListService.DeleteCustom"
	log := s.log.With("op", op, "user_id", userID, "list_id", listID)
	if _, err := s.owned(ctx, userID, listID); err != nil {
		log.Info("delete rejected", "err", err.Error())
		return err
	}
	if err := s.storage.DeleteCustom(ctx, listID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrListNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *ListService) AddCustomItem(ctx context.Context, userID, listID int64, ct fields.ContentType, ref string) (*models.CustomListItem, error) {
	const op = "lists.ListService.AddCustomItem"
	log := s.log.With("op", op, "user_id", userID, "list_id", listID, "content_type", ct, "ref", ref)
	if _, err := s.owned(ctx, userID, listID); err != nil {
		log.Info("add rejected", "err", err.Error())
		return nil, err
	}
	contentID, err := s.resolver.Resolve(ctx, ct, ref, true)
	if err != nil {
		log.Info("resolving content", "err", err.Error())
		return nil, err
	}
	item, err := s.storage.AddCustomItem(ctx, listID, ct, contentID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			return nil, ErrAlreadyInList
		case errors.Is(err, storage.ErrReferenceNotFound):
			return nil, ErrListNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return item, nil
}

func (s *ListService) RemoveCustomItem(ctx context.Context, userID, listID, itemID int64) error {
	const op = "lists.ListService.RemoveCustomItem"
	log := s.log.With("op", op, "user_id", userID, "list_id", listID, "item_id", itemID)
	if _, err := s.owned(ctx, userID, listID); err != nil {
		log.Info("remove rejected", "err", err.Error())
		return err
	}
	if err := s.storage.RemoveCustomItem(ctx, listID, itemID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrItemNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *ListService) CustomItems(ctx context.Context, viewerID, listID int64) ([]models.CustomListItem, error) {
	if _, err := s.visible(ctx, viewerID, listID); err != nil {
		return nil, err
	}
	items, err := s.storage.CustomItems(ctx, listID)
	if err != nil {
		s.log.Error(err.Error(), "op", "lists.ListService.CustomItems")
		return nil, err
	}
	return items, nil
}
