package main

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"kutuphanem/proj/internal/domain/fields"
	"kutuphanem/proj/internal/domain/models"
	"kutuphanem/proj/internal/services/catalog"
	"kutuphanem/proj/internal/storage"
)

func pageOf[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}

func (m *memFollows) FollowingIDs(_ context.Context, id int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []int64{}
	for e := range m.edges {
		if e.from == id {
			ids = append(ids, e.to)
		}
	}
	return ids, nil
}

// memResolver hands out local ids for content refs. Refs are only known once
// they were fetched.
type memResolver struct {
	mu  sync.Mutex
	ids map[string]int64
}

func (m *memResolver) Resolve(_ context.Context, ct fields.ContentType, ref string, fetch bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ct == fields.ContentMovie {
		if id, err := strconv.ParseInt(ref, 10, 64); err != nil || id <= 0 {
			return 0, catalog.ErrInvalidRef
		}
	}
	key := string(ct) + ":" + ref
	if id, ok := m.ids[key]; ok {
		return id, nil
	}
	if !fetch {
		return 0, catalog.ErrContentNotFound
	}
	id := int64(len(m.ids) + 1)
	m.ids[key] = id
	return id, nil
}

type memReviews struct {
	mu      sync.Mutex
	reviews map[int64]models.Review
	nextID  int64
}

func (m *memReviews) Get(_ context.Context, id int64) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &r, nil
}

func (m *memReviews) Insert(_ context.Context, userID int64, ct fields.ContentType, contentID int64, text string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	now := time.Now()
	r := models.Review{ID: m.nextID, UserID: userID, ContentType: ct, ContentID: contentID, ReviewText: text, CreatedAt: now, UpdatedAt: now}
	m.reviews[r.ID] = r
	return &r, nil
}

func (m *memReviews) UpdateText(_ context.Context, id int64, text string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	r.ReviewText, r.UpdatedAt = text, time.Now()
	m.reviews[id] = r
	return &r, nil
}

func (m *memReviews) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

// newest returns the reviews matching keep, newest first.
func (m *memReviews) newest(keep func(models.Review) bool) []models.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for _, r := range m.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *memReviews) ListForContent(_ context.Context, ct fields.ContentType, contentID int64, limit, offset int) ([]models.Review, int64, error) {
	all := m.newest(func(r models.Review) bool { return r.ContentType == ct && r.ContentID == contentID })
	return pageOf(all, limit, offset), int64(len(all)), nil
}

type memComments struct {
	mu       sync.Mutex
	comments map[int64]models.Comment
	nextID   int64
}

func (m *memComments) Get(_ context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

func (m *memComments) Insert(_ context.Context, reviewID, userID int64, text string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	now := time.Now()
	c := models.Comment{ID: m.nextID, ReviewID: reviewID, UserID: userID, CommentText: text, CreatedAt: now, UpdatedAt: now}
	m.comments[c.ID] = c
	return &c, nil
}

func (m *memComments) UpdateText(_ context.Context, id int64, text string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c.CommentText, c.UpdatedAt = text, time.Now()
	m.comments[id] = c
	return &c, nil
}

func (m *memComments) Delete(_ context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	delete(m.comments, id)
	return &c, nil
}

func (m *memComments) ListForReview(_ context.Context, reviewID int64, limit, offset int) ([]models.Comment, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []models.Comment{}
	for _, c := range m.comments {
		if c.ReviewID == reviewID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return pageOf(all, limit, offset), int64(len(all)), nil
}

// memActivities serves review activity straight from memReviews. Ratings are
// not tracked.
type memActivities struct {
	reviews *memReviews
}

func (m memActivities) RecentRatings(context.Context, []int64, int) ([]models.Activity, error) {
	return []models.Activity{}, nil
}

func (m memActivities) RecentReviews(_ context.Context, userIDs []int64, limit int) ([]models.Activity, error) {
	wanted := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	rs := m.reviews.newest(func(r models.Review) bool { return wanted[r.UserID] })
	out := make([]models.Activity, 0, len(rs))
	for _, r := range pageOf(rs, limit, 0) {
		text := r.ReviewText
		out = append(out, models.Activity{
			ActivityID:   r.ID,
			ActivityType: fields.ActivityReview,
			UserID:       r.UserID,
			ContentType:  r.ContentType,
			ContentID:    r.ContentID,
			ReviewText:   &text,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out, nil
}

type listKey struct {
	user    int64
	ct      fields.ContentType
	content int64
	lt      fields.ListType
}

type memLists struct {
	mu      sync.Mutex
	items   map[listKey]models.ListItem
	custom  map[int64]models.CustomList
	entries map[int64]models.CustomListItem
	nextID  int64
}

func newMemLists() *memLists {
	return &memLists{
		items:   map[listKey]models.ListItem{},
		custom:  map[int64]models.CustomList{},
		entries: map[int64]models.CustomListItem{},
	}
}

func (m *memLists) AddItem(_ context.Context, userID int64, ct fields.ContentType, contentID int64, lt fields.ListType) (*models.ListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := listKey{userID, ct, contentID, lt}
	if _, ok := m.items[k]; ok {
		return nil, storage.ErrConflict
	}
	m.nextID++
	item := models.ListItem{ID: m.nextID, UserID: userID, ContentType: ct, ContentID: contentID, ListType: lt, CreatedAt: time.Now()}
	m.items[k] = item
	return &item, nil
}

func (m *memLists) RemoveItem(_ context.Context, userID int64, ct fields.ContentType, contentID int64, lt fields.ListType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, listKey{userID, ct, contentID, lt})
	return nil
}

func (m *memLists) Items(_ context.Context, userID int64, lt fields.ListType, limit, offset int) ([]models.ListItem, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []models.ListItem{}
	for k, item := range m.items {
		if k.user == userID && k.lt == lt {
			all = append(all, item)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return pageOf(all, limit, offset), int64(len(all)), nil
}

func (m *memLists) CreateCustom(_ context.Context, userID int64, name string, description *string, isPublic bool) (*models.CustomList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	now := time.Now()
	l := models.CustomList{ID: m.nextID, UserID: userID, Name: name, Description: description, IsPublic: isPublic, CreatedAt: now, UpdatedAt: now}
	m.custom[l.ID] = l
	return &l, nil
}

func (m *memLists) GetCustom(_ context.Context, id int64) (*models.CustomList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.custom[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &l, nil
}

func (m *memLists) CustomByUser(_ context.Context, userID int64, includePrivate bool) ([]models.CustomList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CustomList{}
	for _, l := range m.custom {
		if l.UserID == userID && (l.IsPublic || includePrivate) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memLists) UpdateCustom(_ context.Context, id int64, name, description *string, isPublic *bool) (*models.CustomList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.custom[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if name != nil {
		l.Name = *name
	}
	if description != nil {
		l.Description = description
	}
	if isPublic != nil {
		l.IsPublic = *isPublic
	}
	l.UpdatedAt = time.Now()
	m.custom[id] = l
	return &l, nil
}

func (m *memLists) DeleteCustom(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.custom[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.custom, id)
	for eid, e := range m.entries {
		if e.CustomListID == id {
			delete(m.entries, eid)
		}
	}
	return nil
}

func (m *memLists) AddCustomItem(_ context.Context, listID int64, ct fields.ContentType, contentID int64) (*models.CustomListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.custom[listID]; !ok {
		return nil, storage.ErrReferenceNotFound
	}
	for _, e := range m.entries {
		if e.CustomListID == listID && e.ContentType == ct && e.ContentID == contentID {
			return nil, storage.ErrConflict
		}
	}
	m.nextID++
	e := models.CustomListItem{ID: m.nextID, CustomListID: listID, ContentType: ct, ContentID: contentID, AddedAt: time.Now()}
	m.entries[e.ID] = e
	return &e, nil
}

func (m *memLists) RemoveCustomItem(_ context.Context, listID, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[itemID]
	if !ok || e.CustomListID != listID {
		return storage.ErrNotFound
	}
	delete(m.entries, itemID)
	return nil
}

func (m *memLists) CustomItems(_ context.Context, listID int64) ([]models.CustomListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CustomListItem{}
	for _, e := range m.entries {
		if e.CustomListID == listID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// rankedIndex stands in for the local content cache used by search.
type rankedIndex struct {
	ranked []models.RankedContent
}

type movieIndex struct{ rankedIndex }

func (i movieIndex) Filter(context.Context, *int, *float64, *string, int) ([]models.MovieSummary, error) {
	return []models.MovieSummary{{ID: 603, Title: "The Matrix", Type: "movie"}}, nil
}

func (i movieIndex) RatedAtLeast(context.Context, []int64, float64) ([]models.MovieSummary, error) {
	return []models.MovieSummary{}, nil
}

type bookIndex struct{ rankedIndex }

func (i bookIndex) Filter(context.Context, *int, *float64, *string, int) ([]models.BookSummary, error) {
	return []models.BookSummary{}, nil
}

func (i bookIndex) RatedAtLeast(context.Context, []string, float64) ([]models.BookSummary, error) {
	return []models.BookSummary{}, nil
}

func (i rankedIndex) Popular(_ context.Context, limit int) ([]models.RankedContent, error) {
	return pageOf(i.ranked, limit, 0), nil
}

func (i rankedIndex) TopRated(_ context.Context, limit int) ([]models.RankedContent, error) {
	return pageOf(i.ranked, limit, 0), nil
}
