package googlebooks

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"kutuphanem/proj/internal/clients/catalog"
	"kutuphanem/proj/internal/config"
	"kutuphanem/proj/internal/domain/models"
)

const SearchPageSize = 20

type Client struct {
	api    *catalog.Client
	apiKey string
}

// New builds a Google Books client. The API key is optional; referer is sent
// with each request since browser-restricted keys check it.
func New(log *slog.Logger, cfg config.GoogleBooksClient, referer string, opts ...catalog.Option) *Client {
	if referer != "" {
		opts = append([]catalog.Option{catalog.WithHeader("Referer", referer)}, opts...)
	}
	return &Client{
		api:    catalog.New(log, "google_books", cfg.BaseURL, cfg.Timeout, opts...),
		apiKey: cfg.ApiKey,
	}
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type VolumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors,omitempty"`
	Publisher           string               `json:"publisher,omitempty"`
	PublishedDate       string               `json:"publishedDate,omitempty"`
	Description         string               `json:"description,omitempty"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers,omitempty"`
	PageCount           int32                `json:"pageCount,omitempty"`
	Categories          []string             `json:"categories,omitempty"`
	ImageLinks          *ImageLinks          `json:"imageLinks,omitempty"`
	AverageRating       float64              `json:"averageRating,omitempty"`
	RatingsCount        int                  `json:"ratingsCount,omitempty"`
	Language            string               `json:"language,omitempty"`
}

type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type Volumes struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

func (c *Client) query(extra url.Values) url.Values {
	q := url.Values{}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	for k, v := range extra {
		q[k] = v
	}
	return q
}

// Book fetches one volume and returns the normalized record, not yet persisted.
func (c *Client) Book(ctx context.Context, volumeID string) (*models.Book, error) {
	var v Volume
	if err := c.api.Get(ctx, "/volumes/"+url.PathEscape(volumeID), c.query(nil), &v); err != nil {
		return nil, err
	}
	info := v.VolumeInfo
	book := &models.Book{
		GoogleBooksID: volumeID,
		Title:         info.Title,
		Description:   optional(info.Description),
		PublishedDate: optional(year(info.PublishedDate)),
		CoverURL:      cover(info.ImageLinks),
		Authors:       nonNil(info.Authors),
		Categories:    nonNil(info.Categories),
		Publisher:     optional(info.Publisher),
	}
	if len(info.IndustryIdentifiers) > 0 {
		book.ISBN = optional(info.IndustryIdentifiers[0].Identifier)
	}
	if info.PageCount > 0 {
		pc := info.PageCount
		book.PageCount = &pc
	}
	return book, nil
}

// Search queries volumes; page is 1-based.
func (c *Client) Search(ctx context.Context, query string, page, maxResults int) (*Volumes, error) {
	if maxResults < 1 || maxResults > 40 {
		maxResults = SearchPageSize
	}
	if page < 1 {
		page = 1
	}
	var vs Volumes
	err := c.api.Get(ctx, "/volumes", c.query(url.Values{
		"q":          {query},
		"startIndex": {strconv.Itoa((page - 1) * maxResults)},
		"maxResults": {strconv.Itoa(maxResults)},
	}), &vs)
	if err != nil {
		return nil, err
	}
	if vs.Items == nil {
		vs.Items = []Volume{}
	}
	return &vs, nil
}

// ByYear lists volumes published in year.
func (c *Client) ByYear(ctx context.Context, year, page int) (*Volumes, error) {
	return c.Search(ctx, "publishedDate:"+strconv.Itoa(year), page, SearchPageSize)
}

func Summary(v Volume) models.BookSummary {
	return models.BookSummary{
		ID:            v.ID,
		Title:         v.VolumeInfo.Title,
		PublishedDate: optional(v.VolumeInfo.PublishedDate),
		PosterURL:     cover(v.VolumeInfo.ImageLinks),
		Type:          "book",
	}
}

func cover(links *ImageLinks) *string {
	if links == nil {
		return nil
	}
	if links.Thumbnail != "" {
		return optional(links.Thumbnail)
	}
	return optional(links.SmallThumbnail)
}

func year(date string) string {
	y, _, _ := strings.Cut(date, "-")
	return y
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
