package services

import (
	"log/slog"

	"kutuphanem/proj/internal/clients/catalog/googlebooks"
	"kutuphanem/proj/internal/clients/catalog/tmdb"
	"kutuphanem/proj/internal/config"
	"kutuphanem/proj/internal/mails"
	"kutuphanem/proj/internal/services/auth"
	"kutuphanem/proj/internal/services/catalog"
	"kutuphanem/proj/internal/services/feed"
	"kutuphanem/proj/internal/services/follows"
	"kutuphanem/proj/internal/services/likes"
	"kutuphanem/proj/internal/services/lists"
	"kutuphanem/proj/internal/services/ratings"
	"kutuphanem/proj/internal/services/reviews"
	"kutuphanem/proj/internal/services/search"
	"kutuphanem/proj/internal/services/users"
	"kutuphanem/proj/internal/storage/postgres"
	"kutuphanem/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth    *auth.AuthService
	Users   *users.UserService
	Catalog *catalog.CatalogService
	Ratings *ratings.RatingService
	Reviews *reviews.ReviewService
	Lists   *lists.ListService
	Follows *follows.FollowService
	Likes   *likes.LikeService
	Feed    *feed.FeedService
	Search  *search.SearchService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage) *Services {
	db := models.New(storage)

	var mailer *mails.Mailer
	if cfg.SMTPServer.Enabled() {
		mailer = mails.New(
			cfg.SMTPServer.Host,
			cfg.SMTPServer.Port,
			cfg.SMTPServer.Timeout,
			cfg.SMTPServer.Username,
			cfg.SMTPServer.Password,
			cfg.SMTPServer.Sender,
			cfg.SMTPServer.RetriesCount,
		)
	} else {
		log.Warn("smtp is not configured, password reset emails will not be sent")
	}

	tmdbClient := tmdb.New(log, cfg.Clients.TMDB)
	if !tmdbClient.Configured() {
		log.Warn("tmdb api key is not set, movie lookups will fail")
	}
	booksClient := googlebooks.New(log, cfg.Clients.GoogleBooks, cfg.FrontendURL)

	catalogService := catalog.New(log, db.Movie, db.Book, tmdbClient, booksClient)
	return &Services{
		Auth:    auth.New(log, cfg, db.User, mailer),
		Users:   users.New(log, db.User, cfg.UploadsDir),
		Catalog: catalogService,
		Ratings: ratings.New(log, db.Rating, catalogService),
		Reviews: reviews.New(log, db.Review, db.Comment, catalogService),
		Lists:   lists.New(log, db.List, catalogService),
		Follows: follows.New(log, db.Follow),
		Likes:   likes.New(log, db.Like),
		Feed:    feed.New(log, db.Follow, db.Activity),
		Search:  search.New(log, db.Movie, db.Book, tmdbClient, booksClient),
	}
}
