package main

import (
	"net/http"

	"kutuphanem/proj/internal/lib/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(app.Http.MethodNotAllowed)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.cfg.Cors.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)

	router.Handle("/metrics", promhttp.Handler())
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(app.cfg.UploadsDir)))
	router.Handle("/uploads/*", uploads)

	router.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)

		r.Route("/auth", func(r chi.Router) {
			if app.cfg.Limiter.Enabled {
				r.Use(httprate.Limit(
					app.cfg.Limiter.AuthRequests,
					app.cfg.Limiter.AuthWindow,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(app.authLimitExceeded),
				))
			}
			r.Post("/register", app.register)
			r.Post("/login", app.login)
			r.Post("/forgot-password", app.forgotPassword)
			r.Post("/reset-password", app.resetPassword)
			r.With(app.requireAuthenticatedUser).Get("/me", app.me)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/search", app.searchUsers)
			r.Get("/{userId}", app.getUser)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Put("/{userId}", app.updateUser)
				r.Post("/{userId}/avatar", app.uploadAvatar)
			})
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/search", app.searchMovies)
			r.Get("/popular/list", app.popularMovies)
			r.Get("/top-rated/list", app.topRatedMovies)
			r.Get("/{id}", app.getMovie)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/search", app.searchBooks)
			r.Get("/{id}", app.getBook)
		})

		r.Route("/ratings", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Post("/", app.rate)
			r.Get("/user/{contentType}/{contentId}", app.getMyRating)
			r.Delete("/{contentType}/{contentId}", app.deleteRating)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/{contentType}/{contentId}", app.listReviews)
			r.Get("/{id}/comments", app.listComments)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Post("/", app.createReview)
				r.Put("/{id}", app.updateReview)
				r.Delete("/{id}", app.deleteReview)
				r.Post("/{id}/comments", app.addComment)
				r.Put("/{id}/comments/{commentId}", app.updateComment)
				r.Delete("/{id}/comments/{commentId}", app.deleteComment)
			})
		})

		r.Route("/lists", func(r chi.Router) {
			r.Get("/user/{userId}/{listType}", app.getUserList)
			r.Get("/custom/{userId}", app.getUserCustomLists)
			r.Get("/custom/{listId}/info", app.getCustomList)
			r.Get("/custom/{listId}/items", app.getCustomListItems)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Post("/user-list", app.addToUserList)
				r.Delete("/user-list", app.removeFromUserList)
				r.Post("/custom", app.createCustomList)
				r.Put("/custom/{listId}/info", app.updateCustomList)
				r.Delete("/custom/{listId}/info", app.deleteCustomList)
				r.Post("/custom/{listId}/add", app.addCustomListItem)
				r.Delete("/custom/{listId}/items/{itemId}", app.removeCustomListItem)
			})
		})

		r.Route("/follows/{userId}", func(r chi.Router) {
			r.Get("/followers", app.followers)
			r.Get("/following", app.following)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Post("/", app.follow)
				r.Delete("/", app.unfollow)
				r.Get("/status", app.followStatus)
			})
		})

		r.Route("/likes/{targetType}/{targetId}", func(r chi.Router) {
			r.Get("/count", app.likeCount)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Post("/", app.toggleLike)
				r.Get("/status", app.likeStatus)
			})
		})

		r.With(app.requireAuthenticatedUser).Get("/feed", app.getFeed)
		r.Get("/user-activities/{userId}", app.getUserActivities)

		r.Route("/search", func(r chi.Router) {
			r.Get("/", app.search)
			r.Get("/popular", app.searchPopular)
			r.Get("/top-rated", app.searchTopRated)
		})
	})
	return router
}

func (app *Application) authLimitExceeded(w http.ResponseWriter, r *http.Request) {
	metrics.RateLimitHits.WithLabelValues("auth").Inc()
	app.Http.TooManyRequests(w, r)
}
