package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"picshare/internal/handler"
	"picshare/internal/httputil"
	authmw "picshare/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	FollowHandler       *handler.FollowHandler
	FeedHandler         *handler.FeedHandler
	PostHandler         *handler.PostHandler
	StoryHandler        *handler.StoryHandler
	NotificationHandler *handler.NotificationHandler
	DiscoverHandler     *handler.DiscoverHandler
	JWTSecret           string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/users", func(r chi.Router) {
		// Public: account lifecycle
		r.Post("/", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Get("/verify", cfg.AuthHandler.Verify)
		r.Post("/logout", cfg.AuthHandler.Logout)

		// Protected: everything that acts on or reads the social graph
		r.Group(func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

			r.Get("/all/{userId}", cfg.UserHandler.GetAll)
			r.Patch("/avatar", cfg.UserHandler.UpdateAvatar)

			r.Get("/{userId}/followers", cfg.FollowHandler.GetFollowers)
			r.Get("/{userId}/following", cfg.FollowHandler.GetFollowing)
			r.Post("/{userId}/follow", cfg.FollowHandler.Follow)
			r.Delete("/{userId}/follow", cfg.FollowHandler.Unfollow)
		})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Post("/", cfg.PostHandler.Create)
		r.Get("/feed/{userId}", cfg.FeedHandler.GetFeed)
		r.Get("/user/{userId}", cfg.FeedHandler.GetAuthorFeed)
		r.Patch("/{id}/likes", cfg.PostHandler.ToggleLike)
		r.Post("/{postId}/comments", cfg.PostHandler.AddComment)
	})

	r.Route("/stories", func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Post("/", cfg.StoryHandler.Create)
		r.Get("/feed/{userId}", cfg.FeedHandler.GetStoriesFeed)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Post("/", cfg.NotificationHandler.Create)
		r.Get("/{userId}", cfg.NotificationHandler.GetAllForUser)
	})

	r.Route("/apis", func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Get("/movies", cfg.DiscoverHandler.SearchMovies)
		r.Get("/videogames", cfg.DiscoverHandler.SearchGames)
		r.Get("/books", cfg.DiscoverHandler.SearchBooks)
		r.Get("/music", cfg.DiscoverHandler.SearchMusic)
	})

	return r
}
