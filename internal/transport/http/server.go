package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"picshare/internal/config"
	"picshare/internal/database"
	"picshare/internal/handler"
	"picshare/internal/repository"
	"picshare/internal/service"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Repositories
	userRepo := repository.NewUserRepository(db, cfg.DefaultAvatarURL)
	followRepo := repository.NewFollowRepository(db, cfg.DefaultAvatarURL)
	postRepo := repository.NewPostRepository(db, cfg.DefaultAvatarURL)
	storyRepo := repository.NewStoryRepository(db, cfg.DefaultAvatarURL)
	notifRepo := repository.NewNotificationRepository(db, cfg.DefaultAvatarURL)

	// 4. Services
	mediaService, err := service.NewMediaService(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to init media service: %w", err)
	}
	userService := service.NewUserService(userRepo, followRepo)
	authService := service.NewAuthService(cfg)
	followService := service.NewFollowService(followRepo)
	feedService := service.NewFeedService(postRepo, storyRepo)
	postService := service.NewPostService(postRepo, db)
	storyService := service.NewStoryService(storyRepo)
	notifService := service.NewNotificationService(notifRepo)
	discoverService := service.NewDiscoverService(cfg)

	// 5. Router
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService, cfg),
		UserHandler:         handler.NewUserHandler(userService, mediaService),
		FollowHandler:       handler.NewFollowHandler(followService),
		FeedHandler:         handler.NewFeedHandler(feedService),
		PostHandler:         handler.NewPostHandler(postService, mediaService),
		StoryHandler:        handler.NewStoryHandler(storyService, mediaService),
		NotificationHandler: handler.NewNotificationHandler(notifService),
		DiscoverHandler:     handler.NewDiscoverHandler(discoverService),
		JWTSecret:           cfg.JWTSecret,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
