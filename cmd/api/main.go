package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/middleware"
	"marketplace/internal/modules/auth"
	"marketplace/internal/modules/offer"
	"marketplace/internal/modules/order"
	"marketplace/internal/modules/profile"
	"marketplace/internal/modules/review"
	"marketplace/internal/modules/stats"
	"marketplace/internal/repository"
	"marketplace/internal/storage"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	files, err := storage.New(cfg.Storage)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize file storage")
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokenRepo))
	profileHandler := profile.NewHandler(profile.NewService(profileRepo, userRepo, files))
	offerHandler := offer.NewHandler(offer.NewService(offerRepo, files))
	orderHandler := order.NewHandler(order.NewService(orderRepo, offerRepo, userRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, userRepo))
	statsHandler := stats.NewHandler(stats.NewService(reviewRepo, profileRepo, offerRepo))

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	if local, ok := files.(*storage.LocalStore); ok {
		r.Static("/static", local.Dir())
	}

	api := r.Group("/api")
	api.Use(middleware.Identify(tokenRepo, userRepo))
	{
		// public: auth, offer listing, stats, and the order-by-id routes
		// (those report not-found ahead of any auth failure)
		authHandler.RegisterRoutes(api)
		statsHandler.RegisterRoutes(api)

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth())

		offerHandler.RegisterRoutes(api, protected)
		orderHandler.RegisterRoutes(api, protected)
		reviewHandler.RegisterRoutes(protected)
		profileHandler.RegisterRoutes(protected)
	}

	logrus.WithField("addr", cfg.Addr).Info("starting marketplace API")
	if err := r.Run(cfg.Addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
