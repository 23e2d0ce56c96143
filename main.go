package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/senku-sen/event-management-system/auth"
	"github.com/senku-sen/event-management-system/config"
	"github.com/senku-sen/event-management-system/controllers"
	"github.com/senku-sen/event-management-system/middleware"
	"github.com/senku-sen/event-management-system/services"
	"github.com/senku-sen/event-management-system/store"
	"github.com/senku-sen/event-management-system/utils"
	"github.com/senku-sen/event-management-system/validators"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if err := validators.Register(); err != nil {
		log.WithError(err).Fatal("failed to register validators")
	}

	client, db, err := config.ConnectDB(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.WithField("database", cfg.MongoDB).Info("connected to MongoDB")

	if err := config.EnsureIndexes(context.Background(), db); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}

	userStore := store.NewMongoUserStore(db)
	eventStore := store.NewMongoEventStore(db)
	groupStore := store.NewMongoGroupStore(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, cfg.TokenIssuer)
	hasher := utils.NewHasher(cfg.BcryptCost)

	userService := services.NewUserService(userStore, hasher, tokens, log)
	eventService := services.NewEventService(eventStore, userStore, groupStore, log)
	groupService := services.NewGroupService(groupStore, eventStore, userStore, log)

	userController := controllers.NewUserController(userService, log)
	eventController := controllers.NewEventController(eventService, log)
	groupController := controllers.NewGroupController(groupService, log)

	router := gin.Default()

	authed := middleware.Auth(tokens, userStore, log)
	admin := middleware.RequireAdmin()

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", middleware.OptionalAuth(tokens, userStore, log), userController.Register)
			users.POST("/login", userController.Login)
			users.GET("/profile", authed, userController.Profile)
			users.GET("", authed, admin, userController.List)
			users.GET("/search", authed, admin, userController.Search)
			users.PUT("/role", authed, admin, userController.UpdateRole)
			users.PUT("/password", authed, admin, userController.ResetPassword)
		}

		events := api.Group("/events", authed)
		{
			events.GET("", eventController.List)
			events.GET("/mine", eventController.ListMine)
			events.GET("/:id", eventController.Get)
			events.POST("", eventController.Create)
			events.PUT("/:id", eventController.Update)
			events.DELETE("/:id", eventController.Delete)
		}

		groups := api.Group("/groups", authed)
		{
			groups.GET("", groupController.List)
			groups.GET("/:id", groupController.Get)
			groups.POST("", admin, groupController.Create)
			groups.PUT("/:id", admin, groupController.Update)
			groups.DELETE("/:id", admin, groupController.Delete)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Error("error disconnecting MongoDB")
	}

	log.Info("server exited")
}
