package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/feednest/backend/src/controllers"
	"github.com/feednest/backend/src/lib"
	"github.com/feednest/backend/src/metrics"
	"github.com/feednest/backend/src/middleware"
	"github.com/feednest/backend/src/routes"
	"github.com/feednest/backend/src/service"
	"github.com/feednest/backend/src/store"
)

func main() {
	cfg, err := lib.LoadConfig()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	if err := lib.InitLogger(cfg.LogLevel); err != nil {
		slog.Error("initializing logger", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := lib.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		slog.Error("connecting to MongoDB", "error", err)
		os.Exit(1)
	}

	posts := store.NewMongoPosts(db)
	users := store.NewMongoUsers(db)

	postService := service.NewPostService(posts)
	postController := controllers.NewPostController(postService)
	auth := middleware.NewAuth(users, cfg.JWTSecret)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.PostRoutes(app, auth, postController)

	metricsServer, err := metrics.NewHTTPServer(cfg.MetricsAddr)
	if err != nil {
		slog.Error("starting metrics server", "error", err)
		os.Exit(1)
	}

	go func() {
		slog.Info("server is running", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("shutting down server", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutting down metrics server", "error", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		slog.Error("closing MongoDB connection", "error", err)
	}
}
