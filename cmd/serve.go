package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"student-records-api/database"
	FiberApp "student-records-api/fiber"
	"student-records-api/middleware"
	"student-records-api/route"
	routeMongo "student-records-api/route/mongodb"
	routePostgre "student-records-api/route/postgresql"
	"student-records-api/utils"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "Port to listen on (env PORT)")
	if err := viper.BindPFlag("port", serveCmd.Flags().Lookup("port")); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Connect to the relational store
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	level.Info(logger).Log("msg", "connected to database", "driver", cfg.DBDriver)

	// 2. Connect to MongoDB when simulation logging is configured
	var mongoDB *mongo.Database
	if cfg.MongoEnabled() {
		client, mdb, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		mongoDB = mdb
		level.Info(logger).Log("msg", "connected to MongoDB", "database", cfg.MongoDB)
	}

	// 3. Setup Fiber app and routes
	tokens := utils.NewTokenMaker(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.TokenTTL, cfg.RefreshTTL)
	auth := middleware.AuthRequired(tokens, middleware.NewTokenCache(cfg.TokenCacheTTL))

	app := FiberApp.SetupFiber(logger)
	route.SetupSystemRoutes(app, mongoDB != nil)
	routePostgre.SetupPostgresRoutes(app, db, tokens, auth)
	routeMongo.SetupMongoRoutes(app, mongoDB, logger, auth)

	// 4. Serve until a signal arrives, then shut down gracefully
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		level.Info(logger).Log("msg", "server running", "port", cfg.Port)
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), FiberApp.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "server forced to shutdown", "err", err)
			return err
		}
		level.Info(logger).Log("msg", "server stopped")
		return nil
	})

	return g.Wait()
}
