package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-manager/core/loader"
	"catalog-manager/core/logger"
	"catalog-manager/core/middleware/auth"
	"catalog-manager/core/middleware/rayid"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/collection"
	"catalog-manager/feature/integrity"
	"catalog-manager/feature/license"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "catalog-manager/docs/swagger"
)

// @title Catalog Manager API
// @version 1.0
// @description API for reconciling a game's item catalog and tracking a player's collection.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration and data store
		rt, err := bootstrap(ctx)
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Load the catalog once so broken data files fail fast
		db, err := rt.store.Database(ctx)
		if err != nil {
			logg.Fatal("Failed to load catalog data", zap.String("location", rt.data.Location()), zap.Error(err))
		}
		logg.Info("Loaded catalog", zap.Int("items", len(db.Items)), zap.Int("catalogs", len(db.Catalogs)))

		// 3. Connect to the collection database
		gdb, repo, err := rt.connect(ctx)
		if err != nil {
			logg.Fatal("Failed to open collection database", zap.Error(err))
		}
		logg.Info("Connected to collection database", zap.String("driver", gdb.Dialector.Name()))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             rt.cfg.Server.BodyLimit(),
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		catalogFeature := catalog.NewFeature(rt.store, rt.data, rt.cfg.Data.ExportDir, logg)
		collectionFeature := collection.NewFeature(repo, logg)

		mgr.Register(catalogFeature)
		mgr.Register(collectionFeature)
		mgr.Register(license.NewFeature(catalogFeature.Service(), collectionFeature.Service(), logg))
		mgr.Register(integrity.NewFeature(rt.data, gdb, catalogFeature.Service(), logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		closeDatabase(gdb, logg)
	},
}

func closeDatabase(db *gorm.DB, logg *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logg.Warn("Failed to close collection database", zap.Error(err))
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
