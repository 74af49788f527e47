package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/portfolio-admin-backend/api"
	"github.com/rpupo63/portfolio-admin-backend/config"
	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/i18n"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/services"
	"github.com/rpupo63/portfolio-admin-backend/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel, cfg.LogFormat)

	log.Info().Str("dbType", cfg.DBType).Str("assetBackend", cfg.AssetBackend).Msg("Initializing app...")

	db, err := database.Open(database.Options{
		DSN:         cfg.DSN(),
		ReplicaDSNs: cfg.ReplicaDSNs,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	currentDB := database.New(db)
	if err := currentDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	// If generating models, run generation and exit
	if cfg.GenerateModels {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db, cfg.GeneratedOutDir); err != nil {
			log.Fatal().Err(err).Msg("Model generation failed")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if cfg.GenerateReport {
		log.Info().Msg("Generating column mismatch report...")
		models.GenerateColumnMismatchReport(db)
		return
	}

	if cfg.AutoMigrate {
		log.Info().Msg("Running database migration...")
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Database migration failed")
		}
	}

	assets, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing asset store")
	}

	locales, err := i18n.Load(cfg.DefaultLocale)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading message catalogs")
	}

	projects := services.NewProjectService(
		currentDB.ProjectRepo(),
		currentDB.TechnologyRepo(),
		currentDB.TypeRepo(),
		assets,
		locales,
		cfg.MaxUploadBytes,
	)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(cfg, api.Dependencies{
		Projects: projects,
		Locales:  locales,
		DB:       currentDB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupLogger configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogger(level, format string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	if strings.ToLower(format) == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
