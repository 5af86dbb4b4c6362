package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/recipebox/backend/api"
	"github.com/recipebox/backend/config"
	"github.com/recipebox/backend/database"
	"github.com/recipebox/backend/services"
)

func main() {
	log.Info().Msg("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	cfg := config.New()

	db, err := database.Open(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Error connecting to database")
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Error().Err(err).Msg("Error testing database connection")
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Error migrating schema")
		os.Exit(1)
	}

	currentDB := database.New(db)

	// If importing the ingredient catalog, run the import and exit
	if csvPath := config.GetString(cfg, "IMPORT_INGREDIENTS", ""); csvPath != "" {
		imported, skipped, err := services.ImportIngredientsCSV(currentDB.IngredientRepo(), csvPath)
		if err != nil {
			log.Error().Err(err).Msg("Ingredient import failed")
			os.Exit(1)
		}
		log.Info().
			Int("imported", imported).
			Int("skipped", skipped).
			Str("path", csvPath).
			Msg("Ingredient import finished")
		return
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB)
	if err != nil {
		log.Error().Err(err).Msg("Error initializing server")
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
