package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"aifinder/internal/config"
	"aifinder/internal/logging"
)

func main() {
	envErr := godotenv.Load()

	command := flag.String("command", "up", "Migration command: up, down, down-to, status, create")
	name := flag.String("name", "", "Migration name (required for create)")
	targetVersion := flag.Int64("version", 0, "Target version for down-to command")
	migrationsDir := flag.String("dir", "migrations", "Migrations directory")
	flag.Parse()

	cfg := config.Load()
	logging.Setup(cfg)
	if envErr != nil {
		log.Debug().Msg(".env not loaded, relying on environment")
	}

	dsn := cfg.Database.DSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database connection")
	}

	if err := db.Ping(); err != nil {
		if *command == "up" && isDatabaseDoesNotExistError(err) {
			if err := createDatabase(cfg); err != nil {
				log.Fatal().Err(err).Msg("Failed to create database")
			}
			db, err = sql.Open("postgres", dsn)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to open database connection")
			}
			if err := db.Ping(); err != nil {
				log.Fatal().Err(err).Msg("Failed to connect to database")
			}
		} else {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
	}
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		log.Fatal().Err(err).Msg("Failed to set dialect")
	}

	switch *command {
	case "up":
		if err := goose.Up(db, *migrationsDir); err != nil {
			db.Close()
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Migrations applied successfully")
	case "down":
		if err := goose.Down(db, *migrationsDir); err != nil {
			db.Close()
			log.Fatal().Err(err).Msg("Failed to rollback migrations")
		}
		log.Info().Msg("Migrations rolled back successfully")
	case "down-to":
		if err := goose.DownTo(db, *migrationsDir, *targetVersion); err != nil {
			db.Close()
			log.Fatal().Err(err).Int64("version", *targetVersion).Msg("Failed to rollback migrations")
		}
		log.Info().Int64("version", *targetVersion).Msg("Migrations rolled back")
	case "status":
		if err := goose.Status(db, *migrationsDir); err != nil {
			db.Close()
			log.Fatal().Err(err).Msg("Failed to get migration status")
		}
	case "create":
		if *name == "" {
			db.Close()
			log.Fatal().Msg("Migration name is required for create command")
		}
		if err := goose.Create(db, *migrationsDir, *name, "sql"); err != nil {
			db.Close()
			log.Fatal().Err(err).Msg("Failed to create migration")
		}
		log.Info().Str("name", *name).Msg("Created migration")
	default:
		db.Close()
		log.Fatal().Str("command", *command).Msg("Unknown command")
	}
	db.Close()
}

func isDatabaseDoesNotExistError(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "3D000"
}

func createDatabase(cfg *config.Config) error {
	admin := cfg.Database
	admin.Name = "postgres"
	dsn := admin.DSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf("CREATE DATABASE %s", cfg.Database.Name)
	_, err = db.Exec(query)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P04" {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}

	log.Info().Str("database", cfg.Database.Name).Msg("Database created")
	return nil
}
