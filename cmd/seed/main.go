package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"aifinder/internal/catalog"
	"aifinder/internal/config"
	"aifinder/internal/logging"
	"aifinder/internal/repository"
)

func main() {
	_ = godotenv.Load()

	file := flag.String("file", "", "Catalog JSON or YAML file (defaults to the built-in catalog)")
	flag.Parse()

	cfg := config.Load()
	logging.Setup(cfg)

	ctx := context.Background()

	var loader catalog.Loader = catalog.EmbeddedLoader{}
	if *file != "" {
		loader = catalog.FileLoader{Path: *file}
	}

	tools, err := loader.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read catalog")
	}

	// Reject the whole file on any invalid record before touching the database.
	store, err := catalog.NewStore(tools)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog is invalid")
	}

	db, err := repository.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Int("tools", store.Len()).Msg("Starting seed process...")

	repo := repository.NewToolRepository(db.DB())
	if err := repo.ReplaceAll(ctx, store.Tools()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed tools")
	}

	log.Info().Msg("Seed process completed!")
}
