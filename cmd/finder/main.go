package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"aifinder/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := cli.Run(ctx, os.Stdout, os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("finder failed")
		stop()
		os.Exit(1)
	}
}
