package main

import (
	"errors"
	"os"

	"flip7/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const configPath = "experiments.yaml"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := experiments.DefaultConfig()
	if loaded, err := experiments.LoadConfig(configPath); err == nil {
		cfg = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Fatal().Err(err).Msg("invalid experiment config")
	}

	records, err := experiments.Run(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for _, r := range records {
		log.Info().Msgf("%+v", r)
	}
}
