package main

import (
	"context"
	"time"

	"github.com/medatlas/medatlas/internal/config"
	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/seed"
	"github.com/medatlas/medatlas/pkg/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	logging.SetAppName("medatlas-seed")
	if err := logging.Setup(cfg.ElasticsearchURL, cfg.LogIndex, cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	log.Info().Msg("Starting demo dataset load")

	conn, err := dal.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to document store")
	}
	defer conn.Close()

	store := dal.NewStore(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	err = seed.Run(ctx, seed.Stores{
		Patients:  dal.NewPatientRepo(store),
		Doctors:   dal.NewDoctorRepo(store),
		Hospitals: dal.NewHospitalRepo(store),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}
