package seed

import (
	"context"

	"github.com/medatlas/medatlas/internal/model"
	"github.com/rs/zerolog/log"
)

// progressEvery controls how often the loader logs progress.
const progressEvery = 10

// Stores is the persistence surface the loader writes through.
type Stores struct {
	Patients interface {
		Upsert(ctx context.Context, p *model.Patient) error
	}
	Doctors interface {
		Upsert(ctx context.Context, d *model.Doctor) error
	}
	Hospitals interface {
		Upsert(ctx context.Context, h *model.Hospital) error
	}
}

// Run loads the bundled demo dataset through the repositories. Re-running is
// safe; documents are upserted by fixed ids.
func Run(ctx context.Context, stores Stores) error {
	hospitals := DemoHospitals()
	for i, h := range hospitals {
		if err := stores.Hospitals.Upsert(ctx, h); err != nil {
			return err
		}
		logProgress("hospitals", i+1, len(hospitals))
	}

	doctors := DemoDoctors()
	for i, d := range doctors {
		if err := stores.Doctors.Upsert(ctx, d); err != nil {
			return err
		}
		logProgress("doctors", i+1, len(doctors))
	}

	patients := DemoPatients()
	for i, p := range patients {
		if err := stores.Patients.Upsert(ctx, p); err != nil {
			return err
		}
		logProgress("patients", i+1, len(patients))
	}

	log.Info().
		Int("hospitals", len(hospitals)).
		Int("doctors", len(doctors)).
		Int("patients", len(patients)).
		Msg("Demo dataset loaded")
	return nil
}

func logProgress(kind string, done, total int) {
	if done%progressEvery == 0 || done == total {
		log.Info().Str("kind", kind).Int("done", done).Int("total", total).Msg("Seeding progress")
	}
}
