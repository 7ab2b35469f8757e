package dal

import (
	"context"
	"fmt"

	"github.com/couchbase/gocb/v2"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/rs/zerolog/log"
)

// PatientRepo handles patient documents.
type PatientRepo struct {
	store *Store
}

// NewPatientRepo creates a patient repository.
func NewPatientRepo(store *Store) *PatientRepo {
	return &PatientRepo{store: store}
}

func patientKey(id string) string {
	return fmt.Sprintf("%s::%s", model.DocTypePatient, id)
}

// Get retrieves one patient by id.
func (r *PatientRepo) Get(ctx context.Context, id string) (*model.Patient, error) {
	var p model.Patient
	if err := r.store.Get(ctx, patientKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert persists a patient. Defaults are applied and the emergency contact
// list is normalized before the write.
func (r *PatientRepo) Upsert(ctx context.Context, p *model.Patient) error {
	p.ApplyDefaults()
	p.NormalizeEmergencyContacts()
	return r.store.Upsert(ctx, patientKey(p.ID), p)
}

// List returns active patients with offset pagination.
func (r *PatientRepo) List(ctx context.Context, limit, offset int) ([]*model.Patient, error) {
	statement := fmt.Sprintf(
		"SELECT d.* FROM `%s` AS d WHERE d.docType = $1 AND d.isActive = true ORDER BY d.lastName, d.firstName LIMIT $2 OFFSET $3",
		r.store.BucketName(),
	)

	var out []*model.Patient
	err := r.store.Query(ctx, statement, []interface{}{model.DocTypePatient, limit, offset}, func(rows *gocb.QueryResult) error {
		for rows.Next() {
			var p model.Patient
			if err := rows.Row(&p); err != nil {
				log.Warn().Err(err).Msg("Failed to read patient row")
				continue
			}
			out = append(out, &p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
