package dal

import (
	"context"
	"fmt"

	"github.com/couchbase/gocb/v2"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/rs/zerolog/log"
)

// DoctorFilter narrows doctor queries. Zero values mean "no filter".
type DoctorFilter struct {
	Specialization string
	Language       string
	Insurance      string
	HospitalID     string
	MinRating      float64
}

// DoctorRepo handles doctor documents.
type DoctorRepo struct {
	store *Store
}

// NewDoctorRepo creates a doctor repository.
func NewDoctorRepo(store *Store) *DoctorRepo {
	return &DoctorRepo{store: store}
}

func doctorKey(id string) string {
	return fmt.Sprintf("%s::%s", model.DocTypeDoctor, id)
}

// Get retrieves one doctor by id.
func (r *DoctorRepo) Get(ctx context.Context, id string) (*model.Doctor, error) {
	var d model.Doctor
	if err := r.store.Get(ctx, doctorKey(id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Upsert persists a doctor. Defaults are applied and the stored rating fields
// are recomputed from the public reviews before the write.
func (r *DoctorRepo) Upsert(ctx context.Context, d *model.Doctor) error {
	d.ApplyDefaults()
	d.RecalculateRating()
	return r.store.Upsert(ctx, doctorKey(d.ID), d)
}

// List returns active doctors matching the filter, with offset pagination.
func (r *DoctorRepo) List(ctx context.Context, f DoctorFilter, limit, offset int) ([]*model.Doctor, error) {
	statement := fmt.Sprintf(
		"SELECT d.* FROM `%s` AS d WHERE d.docType = $1 AND d.isActive = true",
		r.store.BucketName(),
	)
	params := []interface{}{model.DocTypeDoctor}
	statement, params = r.applyFilter(statement, params, f)

	params = append(params, limit, offset)
	statement += fmt.Sprintf(" ORDER BY d.lastName, d.firstName LIMIT $%d OFFSET $%d", len(params)-1, len(params))

	return r.queryDoctors(ctx, statement, params)
}

// ByHospital returns active doctors affiliated with the hospital, narrowed by
// the filter.
func (r *DoctorRepo) ByHospital(ctx context.Context, hospitalID string, f DoctorFilter) ([]*model.Doctor, error) {
	statement := fmt.Sprintf(
		"SELECT d.* FROM `%s` AS d WHERE d.docType = $1 AND d.isActive = true AND d.hospitalId = $2",
		r.store.BucketName(),
	)
	params := []interface{}{model.DocTypeDoctor, hospitalID}
	f.HospitalID = ""
	statement, params = r.applyFilter(statement, params, f)

	return r.queryDoctors(ctx, statement, params)
}

// DistinctSpecializations returns the distinct specialization values across
// active doctors.
func (r *DoctorRepo) DistinctSpecializations(ctx context.Context) ([]string, error) {
	statement := fmt.Sprintf(
		"SELECT DISTINCT s AS specialization FROM `%s` AS d UNNEST d.specializations AS s WHERE d.docType = $1 AND d.isActive = true",
		r.store.BucketName(),
	)

	var out []string
	err := r.store.Query(ctx, statement, []interface{}{model.DocTypeDoctor}, func(rows *gocb.QueryResult) error {
		for rows.Next() {
			var row struct {
				Specialization string `json:"specialization"`
			}
			if err := rows.Row(&row); err != nil {
				log.Warn().Err(err).Msg("Failed to read specialization row")
				continue
			}
			out = append(out, row.Specialization)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DoctorRepo) applyFilter(statement string, params []interface{}, f DoctorFilter) (string, []interface{}) {
	if f.HospitalID != "" {
		params = append(params, f.HospitalID)
		statement += fmt.Sprintf(" AND d.hospitalId = $%d", len(params))
	}
	if f.Specialization != "" {
		params = append(params, f.Specialization)
		statement += fmt.Sprintf(" AND ANY s IN d.specializations SATISFIES s = $%d END", len(params))
	}
	if f.Language != "" {
		params = append(params, toLowerPattern(f.Language))
		statement += fmt.Sprintf(" AND ANY l IN d.languages SATISFIES LOWER(l) = $%d END", len(params))
	}
	if f.Insurance != "" {
		params = append(params, "%"+toLowerPattern(f.Insurance)+"%")
		statement += fmt.Sprintf(" AND ANY i IN d.acceptedInsurance SATISFIES LOWER(i) LIKE $%d END", len(params))
	}
	if f.MinRating > 0 {
		params = append(params, f.MinRating)
		statement += fmt.Sprintf(" AND d.averageRating >= $%d", len(params))
	}
	return statement, params
}

func (r *DoctorRepo) queryDoctors(ctx context.Context, statement string, params []interface{}) ([]*model.Doctor, error) {
	var out []*model.Doctor
	err := r.store.Query(ctx, statement, params, func(rows *gocb.QueryResult) error {
		for rows.Next() {
			var d model.Doctor
			if err := rows.Row(&d); err != nil {
				log.Warn().Err(err).Msg("Failed to read doctor row")
				continue
			}
			out = append(out, &d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
