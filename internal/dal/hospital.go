package dal

import (
	"context"
	"fmt"

	"github.com/couchbase/gocb/v2"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/rs/zerolog/log"
)

// HospitalFilter narrows hospital queries. Zero values mean "no filter".
type HospitalFilter struct {
	Specialty     string
	Insurance     string
	Emergency24x7 bool
}

// HospitalRepo handles hospital documents.
type HospitalRepo struct {
	store *Store
}

// NewHospitalRepo creates a hospital repository.
func NewHospitalRepo(store *Store) *HospitalRepo {
	return &HospitalRepo{store: store}
}

func hospitalKey(id string) string {
	return fmt.Sprintf("%s::%s", model.DocTypeHospital, id)
}

// Get retrieves one hospital by id.
func (r *HospitalRepo) Get(ctx context.Context, id string) (*model.Hospital, error) {
	var h model.Hospital
	if err := r.store.Get(ctx, hospitalKey(id), &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Upsert persists a hospital, applying defaults first.
func (r *HospitalRepo) Upsert(ctx context.Context, h *model.Hospital) error {
	h.ApplyDefaults()
	return r.store.Upsert(ctx, hospitalKey(h.ID), h)
}

// List returns active hospitals with offset pagination.
func (r *HospitalRepo) List(ctx context.Context, limit, offset int) ([]*model.Hospital, error) {
	statement := fmt.Sprintf(
		"SELECT d.* FROM `%s` AS d WHERE d.docType = $1 AND d.isActive = true ORDER BY d.name LIMIT $2 OFFSET $3",
		r.store.BucketName(),
	)
	return r.queryHospitals(ctx, statement, []interface{}{model.DocTypeHospital, limit, offset})
}

// WithinBox returns active hospitals whose stored point falls inside the
// bounding box, with the remaining filters pushed into the query. The caller
// applies the exact radius check.
func (r *HospitalRepo) WithinBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64, f HospitalFilter) ([]*model.Hospital, error) {
	statement := fmt.Sprintf(
		"SELECT d.* FROM `%s` AS d WHERE d.docType = $1 AND d.isActive = true"+
			" AND d.location.coordinates[1] BETWEEN $2 AND $3"+
			" AND d.location.coordinates[0] BETWEEN $4 AND $5",
		r.store.BucketName(),
	)
	params := []interface{}{model.DocTypeHospital, minLat, maxLat, minLng, maxLng}

	if f.Emergency24x7 {
		statement += " AND d.emergency24x7 = true"
	}
	if f.Specialty != "" {
		params = append(params, f.Specialty)
		statement += fmt.Sprintf(" AND ANY s IN d.specialties SATISFIES s = $%d END", len(params))
	}
	if f.Insurance != "" {
		params = append(params, "%"+toLowerPattern(f.Insurance)+"%")
		statement += fmt.Sprintf(" AND ANY i IN d.acceptedInsurance SATISFIES LOWER(i) LIKE $%d END", len(params))
	}

	return r.queryHospitals(ctx, statement, params)
}

// BySpecialty returns active hospitals whose specialty list contains the
// requested specialty.
func (r *HospitalRepo) BySpecialty(ctx context.Context, specialty string) ([]*model.Hospital, error) {
	statement := fmt.Sprintf(
		"SELECT d.* FROM `%s` AS d WHERE d.docType = $1 AND d.isActive = true"+
			" AND ANY s IN d.specialties SATISFIES s = $2 END",
		r.store.BucketName(),
	)
	return r.queryHospitals(ctx, statement, []interface{}{model.DocTypeHospital, specialty})
}

// SearchByName returns active hospitals whose name contains the query,
// case-insensitive.
func (r *HospitalRepo) SearchByName(ctx context.Context, query string) ([]*model.Hospital, error) {
	statement := fmt.Sprintf(
		"SELECT d.* FROM `%s` AS d WHERE d.docType = $1 AND d.isActive = true AND LOWER(d.name) LIKE $2",
		r.store.BucketName(),
	)
	return r.queryHospitals(ctx, statement, []interface{}{model.DocTypeHospital, "%" + toLowerPattern(query) + "%"})
}

// DistinctSpecialties returns the distinct specialty values across active
// hospitals.
func (r *HospitalRepo) DistinctSpecialties(ctx context.Context) ([]string, error) {
	statement := fmt.Sprintf(
		"SELECT DISTINCT s AS specialty FROM `%s` AS d UNNEST d.specialties AS s WHERE d.docType = $1 AND d.isActive = true",
		r.store.BucketName(),
	)

	var out []string
	err := r.store.Query(ctx, statement, []interface{}{model.DocTypeHospital}, func(rows *gocb.QueryResult) error {
		for rows.Next() {
			var row struct {
				Specialty string `json:"specialty"`
			}
			if err := rows.Row(&row); err != nil {
				log.Warn().Err(err).Msg("Failed to read specialty row")
				continue
			}
			out = append(out, row.Specialty)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HospitalRepo) queryHospitals(ctx context.Context, statement string, params []interface{}) ([]*model.Hospital, error) {
	var out []*model.Hospital
	err := r.store.Query(ctx, statement, params, func(rows *gocb.QueryResult) error {
		for rows.Next() {
			var h model.Hospital
			if err := rows.Row(&h); err != nil {
				log.Warn().Err(err).Msg("Failed to read hospital row")
				continue
			}
			out = append(out, &h)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
