package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/rs/zerolog/log"
)

// ListDoctors returns active doctors, optionally narrowed by specialty and
// hospital.
func (h *Handlers) ListDoctors(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	filter := dal.DoctorFilter{
		Specialization: r.URL.Query().Get("specialty"),
		HospitalID:     r.URL.Query().Get("hospitalId"),
		Language:       r.URL.Query().Get("language"),
	}
	if v, ok := queryFloat(r, "minRating"); ok {
		filter.MinRating = v
	}

	doctors, err := h.doctors.List(r.Context(), filter, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if doctors == nil {
		doctors = []*model.Doctor{}
	}
	writeData(w, http.StatusOK, doctors)
}

// CreateDoctor stores a new doctor record.
func (h *Handlers) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var d model.Doctor
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if d.FirstName == "" || d.LastName == "" {
		writeMessage(w, http.StatusBadRequest, "firstName and lastName are required")
		return
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.IsActive = true

	if err := h.doctors.Upsert(r.Context(), &d); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("doctor_id", d.ID).Msg("Doctor created")
	writeData(w, http.StatusCreated, &d)
}

// GetDoctor returns one doctor by id.
func (h *Handlers) GetDoctor(w http.ResponseWriter, r *http.Request) {
	d, err := h.doctors.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, d)
}

// UpdateDoctor replaces the stored record. Last writer wins.
func (h *Handlers) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.doctors.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var d model.Doctor
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	d.ID = id
	d.CreatedAt = existing.CreatedAt
	d.IsActive = true

	if err := h.doctors.Upsert(r.Context(), &d); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, &d)
}

// AddDoctorReview appends a review and recomputes the stored rating fields.
// An out-of-range rating is rejected before anything is written.
func (h *Handlers) AddDoctorReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var review model.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		writeMessage(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	d, err := h.doctors.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	review.ID = uuid.NewString()
	review.CreatedAt = time.Now().UTC()
	d.Reviews = append(d.Reviews, review)

	if err := h.doctors.Upsert(r.Context(), d); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("doctor_id", id).Int("rating", review.Rating).Msg("Doctor review added")
	writeData(w, http.StatusCreated, d)
}

// ListSpecializations returns the distinct specializations across active
// doctors.
func (h *Handlers) ListSpecializations(w http.ResponseWriter, r *http.Request) {
	out, err := h.doctors.DistinctSpecializations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []string{}
	}
	writeData(w, http.StatusOK, out)
}
