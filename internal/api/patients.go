package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/rs/zerolog/log"
)

// ListPatients returns active patients, paginated.
func (h *Handlers) ListPatients(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	patients, err := h.patients.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if patients == nil {
		patients = []*model.Patient{}
	}
	writeData(w, http.StatusOK, patients)
}

// CreatePatient stores a new patient record.
func (h *Handlers) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var p model.Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if p.FirstName == "" || p.LastName == "" {
		writeMessage(w, http.StatusBadRequest, "firstName and lastName are required")
		return
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.IsActive = true

	if err := h.patients.Upsert(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("patient_id", p.ID).Msg("Patient created")
	writeData(w, http.StatusCreated, &p)
}

// GetPatient returns one patient by id.
func (h *Handlers) GetPatient(w http.ResponseWriter, r *http.Request) {
	p, err := h.patients.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// UpdatePatient replaces the stored record. Last writer wins.
func (h *Handlers) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.patients.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var p model.Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	p.IsActive = true

	if err := h.patients.Upsert(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, &p)
}

// AddPatientVitals appends a vital-sign reading.
func (h *Handlers) AddPatientVitals(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.patients.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var v model.VitalSigns
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if v.RecordedAt.IsZero() {
		v.RecordedAt = time.Now().UTC()
	}

	p.VitalSigns = append(p.VitalSigns, v)
	if err := h.patients.Upsert(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("patient_id", id).Int("readings", len(p.VitalSigns)).Msg("Vital signs recorded")
	writeData(w, http.StatusCreated, p)
}

// GetPatientSummary returns the persisted health summary.
func (h *Handlers) GetPatientSummary(w http.ResponseWriter, r *http.Request) {
	p, err := h.patients.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if p.HealthSummary == nil {
		writeMessage(w, http.StatusNotFound, "No summary has been generated for this patient")
		return
	}
	writeData(w, http.StatusOK, p.HealthSummary)
}
