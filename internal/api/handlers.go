package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/medatlas/medatlas/internal/ai"
	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/gateway/places"
	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/internal/locator"
	"github.com/medatlas/medatlas/internal/model"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PatientStore is the patient persistence surface the handlers need.
type PatientStore interface {
	Get(ctx context.Context, id string) (*model.Patient, error)
	Upsert(ctx context.Context, p *model.Patient) error
	List(ctx context.Context, limit, offset int) ([]*model.Patient, error)
}

// DoctorStore is the doctor persistence surface the handlers need.
type DoctorStore interface {
	Get(ctx context.Context, id string) (*model.Doctor, error)
	Upsert(ctx context.Context, d *model.Doctor) error
	List(ctx context.Context, f dal.DoctorFilter, limit, offset int) ([]*model.Doctor, error)
	DistinctSpecializations(ctx context.Context) ([]string, error)
}

// HospitalStore is the hospital persistence surface the handlers need.
type HospitalStore interface {
	Get(ctx context.Context, id string) (*model.Hospital, error)
	Upsert(ctx context.Context, h *model.Hospital) error
	List(ctx context.Context, limit, offset int) ([]*model.Hospital, error)
}

// Locator is the hospital/specialist lookup service surface.
type Locator interface {
	NearbyHospitals(ctx context.Context, req locator.NearbyRequest) ([]*locator.HospitalResult, error)
	EmergencyHospitals(ctx context.Context, req locator.EmergencyRequest) ([]*locator.HospitalResult, error)
	FindSpecialists(ctx context.Context, req locator.SpecialistRequest) ([]*locator.SpecialistResult, error)
	SearchHospitals(ctx context.Context, query string) ([]*locator.HospitalResult, error)
	Specialties(ctx context.Context) ([]string, error)
	Directions(ctx context.Context, from, to geo.Coordinates, mode string) (*places.Route, error)
}

// Assistant is the AI service surface.
type Assistant interface {
	GeneratePatientSummary(ctx context.Context, patientID string) (*ai.SummaryResult, error)
	SuggestDoctors(ctx context.Context, patientID string) ([]*ai.DoctorSuggestion, error)
	AnalyzeSymptoms(ctx context.Context, req ai.SymptomsRequest) (*ai.SymptomAnalysis, error)
	GenerateHealthInsights(ctx context.Context, patientID string) (*ai.HealthInsights, error)
	Chat(ctx context.Context, turns []ai.ChatTurn) (string, error)
	SummarizeHistoryText(ctx context.Context, text string) (string, error)
}

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	patients  PatientStore
	doctors   DoctorStore
	hospitals HospitalStore
	locator   Locator
	assistant Assistant
	startedAt time.Time
}

// NewHandlers wires the handler layer.
func NewHandlers(patients PatientStore, doctors DoctorStore, hospitals HospitalStore, loc Locator, assistant Assistant) *Handlers {
	return &Handlers{
		patients:  patients,
		doctors:   doctors,
		hospitals: hospitals,
		locator:   loc,
		assistant: assistant,
		startedAt: time.Now().UTC(),
	}
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"uptimeSeconds": int(time.Since(h.startedAt).Seconds()),
	})
}

// pagination reads page/limit query parameters into limit/offset.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	return limit, (page - 1) * limit
}

func queryFloat(r *http.Request, key string) (float64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
