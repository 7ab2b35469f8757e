package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/medatlas/medatlas/internal/ai"
	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/gateway/places"
	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/internal/locator"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/medatlas/medatlas/pkg/apperrors"
)

const (
	testPatientID  = "8c3f4d9b-2d4e-4d1b-bf04-4d5e6f7a8b01"
	testDoctorID   = "6a1d2b7f-0b2c-4b9f-9f02-2b3c4d5e6f01"
	testHospitalID = "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e01"
	missingID      = "00000000-0000-0000-0000-000000000000"
)

type stubPatients struct {
	byID     map[string]*model.Patient
	upserts  int
	lastSeen *model.Patient
}

func (s *stubPatients) Get(ctx context.Context, id string) (*model.Patient, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("patient not found")
}

func (s *stubPatients) Upsert(ctx context.Context, p *model.Patient) error {
	if s.byID == nil {
		s.byID = map[string]*model.Patient{}
	}
	s.byID[p.ID] = p
	s.upserts++
	s.lastSeen = p
	return nil
}

func (s *stubPatients) List(ctx context.Context, limit, offset int) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range s.byID {
		out = append(out, p)
	}
	return out, nil
}

type stubDoctors struct {
	byID    map[string]*model.Doctor
	upserts int
}

func (s *stubDoctors) Get(ctx context.Context, id string) (*model.Doctor, error) {
	if d, ok := s.byID[id]; ok {
		return d, nil
	}
	return nil, apperrors.NotFound("doctor not found")
}

func (s *stubDoctors) Upsert(ctx context.Context, d *model.Doctor) error {
	if s.byID == nil {
		s.byID = map[string]*model.Doctor{}
	}
	d.RecalculateRating()
	s.byID[d.ID] = d
	s.upserts++
	return nil
}

func (s *stubDoctors) List(ctx context.Context, f dal.DoctorFilter, limit, offset int) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range s.byID {
		out = append(out, d)
	}
	return out, nil
}

func (s *stubDoctors) DistinctSpecializations(ctx context.Context) ([]string, error) {
	return []string{"Cardiology"}, nil
}

type stubHospitals struct {
	byID    map[string]*model.Hospital
	upserts int
}

func (s *stubHospitals) Get(ctx context.Context, id string) (*model.Hospital, error) {
	if h, ok := s.byID[id]; ok {
		return h, nil
	}
	return nil, apperrors.NotFound("hospital not found")
}

func (s *stubHospitals) Upsert(ctx context.Context, h *model.Hospital) error {
	if s.byID == nil {
		s.byID = map[string]*model.Hospital{}
	}
	s.byID[h.ID] = h
	s.upserts++
	return nil
}

func (s *stubHospitals) List(ctx context.Context, limit, offset int) ([]*model.Hospital, error) {
	var out []*model.Hospital
	for _, h := range s.byID {
		out = append(out, h)
	}
	return out, nil
}

type stubLocator struct{}

func (stubLocator) NearbyHospitals(ctx context.Context, req locator.NearbyRequest) ([]*locator.HospitalResult, error) {
	return []*locator.HospitalResult{}, nil
}

func (stubLocator) EmergencyHospitals(ctx context.Context, req locator.EmergencyRequest) ([]*locator.HospitalResult, error) {
	return []*locator.HospitalResult{}, nil
}

func (stubLocator) FindSpecialists(ctx context.Context, req locator.SpecialistRequest) ([]*locator.SpecialistResult, error) {
	return nil, nil
}

func (stubLocator) SearchHospitals(ctx context.Context, query string) ([]*locator.HospitalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.InvalidInput("Search query is required")
	}
	return []*locator.HospitalResult{}, nil
}

func (stubLocator) Specialties(ctx context.Context) ([]string, error) {
	return []string{"Cardiology"}, nil
}

func (stubLocator) Directions(ctx context.Context, from, to geo.Coordinates, mode string) (*places.Route, error) {
	return &places.Route{DistanceKm: 1.2, DurationMinutes: 5, Mode: mode, Estimated: true}, nil
}

type stubAssistant struct{}

func (stubAssistant) GeneratePatientSummary(ctx context.Context, patientID string) (*ai.SummaryResult, error) {
	return &ai.SummaryResult{Summary: "ok"}, nil
}

func (stubAssistant) SuggestDoctors(ctx context.Context, patientID string) ([]*ai.DoctorSuggestion, error) {
	return nil, nil
}

func (stubAssistant) AnalyzeSymptoms(ctx context.Context, req ai.SymptomsRequest) (*ai.SymptomAnalysis, error) {
	return &ai.SymptomAnalysis{UrgencyLevel: "routine"}, nil
}

func (stubAssistant) GenerateHealthInsights(ctx context.Context, patientID string) (*ai.HealthInsights, error) {
	return nil, apperrors.InvalidInput("At least two vital sign readings are required for insights")
}

func (stubAssistant) Chat(ctx context.Context, turns []ai.ChatTurn) (string, error) {
	return "reply", nil
}

func (stubAssistant) SummarizeHistoryText(ctx context.Context, text string) (string, error) {
	return "summary of " + text, nil
}

func testRouter(patients *stubPatients, doctors *stubDoctors, hospitals *stubHospitals) http.Handler {
	if patients == nil {
		patients = &stubPatients{}
	}
	if doctors == nil {
		doctors = &stubDoctors{}
	}
	if hospitals == nil {
		hospitals = &stubHospitals{}
	}
	h := NewHandlers(patients, doctors, hospitals, stubLocator{}, stubAssistant{})
	return SetupRoutes(h)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a valid envelope: %v\n%s", err, rec.Body.String())
	}
	return env
}

func TestRequireDocID(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "valid uuid", path: "/patients/" + testPatientID, wantStatus: http.StatusOK},
		{name: "malformed id", path: "/patients/not-a-uuid", wantStatus: http.StatusBadRequest},
		{name: "numeric id", path: "/patients/12345", wantStatus: http.StatusBadRequest},
	}

	patients := &stubPatients{byID: map[string]*model.Patient{
		testPatientID: {ID: testPatientID, FirstName: "James", LastName: "Whitfield"},
	}}
	router := testRouter(patients, nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec)
			if tt.wantStatus == http.StatusOK && !env.Success {
				t.Errorf("expected success envelope, got %s", rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK && env.Success {
				t.Errorf("expected failure envelope, got %s", rec.Body.String())
			}
		})
	}
}

func TestAddDoctorReviewValidation(t *testing.T) {
	tests := []struct {
		name       string
		rating     int
		wantStatus int
		wantWrites int
	}{
		{name: "rating too high", rating: 6, wantStatus: http.StatusBadRequest, wantWrites: 0},
		{name: "rating too low", rating: 0, wantStatus: http.StatusBadRequest, wantWrites: 0},
		{name: "rating accepted", rating: 5, wantStatus: http.StatusCreated, wantWrites: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doctors := &stubDoctors{byID: map[string]*model.Doctor{
				testDoctorID: {ID: testDoctorID, FirstName: "Elena", LastName: "Vasquez"},
			}}
			router := testRouter(nil, doctors, nil)

			body, _ := json.Marshal(map[string]interface{}{"rating": tt.rating, "isPublic": true})
			req := httptest.NewRequest(http.MethodPost, "/doctors/"+testDoctorID+"/reviews", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if doctors.upserts != tt.wantWrites {
				t.Errorf("store writes = %d, want %d", doctors.upserts, tt.wantWrites)
			}

			if tt.wantStatus == http.StatusBadRequest {
				env := decodeEnvelope(t, rec)
				if env.Error == nil || env.Error.Message != "Rating must be between 1 and 5" {
					t.Errorf("unexpected error payload: %s", rec.Body.String())
				}
				if len(doctors.byID[testDoctorID].Reviews) != 0 {
					t.Error("rejected review must not mutate the document")
				}
			}
		})
	}
}

func TestGetHospitalNotFound(t *testing.T) {
	router := testRouter(nil, nil, &stubHospitals{})

	req := httptest.NewRequest(http.MethodGet, "/hospitals/"+missingID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error == nil {
		t.Errorf("expected failure envelope, got %s", rec.Body.String())
	}
}

func TestCreatePatientValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "valid", body: `{"firstName":"Amara","lastName":"Diallo"}`, wantStatus: http.StatusCreated},
		{name: "missing names", body: `{"email":"x@example.com"}`, wantStatus: http.StatusBadRequest},
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patients := &stubPatients{}
			router := testRouter(patients, nil, nil)

			req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusCreated {
				if patients.lastSeen == nil || patients.lastSeen.ID == "" {
					t.Error("created patient must get an id")
				}
				if !patients.lastSeen.IsActive {
					t.Error("created patient must be active")
				}
			}
		})
	}
}

func TestGetPatientSummaryMissing(t *testing.T) {
	patients := &stubPatients{byID: map[string]*model.Patient{
		testPatientID: {ID: testPatientID, FirstName: "James", LastName: "Whitfield"},
	}}
	router := testRouter(patients, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/patients/"+testPatientID+"/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGenerateInsightsTooFewReadings(t *testing.T) {
	router := testRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/ai/insights/"+testPatientID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || !strings.Contains(env.Error.Message, "two vital sign readings") {
		t.Errorf("unexpected error payload: %s", rec.Body.String())
	}
}

func TestUpdateHospitalCapacity(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "valid", body: `{"total":100,"available":40,"icu":10}`, wantStatus: http.StatusOK},
		{name: "available exceeds total", body: `{"total":10,"available":40}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hospitals := &stubHospitals{byID: map[string]*model.Hospital{
				testHospitalID: {ID: testHospitalID, Name: "Downtown Medical Center"},
			}}
			router := testRouter(nil, nil, hospitals)

			req := httptest.NewRequest(http.MethodPut, "/hospitals/"+testHospitalID+"/capacity", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Errorf("expected success envelope, got %s", rec.Body.String())
	}
}

func TestChatRequiresMessages(t *testing.T) {
	router := testRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/ai/chat", strings.NewReader(`{"messages":[]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHospitalDirectionsRequiresCoordinates(t *testing.T) {
	router := testRouter(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/hospitals/directions?fromLat=40.7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
