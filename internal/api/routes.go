package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures and returns the HTTP router.
func SetupRoutes(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.Use(metrics.Middleware)

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Patients
	r.HandleFunc("/patients", h.ListPatients).Methods("GET")
	r.HandleFunc("/patients", h.CreatePatient).Methods("POST")
	patients := r.PathPrefix("/patients/{id}").Subrouter()
	patients.Use(RequireDocID("id"))
	patients.HandleFunc("", h.GetPatient).Methods("GET")
	patients.HandleFunc("", h.UpdatePatient).Methods("PUT")
	patients.HandleFunc("/vitals", h.AddPatientVitals).Methods("POST")
	patients.HandleFunc("/summary", h.GetPatientSummary).Methods("GET")

	// Doctors. Meta routes are registered before the id subrouter so they are
	// not swallowed by the id matcher.
	r.HandleFunc("/doctors", h.ListDoctors).Methods("GET")
	r.HandleFunc("/doctors", h.CreateDoctor).Methods("POST")
	r.HandleFunc("/doctors/meta/specializations", h.ListSpecializations).Methods("GET")
	doctors := r.PathPrefix("/doctors/{id}").Subrouter()
	doctors.Use(RequireDocID("id"))
	doctors.HandleFunc("", h.GetDoctor).Methods("GET")
	doctors.HandleFunc("", h.UpdateDoctor).Methods("PUT")
	doctors.HandleFunc("/reviews", h.AddDoctorReview).Methods("POST")

	// Hospitals
	r.HandleFunc("/hospitals", h.ListHospitals).Methods("GET")
	r.HandleFunc("/hospitals", h.CreateHospital).Methods("POST")
	r.HandleFunc("/hospitals/nearby", h.NearbyHospitals).Methods("GET")
	r.HandleFunc("/hospitals/emergency", h.EmergencyHospitals).Methods("GET")
	r.HandleFunc("/hospitals/specialists", h.FindSpecialists).Methods("GET")
	r.HandleFunc("/hospitals/directions", h.HospitalDirections).Methods("GET")
	r.HandleFunc("/hospitals/search/{query}", h.SearchHospitals).Methods("GET")
	r.HandleFunc("/hospitals/meta/specialties", h.ListSpecialties).Methods("GET")
	hospitals := r.PathPrefix("/hospitals/{id}").Subrouter()
	hospitals.Use(RequireDocID("id"))
	hospitals.HandleFunc("", h.GetHospital).Methods("GET")
	hospitals.HandleFunc("", h.UpdateHospital).Methods("PUT")
	hospitals.HandleFunc("/capacity", h.UpdateHospitalCapacity).Methods("PUT")
	hospitals.HandleFunc("/reviews", h.AddHospitalReview).Methods("POST")

	// AI
	aiPatient := RequireDocID("patientId")
	r.Handle("/ai/summary/{patientId}", aiPatient(http.HandlerFunc(h.GenerateSummary))).Methods("POST")
	r.Handle("/ai/suggest-doctors/{patientId}", aiPatient(http.HandlerFunc(h.SuggestDoctors))).Methods("POST")
	r.Handle("/ai/insights/{patientId}", aiPatient(http.HandlerFunc(h.GenerateInsights))).Methods("POST")
	r.HandleFunc("/ai/analyze-symptoms", h.AnalyzeSymptoms).Methods("POST")
	r.HandleFunc("/ai/chat", h.Chat).Methods("POST")
	r.HandleFunc("/ai/history-summary", h.SummarizeHistory).Methods("POST")

	// Auth placeholders
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/auth/me", h.Me).Methods("GET")

	return r
}
