package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/medatlas/medatlas/internal/geo"
	"github.com/medatlas/medatlas/internal/locator"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/rs/zerolog/log"
)

// ListHospitals returns active hospitals, paginated.
func (h *Handlers) ListHospitals(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	hospitals, err := h.hospitals.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if hospitals == nil {
		hospitals = []*model.Hospital{}
	}
	writeData(w, http.StatusOK, hospitals)
}

// CreateHospital stores a new hospital record.
func (h *Handlers) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var hospital model.Hospital
	if err := json.NewDecoder(r.Body).Decode(&hospital); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if hospital.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	if hospital.ID == "" {
		hospital.ID = uuid.NewString()
	}
	hospital.IsActive = true

	if err := h.hospitals.Upsert(r.Context(), &hospital); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("hospital_id", hospital.ID).Msg("Hospital created")
	writeData(w, http.StatusCreated, &hospital)
}

// GetHospital returns one hospital by id, with the read-time virtuals.
func (h *Handlers) GetHospital(w http.ResponseWriter, r *http.Request) {
	hospital, err := h.hospitals.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, hospitalView(hospital))
}

// UpdateHospital replaces the stored record. Last writer wins.
func (h *Handlers) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := h.hospitals.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var hospital model.Hospital
	if err := json.NewDecoder(r.Body).Decode(&hospital); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	hospital.ID = id
	hospital.CreatedAt = existing.CreatedAt
	hospital.IsActive = true

	if err := h.hospitals.Upsert(r.Context(), &hospital); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, &hospital)
}

// UpdateHospitalCapacity replaces the bed counts only.
func (h *Handlers) UpdateHospitalCapacity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	hospital, err := h.hospitals.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var beds model.BedCount
	if err := json.NewDecoder(r.Body).Decode(&beds); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if beds.Available > beds.Total {
		writeMessage(w, http.StatusBadRequest, "available beds cannot exceed total beds")
		return
	}

	hospital.BedCount = beds
	if err := h.hospitals.Upsert(r.Context(), hospital); err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("hospital_id", id).Int("available", beds.Available).Msg("Hospital capacity updated")
	writeData(w, http.StatusOK, hospitalView(hospital))
}

// AddHospitalReview appends a review.
func (h *Handlers) AddHospitalReview(w http.ResponseWriter, r *http.Request) {
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

	hospital, err := h.hospitals.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	review.ID = uuid.NewString()
	review.CreatedAt = time.Now().UTC()
	hospital.Reviews = append(hospital.Reviews, review)

	if err := h.hospitals.Upsert(r.Context(), hospital); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, hospitalView(hospital))
}

// NearbyHospitals handles the radius search.
func (h *Handlers) NearbyHospitals(w http.ResponseWriter, r *http.Request) {
	req := locator.NearbyRequest{
		Location:  locationFromQuery(r),
		Specialty: r.URL.Query().Get("specialty"),
		Insurance: r.URL.Query().Get("insurance"),
	}
	if v, ok := queryFloat(r, "radius"); ok {
		req.RadiusKm = v
	}
	if v, ok := queryFloat(r, "minRating"); ok {
		req.MinRating = v
	}
	if r.URL.Query().Get("emergency") == "true" {
		req.Emergency24x7 = true
	}

	results, err := h.locator.NearbyHospitals(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, results)
}

// EmergencyHospitals handles the emergency lookup.
func (h *Handlers) EmergencyHospitals(w http.ResponseWriter, r *http.Request) {
	req := locator.EmergencyRequest{
		Location: locationFromQuery(r),
		Urgency:  r.URL.Query().Get("urgency"),
	}

	results, err := h.locator.EmergencyHospitals(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, results)
}

// FindSpecialists handles the specialist search.
func (h *Handlers) FindSpecialists(w http.ResponseWriter, r *http.Request) {
	req := locator.SpecialistRequest{
		Location:  locationFromQuery(r),
		Specialty: r.URL.Query().Get("specialty"),
		Language:  r.URL.Query().Get("language"),
		Insurance: r.URL.Query().Get("insurance"),
	}
	if v, ok := queryFloat(r, "radius"); ok {
		req.RadiusKm = v
	}
	if v, ok := queryFloat(r, "minRating"); ok {
		req.MinRating = v
	}

	results, err := h.locator.FindSpecialists(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []*locator.SpecialistResult{}
	}
	writeData(w, http.StatusOK, results)
}

// HospitalDirections returns a route between two coordinate pairs.
func (h *Handlers) HospitalDirections(w http.ResponseWriter, r *http.Request) {
	fromLat, ok1 := queryFloat(r, "fromLat")
	fromLng, ok2 := queryFloat(r, "fromLng")
	toLat, ok3 := queryFloat(r, "toLat")
	toLng, ok4 := queryFloat(r, "toLng")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		writeMessage(w, http.StatusBadRequest, "fromLat, fromLng, toLat and toLng are required")
		return
	}

	route, err := h.locator.Directions(r.Context(),
		geo.Coordinates{Latitude: fromLat, Longitude: fromLng},
		geo.Coordinates{Latitude: toLat, Longitude: toLng},
		r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, route)
}

// SearchHospitals handles the free-text name search.
func (h *Handlers) SearchHospitals(w http.ResponseWriter, r *http.Request) {
	results, err := h.locator.SearchHospitals(r.Context(), mux.Vars(r)["query"])
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []*locator.HospitalResult{}
	}
	writeData(w, http.StatusOK, results)
}

// ListSpecialties returns the distinct specialties across active hospitals.
func (h *Handlers) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	out, err := h.locator.Specialties(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []string{}
	}
	writeData(w, http.StatusOK, out)
}

func locationFromQuery(r *http.Request) locator.LocationQuery {
	q := locator.LocationQuery{
		Address: r.URL.Query().Get("address"),
		ZipCode: r.URL.Query().Get("zipCode"),
	}
	if lat, ok := queryFloat(r, "lat"); ok {
		if lng, ok := queryFloat(r, "lng"); ok {
			q.Latitude = &lat
			q.Longitude = &lng
		}
	}
	return q
}

// hospitalView attaches the read-time virtuals to a hospital document.
func hospitalView(h *model.Hospital) map[string]interface{} {
	return map[string]interface{}{
		"hospital":      h,
		"fullAddress":   h.FullAddress(),
		"occupancyRate": h.OccupancyRate(),
		"averageRating": h.AverageRating(),
	}
}
