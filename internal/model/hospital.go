package model

import (
	"math"
	"time"
)

// Department is one embedded department record.
type Department struct {
	Name      string `json:"name"`
	HeadCount int    `json:"headCount,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// EmergencyService is one embedded emergency capability record.
type EmergencyService struct {
	Name               string `json:"name"`
	Capacity           int    `json:"capacity,omitempty"`
	CurrentLoad        int    `json:"currentLoad,omitempty"`
	AverageWaitMinutes int    `json:"averageWaitMinutes,omitempty"`
}

// BedCount tracks hospital capacity by category.
type BedCount struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	ICU       int `json:"icu"`
	Emergency int `json:"emergency"`
	General   int `json:"general"`
}

// Hospital is the persisted hospital document.
type Hospital struct {
	ID                string             `json:"id"`
	DocType           string             `json:"docType"`
	Name              string             `json:"name"`
	Phone             string             `json:"phone,omitempty"`
	Email             string             `json:"email,omitempty"`
	Website           string             `json:"website,omitempty"`
	Address           Address            `json:"address"`
	Location          GeoPoint           `json:"location"`
	Departments       []Department       `json:"departments"`
	Specialties       []string           `json:"specialties"`
	EmergencyServices []EmergencyService `json:"emergencyServices"`
	Emergency24x7     bool               `json:"emergency24x7"`
	BedCount          BedCount           `json:"bedCount"`
	AcceptedInsurance []string           `json:"acceptedInsurance"`
	Reviews           []Review           `json:"reviews"`
	DoctorIDs         []string           `json:"doctorIds"`
	IsActive          bool               `json:"isActive"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// DocTypeHospital is the document type discriminator for hospitals.
const DocTypeHospital = "hospital"

// ApplyDefaults fills the fields every stored hospital must carry.
func (h *Hospital) ApplyDefaults() {
	h.DocType = DocTypeHospital
	if h.Location.Type == "" {
		h.Location.Type = "Point"
	}
	if h.Departments == nil {
		h.Departments = []Department{}
	}
	if h.Specialties == nil {
		h.Specialties = []string{}
	}
	if h.EmergencyServices == nil {
		h.EmergencyServices = []EmergencyService{}
	}
	if h.AcceptedInsurance == nil {
		h.AcceptedInsurance = []string{}
	}
	if h.Reviews == nil {
		h.Reviews = []Review{}
	}
	if h.DoctorIDs == nil {
		h.DoctorIDs = []string{}
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	h.UpdatedAt = time.Now().UTC()
}

// FullAddress is a derived field, computed on read.
func (h *Hospital) FullAddress() string {
	return h.Address.Full()
}

// OccupancyRate returns round((total-available)/total*100), or nil when total
// or available is zero/absent.
func (h *Hospital) OccupancyRate() *int {
	if h.BedCount.Total == 0 || h.BedCount.Available == 0 {
		return nil
	}
	rate := int(math.Round(float64(h.BedCount.Total-h.BedCount.Available) / float64(h.BedCount.Total) * 100))
	return &rate
}

// AverageRating is derived from public reviews only.
func (h *Hospital) AverageRating() float64 {
	avg, _ := AverageRating(h.Reviews)
	return avg
}

// HasSpecialty reports whether the hospital lists the given specialty.
func (h *Hospital) HasSpecialty(specialty string) bool {
	for _, s := range h.Specialties {
		if s == specialty {
			return true
		}
	}
	return false
}

// AverageEmergencyWait is the mean averageWaitMinutes across emergency
// services, or 0 when none are recorded.
func (h *Hospital) AverageEmergencyWait() int {
	if len(h.EmergencyServices) == 0 {
		return 0
	}
	sum := 0
	for _, s := range h.EmergencyServices {
		sum += s.AverageWaitMinutes
	}
	return sum / len(h.EmergencyServices)
}

// HasEmergencyService reports whether any emergency service matches one of the
// given names.
func (h *Hospital) HasEmergencyService(names ...string) bool {
	for _, s := range h.EmergencyServices {
		for _, n := range names {
			if s.Name == n {
				return true
			}
		}
	}
	return false
}
