package model

import "time"

// ScheduleSlot is one weekly availability window. Day is 0 (Sunday) to 6.
type ScheduleSlot struct {
	Day       int    `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// Education is one degree entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Year        int    `json:"year,omitempty"`
}

// Doctor is the persisted doctor document.
type Doctor struct {
	ID                string         `json:"id"`
	DocType           string         `json:"docType"`
	FirstName         string         `json:"firstName"`
	LastName          string         `json:"lastName"`
	Email             string         `json:"email,omitempty"`
	Phone             string         `json:"phone,omitempty"`
	LicenseNumber     string         `json:"licenseNumber,omitempty"`
	LicenseState      string         `json:"licenseState,omitempty"`
	Specializations   []string       `json:"specializations"`
	Education         []Education    `json:"education"`
	Certifications    []string       `json:"certifications"`
	YearsOfExperience int            `json:"yearsOfExperience,omitempty"`
	Languages         []string       `json:"languages"`
	ConsultationFee   float64        `json:"consultationFee,omitempty"`
	AcceptedInsurance []string       `json:"acceptedInsurance"`
	Schedule          []ScheduleSlot `json:"schedule"`
	Reviews           []Review       `json:"reviews"`
	AverageRating     float64        `json:"averageRating"`
	TotalReviews      int            `json:"totalReviews"`
	HospitalID        string         `json:"hospitalId,omitempty"`
	IsActive          bool           `json:"isActive"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// DocTypeDoctor is the document type discriminator for doctors.
const DocTypeDoctor = "doctor"

// ApplyDefaults fills the fields every stored doctor must carry.
func (d *Doctor) ApplyDefaults() {
	d.DocType = DocTypeDoctor
	if d.Specializations == nil {
		d.Specializations = []string{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Certifications == nil {
		d.Certifications = []string{}
	}
	if d.Languages == nil {
		d.Languages = []string{}
	}
	if d.AcceptedInsurance == nil {
		d.AcceptedInsurance = []string{}
	}
	if d.Schedule == nil {
		d.Schedule = []ScheduleSlot{}
	}
	if d.Reviews == nil {
		d.Reviews = []Review{}
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	d.UpdatedAt = time.Now().UTC()
}

// RecalculateRating rederives averageRating and totalReviews from public
// reviews. Runs on every save that touches reviews.
func (d *Doctor) RecalculateRating() {
	d.AverageRating, d.TotalReviews = AverageRating(d.Reviews)
}

// FullName joins first and last name.
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// HasSpecialization reports whether the doctor lists the given specialty
// (exact, case-sensitive match on the stored value).
func (d *Doctor) HasSpecialization(specialty string) bool {
	for _, s := range d.Specializations {
		if s == specialty {
			return true
		}
	}
	return false
}

// SpeaksLanguage reports whether the doctor lists the given language.
func (d *Doctor) SpeaksLanguage(lang string) bool {
	for _, l := range d.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
