package model

import "time"

// Medical history condition statuses.
const (
	ConditionActive   = "active"
	ConditionResolved = "resolved"
	ConditionChronic  = "chronic"
	ConditionManaged  = "managed"
)

// Medical history severities.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// MedicalCondition is one entry in a patient's medical history.
type MedicalCondition struct {
	Condition   string     `json:"condition"`
	Status      string     `json:"status"`
	Severity    string     `json:"severity,omitempty"`
	DiagnosedAt *time.Time `json:"diagnosedAt,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// Medication is a currently prescribed medication.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	IsActive  bool   `json:"isActive"`
}

// VitalSigns is one time-ordered reading.
type VitalSigns struct {
	RecordedAt       time.Time `json:"recordedAt"`
	HeartRate        float64   `json:"heartRate,omitempty"`
	SystolicBP       float64   `json:"systolicBp,omitempty"`
	DiastolicBP      float64   `json:"diastolicBp,omitempty"`
	Temperature      float64   `json:"temperature,omitempty"`
	RespiratoryRate  float64   `json:"respiratoryRate,omitempty"`
	OxygenSaturation float64   `json:"oxygenSaturation,omitempty"`
	WeightKg         float64   `json:"weightKg,omitempty"`
}

// Insurance is the patient's coverage record.
type Insurance struct {
	Provider     string `json:"provider,omitempty"`
	PolicyNumber string `json:"policyNumber,omitempty"`
	GroupNumber  string `json:"groupNumber,omitempty"`
}

// EmergencyContact is one entry in emergencyContacts. At most one entry may be
// primary after normalization.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
	IsPrimary    bool   `json:"isPrimary"`
}

// HealthSummary is the AI-derived summary block, overwritten wholesale on each
// generation.
type HealthSummary struct {
	Summary         string    `json:"summary,omitempty"`
	RiskFactors     []string  `json:"riskFactors,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	RiskScore       int       `json:"riskScore,omitempty"`
	GeneratedAt     time.Time `json:"generatedAt,omitempty"`
}

// Patient is the persisted patient document.
type Patient struct {
	ID                 string             `json:"id"`
	DocType            string             `json:"docType"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	Email              string             `json:"email,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	DateOfBirth        string             `json:"dateOfBirth,omitempty"`
	Gender             string             `json:"gender,omitempty"`
	Address            Address            `json:"address"`
	MedicalHistory     []MedicalCondition `json:"medicalHistory"`
	CurrentMedications []Medication       `json:"currentMedications"`
	Allergies          []string           `json:"allergies"`
	VitalSigns         []VitalSigns       `json:"vitalSigns"`
	Insurance          Insurance          `json:"insurance"`
	EmergencyContacts  []EmergencyContact `json:"emergencyContacts"`
	HealthSummary      *HealthSummary     `json:"healthSummary,omitempty"`
	PrimaryDoctorID    string             `json:"primaryDoctorId,omitempty"`
	PreferredLanguage  string             `json:"preferredLanguage,omitempty"`
	IsActive           bool               `json:"isActive"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// DocTypePatient is the document type discriminator for patients.
const DocTypePatient = "patient"

// ApplyDefaults fills the fields every stored patient must carry.
func (p *Patient) ApplyDefaults() {
	p.DocType = DocTypePatient
	if p.MedicalHistory == nil {
		p.MedicalHistory = []MedicalCondition{}
	}
	if p.CurrentMedications == nil {
		p.CurrentMedications = []Medication{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.VitalSigns == nil {
		p.VitalSigns = []VitalSigns{}
	}
	if p.EmergencyContacts == nil {
		p.EmergencyContacts = []EmergencyContact{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()
}

// NormalizeEmergencyContacts demotes every primary contact after the first so
// at most one entry stays primary. Runs before every persist.
func (p *Patient) NormalizeEmergencyContacts() {
	seenPrimary := false
	for i := range p.EmergencyContacts {
		if !p.EmergencyContacts[i].IsPrimary {
			continue
		}
		if seenPrimary {
			p.EmergencyContacts[i].IsPrimary = false
			continue
		}
		seenPrimary = true
	}
}

// ActiveConditions returns history entries whose status is active or chronic.
func (p *Patient) ActiveConditions() []MedicalCondition {
	var out []MedicalCondition
	for _, c := range p.MedicalHistory {
		if c.Status == ConditionActive || c.Status == ConditionChronic {
			out = append(out, c)
		}
	}
	return out
}

// ActiveMedications returns medications flagged active.
func (p *Patient) ActiveMedications() []Medication {
	var out []Medication
	for _, m := range p.CurrentMedications {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out
}

// LatestVitals returns the most recent reading, or nil when none exist.
func (p *Patient) LatestVitals() *VitalSigns {
	if len(p.VitalSigns) == 0 {
		return nil
	}
	latest := p.VitalSigns[0]
	for _, v := range p.VitalSigns[1:] {
		if v.RecordedAt.After(latest.RecordedAt) {
			latest = v
		}
	}
	return &latest
}
