package seed

import (
	"time"

	"github.com/medatlas/medatlas/internal/model"
)

// DemoPatients returns the bundled patient dataset.
func DemoPatients() []*model.Patient {
	diagnosed := time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC)

	patients := []*model.Patient{
		{
			ID:          "8c3f4d9b-2d4e-4d1b-bf04-4d5e6f7a8b01",
			FirstName:   "James",
			LastName:    "Whitfield",
			Email:       "j.whitfield@example.com",
			DateOfBirth: "1961-09-14",
			Gender:      "male",
			Address: model.Address{
				Street:  "210 E 14th St",
				City:    "New York",
				State:   "NY",
				ZipCode: "10003",
				Country: "USA",
			},
			MedicalHistory: []model.MedicalCondition{
				{Condition: "Hypertension", Status: model.ConditionChronic, Severity: model.SeverityModerate, DiagnosedAt: &diagnosed},
				{Condition: "Type 2 Diabetes", Status: model.ConditionManaged, Severity: model.SeverityMild},
			},
			CurrentMedications: []model.Medication{
				{Name: "Lisinopril", Dosage: "10mg", Frequency: "daily", IsActive: true},
				{Name: "Metformin", Dosage: "500mg", Frequency: "twice daily", IsActive: true},
			},
			Allergies: []string{"Penicillin"},
			VitalSigns: []model.VitalSigns{
				{
					RecordedAt: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
					HeartRate:  78, SystolicBP: 142, DiastolicBP: 90, WeightKg: 92,
				},
				{
					RecordedAt: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
					HeartRate:  74, SystolicBP: 134, DiastolicBP: 86, WeightKg: 89,
				},
			},
			Insurance: model.Insurance{Provider: "Aetna", PolicyNumber: "AET-8841023"},
			EmergencyContacts: []model.EmergencyContact{
				{Name: "Dana Whitfield", Relationship: "spouse", Phone: "+1-212-555-0188", IsPrimary: true},
			},
			PrimaryDoctorID: "6a1d2b7f-0b2c-4b9f-9f02-2b3c4d5e6f01",
			IsActive:        true,
		},
		{
			ID:          "8c3f4d9b-2d4e-4d1b-bf04-4d5e6f7a8b02",
			FirstName:   "Amara",
			LastName:    "Diallo",
			Email:       "a.diallo@example.com",
			DateOfBirth: "1988-02-27",
			Gender:      "female",
			Address: model.Address{
				Street:  "45 Court St",
				City:    "Brooklyn",
				State:   "NY",
				ZipCode: "11201",
				Country: "USA",
			},
			MedicalHistory: []model.MedicalCondition{
				{Condition: "Asthma", Status: model.ConditionActive, Severity: model.SeverityMild},
			},
			CurrentMedications: []model.Medication{
				{Name: "Albuterol", Dosage: "90mcg", Frequency: "as needed", IsActive: true},
			},
			Insurance:       model.Insurance{Provider: "Oscar", PolicyNumber: "OSC-5520981"},
			PrimaryDoctorID: "6a1d2b7f-0b2c-4b9f-9f02-2b3c4d5e6f03",
			IsActive:        true,
		},
	}

	for _, p := range patients {
		p.ApplyDefaults()
		p.NormalizeEmergencyContacts()
	}
	return patients
}
