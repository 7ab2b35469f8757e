package seed

import (
	"time"

	"github.com/medatlas/medatlas/internal/model"
)

// DemoDoctors returns the bundled doctor dataset. Hospital ids reference the
// DemoHospitals entries.
func DemoDoctors() []*model.Doctor {
	reviewDate := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	doctors := []*model.Doctor{
		{
			ID:                "6a1d2b7f-0b2c-4b9f-9f02-2b3c4d5e6f01",
			FirstName:         "Elena",
			LastName:          "Vasquez",
			Email:             "e.vasquez@example.org",
			LicenseNumber:     "NY-442871",
			LicenseState:      "NY",
			Specializations:   []string{"Cardiology"},
			YearsOfExperience: 14,
			Languages:         []string{"English", "Spanish"},
			ConsultationFee:   250,
			AcceptedInsurance: []string{"Aetna", "Blue Cross Blue Shield"},
			HospitalID:        "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e01",
			Reviews: []model.Review{
				{ID: "7b2e3c8a-1c3d-4c0a-af03-3c4d5e6f7a01", Rating: 5, Comment: "Thorough and kind.", IsPublic: true, CreatedAt: reviewDate},
				{ID: "7b2e3c8a-1c3d-4c0a-af03-3c4d5e6f7a02", Rating: 4, IsPublic: true, CreatedAt: reviewDate},
			},
			IsActive: true,
		},
		{
			ID:                "6a1d2b7f-0b2c-4b9f-9f02-2b3c4d5e6f02",
			FirstName:         "Marcus",
			LastName:          "Okafor",
			Email:             "m.okafor@example.org",
			LicenseNumber:     "NY-518230",
			LicenseState:      "NY",
			Specializations:   []string{"Neurology"},
			YearsOfExperience: 9,
			Languages:         []string{"English"},
			ConsultationFee:   220,
			AcceptedInsurance: []string{"Cigna", "Medicare"},
			HospitalID:        "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e02",
			Reviews: []model.Review{
				{ID: "7b2e3c8a-1c3d-4c0a-af03-3c4d5e6f7a03", Rating: 5, Comment: "Explained everything clearly.", IsPublic: true, CreatedAt: reviewDate},
			},
			IsActive: true,
		},
		{
			ID:                "6a1d2b7f-0b2c-4b9f-9f02-2b3c4d5e6f03",
			FirstName:         "Priya",
			LastName:          "Raman",
			Email:             "p.raman@example.org",
			LicenseNumber:     "NY-605114",
			LicenseState:      "NY",
			Specializations:   []string{"Family Medicine", "Internal Medicine"},
			YearsOfExperience: 18,
			Languages:         []string{"English", "Tamil", "Hindi"},
			ConsultationFee:   150,
			AcceptedInsurance: []string{"Blue Cross Blue Shield", "Oscar", "Medicaid"},
			HospitalID:        "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e03",
			Reviews: []model.Review{
				{ID: "7b2e3c8a-1c3d-4c0a-af03-3c4d5e6f7a04", Rating: 4, IsPublic: true, CreatedAt: reviewDate},
				{ID: "7b2e3c8a-1c3d-4c0a-af03-3c4d5e6f7a05", Rating: 5, IsPublic: true, CreatedAt: reviewDate},
				{ID: "7b2e3c8a-1c3d-4c0a-af03-3c4d5e6f7a06", Rating: 3, Comment: "Long wait.", IsPublic: false, CreatedAt: reviewDate},
			},
			IsActive: true,
		},
		{
			ID:                "6a1d2b7f-0b2c-4b9f-9f02-2b3c4d5e6f04",
			FirstName:         "Sarah",
			LastName:          "Lindqvist",
			Email:             "s.lindqvist@example.org",
			LicenseNumber:     "NJ-330921",
			LicenseState:      "NJ",
			Specializations:   []string{"Pulmonology", "Internal Medicine"},
			YearsOfExperience: 7,
			Languages:         []string{"English", "Swedish"},
			ConsultationFee:   190,
			AcceptedInsurance: []string{"Aetna", "Horizon"},
			HospitalID:        "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e05",
			IsActive:          true,
		},
	}

	for _, d := range doctors {
		d.ApplyDefaults()
		d.RecalculateRating()
	}
	return doctors
}
