package seed

import "github.com/medatlas/medatlas/internal/model"

// DemoHospitals returns the bundled NYC-area hospital dataset. The seeder
// loads these into the store; the locator also serves them directly when it
// runs in demo mode against an empty store.
func DemoHospitals() []*model.Hospital {
	hospitals := []*model.Hospital{
		{
			ID:   "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e01",
			Name: "Downtown Medical Center",
			Address: model.Address{
				Street:  "170 William St",
				City:    "New York",
				State:   "NY",
				ZipCode: "10038",
				Country: "USA",
			},
			Location:    model.NewGeoPoint(40.7097, -74.0057),
			Phone:       "+1-212-555-0101",
			Specialties: []string{"Emergency Medicine", "Cardiology", "General Surgery"},
			EmergencyServices: []model.EmergencyService{
				{Name: "trauma", Capacity: 20, CurrentLoad: 8, AverageWaitMinutes: 25},
				{Name: "cardiac-emergency", Capacity: 10, CurrentLoad: 3, AverageWaitMinutes: 15},
			},
			Emergency24x7:     true,
			BedCount:          model.BedCount{Total: 400, Available: 86, ICU: 24, Emergency: 40, General: 336},
			AcceptedInsurance: []string{"Aetna", "Blue Cross Blue Shield", "United Healthcare"},
			IsActive:          true,
		},
		{
			ID:   "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e02",
			Name: "Riverside General Hospital",
			Address: model.Address{
				Street:  "622 W 168th St",
				City:    "New York",
				State:   "NY",
				ZipCode: "10032",
				Country: "USA",
			},
			Location:    model.NewGeoPoint(40.8404, -73.9419),
			Phone:       "+1-212-555-0102",
			Specialties: []string{"Neurology", "Oncology", "Pediatrics", "Cardiology"},
			EmergencyServices: []model.EmergencyService{
				{Name: "trauma", Capacity: 30, CurrentLoad: 18, AverageWaitMinutes: 40},
				{Name: "critical-care", Capacity: 15, CurrentLoad: 9, AverageWaitMinutes: 30},
			},
			Emergency24x7:     true,
			BedCount:          model.BedCount{Total: 650, Available: 120, ICU: 40, Emergency: 60, General: 550},
			AcceptedInsurance: []string{"Aetna", "Cigna", "Medicare"},
			IsActive:          true,
		},
		{
			ID:   "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e03",
			Name: "Brooklyn Heights Clinic",
			Address: model.Address{
				Street:  "100 Clinton St",
				City:    "Brooklyn",
				State:   "NY",
				ZipCode: "11201",
				Country: "USA",
			},
			Location:          model.NewGeoPoint(40.6925, -73.9928),
			Phone:             "+1-718-555-0103",
			Specialties:       []string{"Family Medicine", "Dermatology", "Orthopedics"},
			EmergencyServices: []model.EmergencyService{},
			Emergency24x7:     false,
			BedCount:          model.BedCount{Total: 80, Available: 22, ICU: 0, Emergency: 0, General: 80},
			AcceptedInsurance: []string{"Blue Cross Blue Shield", "Oscar"},
			IsActive:          true,
		},
		{
			ID:   "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e04",
			Name: "Queensview Emergency Hospital",
			Address: model.Address{
				Street:  "82-68 164th St",
				City:    "Queens",
				State:   "NY",
				ZipCode: "11432",
				Country: "USA",
			},
			Location:    model.NewGeoPoint(40.7110, -73.7955),
			Phone:       "+1-718-555-0104",
			Specialties: []string{"Emergency Medicine", "Internal Medicine"},
			EmergencyServices: []model.EmergencyService{
				{Name: "trauma", Capacity: 25, CurrentLoad: 5, AverageWaitMinutes: 18},
			},
			Emergency24x7:     true,
			BedCount:          model.BedCount{Total: 300, Available: 95, ICU: 16, Emergency: 35, General: 265},
			AcceptedInsurance: []string{"United Healthcare", "Medicaid", "Medicare"},
			IsActive:          true,
		},
		{
			ID:   "5f0c1a6e-9a1b-4a8e-8e01-1a2b3c4d5e05",
			Name: "Jersey City Medical Pavilion",
			Address: model.Address{
				Street:  "355 Grand St",
				City:    "Jersey City",
				State:   "NJ",
				ZipCode: "07302",
				Country: "USA",
			},
			Location:    model.NewGeoPoint(40.7178, -74.0536),
			Phone:       "+1-201-555-0105",
			Specialties: []string{"Cardiology", "Pulmonology", "General Surgery"},
			EmergencyServices: []model.EmergencyService{
				{Name: "cardiac-emergency", Capacity: 12, CurrentLoad: 6, AverageWaitMinutes: 22},
			},
			Emergency24x7:     true,
			BedCount:          model.BedCount{Total: 250, Available: 40, ICU: 12, Emergency: 25, General: 225},
			AcceptedInsurance: []string{"Aetna", "Horizon", "Cigna"},
			IsActive:          true,
		},
	}

	for _, h := range hospitals {
		h.ApplyDefaults()
	}
	return hospitals
}
