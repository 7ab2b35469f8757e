package seed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/medatlas/medatlas/internal/model"
)

func TestDemoDatasetShape(t *testing.T) {
	hospitals := DemoHospitals()
	if len(hospitals) == 0 {
		t.Fatal("demo dataset has no hospitals")
	}

	hospitalIDs := make(map[string]bool, len(hospitals))
	for _, h := range hospitals {
		if _, err := uuid.Parse(h.ID); err != nil {
			t.Errorf("hospital %q has a non-uuid id %q", h.Name, h.ID)
		}
		if h.DocType != model.DocTypeHospital {
			t.Errorf("hospital %q docType = %q", h.Name, h.DocType)
		}
		if !h.IsActive {
			t.Errorf("hospital %q must be active", h.Name)
		}
		if h.Location.Lat() == 0 && h.Location.Lng() == 0 {
			t.Errorf("hospital %q is missing coordinates", h.Name)
		}
		hospitalIDs[h.ID] = true
	}

	for _, d := range DemoDoctors() {
		if _, err := uuid.Parse(d.ID); err != nil {
			t.Errorf("doctor %s %s has a non-uuid id %q", d.FirstName, d.LastName, d.ID)
		}
		if d.HospitalID != "" && !hospitalIDs[d.HospitalID] {
			t.Errorf("doctor %s %s references unknown hospital %q", d.FirstName, d.LastName, d.HospitalID)
		}
		var want model.Doctor
		want.Reviews = d.Reviews
		want.RecalculateRating()
		if d.AverageRating != want.AverageRating {
			t.Errorf("doctor %s %s rating = %v, want %v from reviews", d.FirstName, d.LastName, d.AverageRating, want.AverageRating)
		}
	}

	for _, p := range DemoPatients() {
		if _, err := uuid.Parse(p.ID); err != nil {
			t.Errorf("patient %s %s has a non-uuid id %q", p.FirstName, p.LastName, p.ID)
		}
		primaries := 0
		for _, c := range p.EmergencyContacts {
			if c.IsPrimary {
				primaries++
			}
		}
		if primaries > 1 {
			t.Errorf("patient %s %s has %d primary emergency contacts", p.FirstName, p.LastName, primaries)
		}
	}
}

type patientFunc func(ctx context.Context, p *model.Patient) error

func (f patientFunc) Upsert(ctx context.Context, p *model.Patient) error { return f(ctx, p) }

type doctorFunc func(ctx context.Context, d *model.Doctor) error

func (f doctorFunc) Upsert(ctx context.Context, d *model.Doctor) error { return f(ctx, d) }

type hospitalFunc func(ctx context.Context, h *model.Hospital) error

func (f hospitalFunc) Upsert(ctx context.Context, h *model.Hospital) error { return f(ctx, h) }

func TestRunUpsertsEverything(t *testing.T) {
	var patients, doctors, hospitals int
	stores := Stores{
		Patients: patientFunc(func(ctx context.Context, p *model.Patient) error {
			patients++
			return nil
		}),
		Doctors: doctorFunc(func(ctx context.Context, d *model.Doctor) error {
			doctors++
			return nil
		}),
		Hospitals: hospitalFunc(func(ctx context.Context, h *model.Hospital) error {
			hospitals++
			return nil
		}),
	}

	if err := Run(context.Background(), stores); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if hospitals != len(DemoHospitals()) {
		t.Errorf("hospitals upserted = %d, want %d", hospitals, len(DemoHospitals()))
	}
	if doctors != len(DemoDoctors()) {
		t.Errorf("doctors upserted = %d, want %d", doctors, len(DemoDoctors()))
	}
	if patients != len(DemoPatients()) {
		t.Errorf("patients upserted = %d, want %d", patients, len(DemoPatients()))
	}
}
