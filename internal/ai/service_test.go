package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/gateway/llm"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/medatlas/medatlas/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatientRepo struct {
	patients map[string]*model.Patient
	upserted []*model.Patient
}

func newFakePatientRepo(patients ...*model.Patient) *fakePatientRepo {
	repo := &fakePatientRepo{patients: map[string]*model.Patient{}}
	for _, p := range patients {
		repo.patients[p.ID] = p
	}
	return repo
}

func (f *fakePatientRepo) Get(ctx context.Context, id string) (*model.Patient, error) {
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, apperrors.NotFound("patient not found")
}

func (f *fakePatientRepo) Upsert(ctx context.Context, p *model.Patient) error {
	f.patients[p.ID] = p
	f.upserted = append(f.upserted, p)
	return nil
}

type fakeDoctorRepo struct {
	doctors []*model.Doctor
}

func (f *fakeDoctorRepo) List(ctx context.Context, filter dal.DoctorFilter, limit, offset int) ([]*model.Doctor, error) {
	var out []*model.Doctor
	for _, d := range f.doctors {
		if !d.IsActive {
			continue
		}
		if filter.Specialization != "" && !d.HasSpecialization(filter.Specialization) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type fakeHospitalRepo struct{}

func (fakeHospitalRepo) Get(ctx context.Context, id string) (*model.Hospital, error) {
	return nil, apperrors.NotFound("hospital not found")
}

// scriptedLLM returns queued replies in order, falling back to the last one.
type scriptedLLM struct {
	replies []string
	prompts []string
}

func (s *scriptedLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	s.prompts = append(s.prompts, messages[len(messages)-1].Content)
	if len(s.replies) == 0 {
		return "", apperrors.UpstreamProvider("no scripted reply", nil)
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

func testPatient() *model.Patient {
	return &model.Patient{
		ID:        "p1",
		FirstName: "James",
		LastName:  "Whitfield",
		MedicalHistory: []model.MedicalCondition{
			{Condition: "Hypertension", Status: model.ConditionChronic},
		},
		IsActive: true,
	}
}

func TestGeneratePatientSummary(t *testing.T) {
	patients := newFakePatientRepo(testPatient())
	client := &scriptedLLM{replies: []string{
		"The patient is stable.",
		`{"riskFactors":["hypertension"],"recommendations":["monitor blood pressure"],"riskScore":40}`,
	}}
	svc := NewService(patients, &fakeDoctorRepo{}, fakeHospitalRepo{}, client)

	result, err := svc.GeneratePatientSummary(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "The patient is stable.", result.Summary)
	assert.Equal(t, []string{"hypertension"}, result.RiskFactors)
	assert.Equal(t, 40, result.RiskScore)

	// Result is persisted wholesale on the patient document.
	require.Len(t, patients.upserted, 1)
	stored := patients.upserted[0].HealthSummary
	require.NotNil(t, stored)
	assert.Equal(t, "The patient is stable.", stored.Summary)
	assert.Equal(t, 40, stored.RiskScore)
	assert.False(t, stored.GeneratedAt.IsZero())
}

func TestGeneratePatientSummaryMalformedExtraction(t *testing.T) {
	patients := newFakePatientRepo(testPatient())
	client := &scriptedLLM{replies: []string{
		"The patient is stable.",
		"sorry, I cannot produce JSON today",
	}}
	svc := NewService(patients, &fakeDoctorRepo{}, fakeHospitalRepo{}, client)

	result, err := svc.GeneratePatientSummary(context.Background(), "p1")
	require.NoError(t, err, "malformed extraction must degrade, not fail")

	assert.Equal(t, "The patient is stable.", result.Summary)
	assert.Empty(t, result.RiskFactors)
	assert.Empty(t, result.Recommendations)
	assert.Zero(t, result.RiskScore)

	require.Len(t, patients.upserted, 1)
	require.NotNil(t, patients.upserted[0].HealthSummary)
}

func TestGeneratePatientSummaryFencedExtraction(t *testing.T) {
	patients := newFakePatientRepo(testPatient())
	client := &scriptedLLM{replies: []string{
		"Summary text.",
		"```json\n{\"riskFactors\":[],\"recommendations\":[],\"riskScore\":10}\n```",
	}}
	svc := NewService(patients, &fakeDoctorRepo{}, fakeHospitalRepo{}, client)

	result, err := svc.GeneratePatientSummary(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, result.RiskScore)
}

func TestGeneratePatientSummaryUnknownPatient(t *testing.T) {
	svc := NewService(newFakePatientRepo(), &fakeDoctorRepo{}, fakeHospitalRepo{}, &scriptedLLM{})

	_, err := svc.GeneratePatientSummary(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestSuggestDoctorsScoring(t *testing.T) {
	patients := newFakePatientRepo(testPatient())
	doctors := &fakeDoctorRepo{doctors: []*model.Doctor{
		{
			ID: "senior", FirstName: "A", LastName: "Senior",
			Specializations: []string{"Cardiology"}, AverageRating: 4.0,
			YearsOfExperience: 15, HospitalID: "h1", IsActive: true,
		},
		{
			ID: "junior", FirstName: "B", LastName: "Junior",
			Specializations: []string{"Cardiology"}, AverageRating: 4.0,
			YearsOfExperience: 4, IsActive: true,
		},
	}}
	client := &scriptedLLM{replies: []string{"Good cardiology match."}}
	svc := NewService(patients, doctors, fakeHospitalRepo{}, client)

	suggestions, err := svc.SuggestDoctors(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// Hypertension maps to Cardiology and Internal Medicine. Both doctors
	// match Cardiology only: 20 + 4*5 = 40 base, the senior gets +10
	// experience and +5 affiliation.
	assert.Equal(t, "senior", suggestions[0].Doctor.ID)
	assert.Equal(t, 55.0, suggestions[0].Score)
	assert.Equal(t, "junior", suggestions[1].Doctor.ID)
	assert.Equal(t, 40.0, suggestions[1].Score)

	for _, s := range suggestions {
		assert.NotEmpty(t, s.Justification)
	}
}

func TestAnalyzeSymptoms(t *testing.T) {
	client := &scriptedLLM{replies: []string{
		`{"specialties":[{"specialty":"Pulmonology","priority":1}],"urgencyLevel":"soon","redFlags":["shortness of breath at rest"]}`,
	}}
	svc := NewService(newFakePatientRepo(), &fakeDoctorRepo{}, fakeHospitalRepo{}, client)

	analysis, err := svc.AnalyzeSymptoms(context.Background(), SymptomsRequest{
		Symptoms: []string{"cough", "wheezing"},
		Duration: "two weeks",
	})
	require.NoError(t, err)
	require.Len(t, analysis.Specialties, 1)
	assert.Equal(t, "Pulmonology", analysis.Specialties[0].Specialty)
	assert.Equal(t, "soon", analysis.UrgencyLevel)

	require.Len(t, client.prompts, 1)
	assert.True(t, strings.Contains(client.prompts[0], "cough"))
}

func TestAnalyzeSymptomsRequiresSymptoms(t *testing.T) {
	svc := NewService(newFakePatientRepo(), &fakeDoctorRepo{}, fakeHospitalRepo{}, &scriptedLLM{})

	_, err := svc.AnalyzeSymptoms(context.Background(), SymptomsRequest{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestGenerateHealthInsightsRequiresTwoReadings(t *testing.T) {
	p := testPatient()
	p.VitalSigns = []model.VitalSigns{
		{RecordedAt: time.Now().UTC(), HeartRate: 70},
	}
	svc := NewService(newFakePatientRepo(p), &fakeDoctorRepo{}, fakeHospitalRepo{}, &scriptedLLM{})

	_, err := svc.GenerateHealthInsights(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
}

func TestGenerateHealthInsightsTrends(t *testing.T) {
	p := testPatient()
	p.VitalSigns = []model.VitalSigns{
		{RecordedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), HeartRate: 80, SystolicBP: 140},
		{RecordedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), HeartRate: 72, SystolicBP: 140},
	}
	client := &scriptedLLM{replies: []string{"Heart rate improved."}}
	svc := NewService(newFakePatientRepo(p), &fakeDoctorRepo{}, fakeHospitalRepo{}, client)

	insights, err := svc.GenerateHealthInsights(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Heart rate improved.", insights.Narrative)
	require.Len(t, insights.Trends, 2)

	byMetric := map[string]VitalTrend{}
	for _, tr := range insights.Trends {
		byMetric[tr.Metric] = tr
	}
	assert.Equal(t, "falling", byMetric["heartRate"].Direction)
	assert.Equal(t, -8.0, byMetric["heartRate"].Delta)
	assert.Equal(t, "stable", byMetric["systolicBp"].Direction)
}

func TestChatPrependsSystemInstruction(t *testing.T) {
	client := &capturingLLM{reply: "General information only."}
	svc := NewService(newFakePatientRepo(), &fakeDoctorRepo{}, fakeHospitalRepo{}, client)

	reply, err := svc.Chat(context.Background(), []ChatTurn{
		{Role: "user", Content: "What is a cardiologist?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "General information only.", reply)

	require.NotEmpty(t, client.messages)
	assert.Equal(t, "system", client.messages[0].Role)
	assert.Contains(t, client.messages[0].Content, "not a medical diagnosis")
}

// capturingLLM records the full message list.
type capturingLLM struct {
	reply    string
	messages []llm.Message
}

func (c *capturingLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	c.messages = messages
	return c.reply, nil
}
