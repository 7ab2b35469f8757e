package ai

import (
	"context"
	"sort"
	"strings"

	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/gateway/llm"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	suggestCandidateLimit = 50
	suggestResultLimit    = 5

	scoreSpecialtyMatch  = 20.0
	scoreRatingWeight    = 5.0
	scoreSeniorityBonus  = 10.0
	scoreHospitalBonus   = 5.0
	seniorityThresholdYr = 10
)

// conditionSpecialties maps condition keywords to the specialties that treat
// them. Matching is case-insensitive substring over the condition name.
var conditionSpecialties = map[string][]string{
	"heart":        {"Cardiology"},
	"cardiac":      {"Cardiology"},
	"hypertension": {"Cardiology", "Internal Medicine"},
	"diabetes":     {"Endocrinology", "Internal Medicine"},
	"thyroid":      {"Endocrinology"},
	"asthma":       {"Pulmonology"},
	"copd":         {"Pulmonology"},
	"cancer":       {"Oncology"},
	"tumor":        {"Oncology"},
	"arthritis":    {"Rheumatology", "Orthopedics"},
	"fracture":     {"Orthopedics"},
	"back pain":    {"Orthopedics", "Neurology"},
	"migraine":     {"Neurology"},
	"seizure":      {"Neurology"},
	"stroke":       {"Neurology", "Cardiology"},
	"depression":   {"Psychiatry"},
	"anxiety":      {"Psychiatry"},
	"skin":         {"Dermatology"},
	"eczema":       {"Dermatology"},
	"kidney":       {"Nephrology"},
	"liver":        {"Gastroenterology", "Hepatology"},
	"stomach":      {"Gastroenterology"},
	"pregnancy":    {"Obstetrics and Gynecology"},
	"allergy":      {"Allergy and Immunology"},
}

// DoctorSuggestion is one scored candidate with an LLM justification.
type DoctorSuggestion struct {
	Doctor        *model.Doctor `json:"doctor"`
	Score         float64       `json:"score"`
	MatchedFor    []string      `json:"matchedFor"`
	Justification string        `json:"justification,omitempty"`
}

// SuggestDoctors scores doctors against the patient's active conditions and
// returns the top candidates. Scoring is deterministic and additive: 20 per
// matched specialty keyword, rating times 5, 10 for more than ten years of
// experience, 5 for a hospital affiliation. The LLM only writes one-line
// justifications for the winners.
func (s *Service) SuggestDoctors(ctx context.Context, patientID string) ([]*DoctorSuggestion, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		metrics.RecordAIGeneration("suggest_doctors", "error")
		return nil, err
	}

	targets := specialtiesForConditions(patient.ActiveConditions())
	if len(targets) == 0 {
		targets = map[string][]string{"General Medicine": nil}
	}

	candidates := map[string]*DoctorSuggestion{}
	for specialty, conditions := range targets {
		doctors, err := s.doctors.List(ctx, dal.DoctorFilter{Specialization: specialty}, suggestCandidateLimit, 0)
		if err != nil {
			metrics.RecordAIGeneration("suggest_doctors", "error")
			return nil, err
		}
		for _, d := range doctors {
			c, ok := candidates[d.ID]
			if !ok {
				c = &DoctorSuggestion{Doctor: d, Score: baseScore(d)}
				candidates[d.ID] = c
			}
			c.Score += scoreSpecialtyMatch
			c.MatchedFor = append(c.MatchedFor, conditions...)
		}
	}

	suggestions := make([]*DoctorSuggestion, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, c)
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Doctor.LastName < suggestions[j].Doctor.LastName
	})
	if len(suggestions) > suggestResultLimit {
		suggestions = suggestions[:suggestResultLimit]
	}

	for _, c := range suggestions {
		c.Justification = s.justify(ctx, patient, c.Doctor)
	}

	metrics.RecordAIGeneration("suggest_doctors", "success")
	return suggestions, nil
}

func baseScore(d *model.Doctor) float64 {
	score := d.AverageRating * scoreRatingWeight
	if d.YearsOfExperience > seniorityThresholdYr {
		score += scoreSeniorityBonus
	}
	if d.HospitalID != "" {
		score += scoreHospitalBonus
	}
	return score
}

// specialtiesForConditions returns specialty -> condition names that mapped to
// it.
func specialtiesForConditions(conditions []model.MedicalCondition) map[string][]string {
	out := map[string][]string{}
	for _, c := range conditions {
		name := strings.ToLower(c.Condition)
		for keyword, specialties := range conditionSpecialties {
			if !strings.Contains(name, keyword) {
				continue
			}
			for _, sp := range specialties {
				out[sp] = append(out[sp], c.Condition)
			}
		}
	}
	return out
}

// justify asks for a one-line justification. A failed call degrades to an
// empty justification, never an error.
func (s *Service) justify(ctx context.Context, p *model.Patient, d *model.Doctor) string {
	prompt := "In one sentence, write a justification for recommending " + d.FullName() +
		" (specialties: " + strings.Join(d.Specializations, ", ") + ") is a good match for a patient with: "
	var names []string
	for _, c := range p.ActiveConditions() {
		names = append(names, c.Condition)
	}
	prompt += strings.Join(names, ", ")

	reply, err := s.llm.Chat(ctx, []llm.Message{
		llm.System("You write one-sentence justifications for doctor recommendations. No diagnosis, no treatment advice."),
		llm.User(prompt),
	})
	if err != nil {
		log.Warn().Err(err).Str("doctor_id", d.ID).Msg("Justification generation failed")
		return ""
	}
	return strings.TrimSpace(reply)
}
