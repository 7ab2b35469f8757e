package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/medatlas/medatlas/internal/gateway/llm"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/pkg/apperrors"
)

// SymptomsRequest describes what the patient reports.
type SymptomsRequest struct {
	Symptoms []string `json:"symptoms"`
	Duration string   `json:"duration,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// SymptomSpecialty is one suggested specialty with its priority rank.
type SymptomSpecialty struct {
	Specialty string `json:"specialty"`
	Priority  int    `json:"priority"`
}

// SymptomAnalysis is the structured result of a symptom round trip.
type SymptomAnalysis struct {
	Specialties  []SymptomSpecialty `json:"specialties"`
	UrgencyLevel string             `json:"urgencyLevel"`
	RedFlags     []string           `json:"redFlags"`
}

// AnalyzeSymptoms maps reported symptoms to specialties in a single LLM round
// trip with a fixed JSON response shape.
func (s *Service) AnalyzeSymptoms(ctx context.Context, req SymptomsRequest) (*SymptomAnalysis, error) {
	if len(req.Symptoms) == 0 {
		metrics.RecordAIGeneration("analyze_symptoms", "error")
		return nil, apperrors.InvalidInput("At least one symptom is required")
	}

	prompt := "A patient reports these symptoms: " + strings.Join(req.Symptoms, ", ") + "."
	if req.Duration != "" {
		prompt += " Duration: " + req.Duration + "."
	}
	if req.Notes != "" {
		prompt += " Additional notes: " + req.Notes + "."
	}
	prompt += " Which medical specialties should the patient consider, in priority order? " +
		`Respond with exactly this JSON shape: {"specialties":[{"specialty":"","priority":1}],"urgencyLevel":"routine|soon|urgent|emergency","redFlags":[]}`

	raw, err := s.llm.Chat(ctx, []llm.Message{
		llm.System("You map symptoms to medical specialties for care navigation. You do not diagnose. Respond with JSON only."),
		llm.User(prompt),
	})
	if err != nil {
		metrics.RecordAIGeneration("analyze_symptoms", "error")
		return nil, err
	}

	var analysis SymptomAnalysis
	if err := json.Unmarshal([]byte(llm.StripJSONFences(raw)), &analysis); err != nil {
		metrics.RecordAIGeneration("analyze_symptoms", "error")
		return nil, apperrors.UpstreamProvider("symptom analysis response was not valid JSON", err)
	}
	if analysis.Specialties == nil {
		analysis.Specialties = []SymptomSpecialty{}
	}
	if analysis.RedFlags == nil {
		analysis.RedFlags = []string{}
	}

	metrics.RecordAIGeneration("analyze_symptoms", "success")
	return &analysis, nil
}
