package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/medatlas/medatlas/internal/gateway/llm"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/rs/zerolog/log"
)

// SummaryResult carries both halves of a generated summary: the free-text
// narrative and the structured extraction.
type SummaryResult struct {
	Summary         string   `json:"summary"`
	RiskFactors     []string `json:"riskFactors"`
	Recommendations []string `json:"recommendations"`
	RiskScore       int      `json:"riskScore"`
}

type summaryExtraction struct {
	RiskFactors     []string `json:"riskFactors"`
	Recommendations []string `json:"recommendations"`
	RiskScore       int      `json:"riskScore"`
}

// GeneratePatientSummary builds a health summary for the patient in two LLM
// round trips: a free-text narrative, then a structured extraction. A
// malformed extraction degrades to an empty structured block rather than
// failing the call. The result is persisted on the patient document.
func (s *Service) GeneratePatientSummary(ctx context.Context, patientID string) (*SummaryResult, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		metrics.RecordAIGeneration("summary", "error")
		return nil, err
	}

	payload := buildPatientContext(patient)

	summary, err := s.llm.Chat(ctx, []llm.Message{
		llm.System("You are a clinical documentation assistant. Write clear, factual prose for care coordination. This is not a diagnosis."),
		llm.User("Write a comprehensive health summary for the following patient record:\n\n" + payload),
	})
	if err != nil {
		metrics.RecordAIGeneration("summary", "error")
		return nil, err
	}

	extractionRaw, err := s.llm.Chat(ctx, []llm.Message{
		llm.System("You extract structured data from patient records. Respond with JSON only, no prose."),
		llm.User("From the following patient record, extract riskFactors (string array), recommendations (string array) and riskScore (integer 0-100). " +
			`Respond with exactly this JSON shape: {"riskFactors":[],"recommendations":[],"riskScore":0}` + "\n\n" + payload),
	})
	if err != nil {
		metrics.RecordAIGeneration("summary", "error")
		return nil, err
	}

	var extraction summaryExtraction
	if err := json.Unmarshal([]byte(llm.StripJSONFences(extractionRaw)), &extraction); err != nil {
		log.Warn().Err(err).Str("patient_id", patientID).Msg("Summary extraction was not valid JSON, storing empty structured block")
		extraction = summaryExtraction{}
	}
	if extraction.RiskFactors == nil {
		extraction.RiskFactors = []string{}
	}
	if extraction.Recommendations == nil {
		extraction.Recommendations = []string{}
	}

	patient.HealthSummary = &model.HealthSummary{
		Summary:         summary,
		RiskFactors:     extraction.RiskFactors,
		Recommendations: extraction.Recommendations,
		RiskScore:       extraction.RiskScore,
		GeneratedAt:     time.Now().UTC(),
	}
	if err := s.patients.Upsert(ctx, patient); err != nil {
		metrics.RecordAIGeneration("summary", "error")
		return nil, err
	}

	metrics.RecordAIGeneration("summary", "success")
	return &SummaryResult{
		Summary:         summary,
		RiskFactors:     extraction.RiskFactors,
		Recommendations: extraction.Recommendations,
		RiskScore:       extraction.RiskScore,
	}, nil
}

// SummarizeHistoryText summarizes an uploaded medical-history document.
func (s *Service) SummarizeHistoryText(ctx context.Context, text string) (string, error) {
	summary, err := s.llm.Chat(ctx, []llm.Message{
		llm.System("You are a clinical documentation assistant. Summarize uploaded medical history documents into concise prose. This is not a diagnosis."),
		llm.User("Write a summary of the key conditions, medications and open concerns in this medical history:\n\n" + text),
	})
	if err != nil {
		metrics.RecordAIGeneration("history_summary", "error")
		return "", err
	}
	metrics.RecordAIGeneration("history_summary", "success")
	return summary, nil
}

// buildPatientContext flattens the clinically relevant parts of a patient
// record into the prompt payload.
func buildPatientContext(p *model.Patient) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Patient: %s %s\n", p.FirstName, p.LastName)
	if p.DateOfBirth != "" {
		fmt.Fprintf(&b, "Date of birth: %s\n", p.DateOfBirth)
	}
	if p.Gender != "" {
		fmt.Fprintf(&b, "Gender: %s\n", p.Gender)
	}

	conditions := p.ActiveConditions()
	if len(conditions) > 0 {
		b.WriteString("Active conditions:\n")
		for _, c := range conditions {
			fmt.Fprintf(&b, "- %s (status: %s", c.Condition, c.Status)
			if c.Severity != "" {
				fmt.Fprintf(&b, ", severity: %s", c.Severity)
			}
			b.WriteString(")\n")
		}
	}

	medications := p.ActiveMedications()
	if len(medications) > 0 {
		b.WriteString("Current medications:\n")
		for _, m := range medications {
			fmt.Fprintf(&b, "- %s %s %s\n", m.Name, m.Dosage, m.Frequency)
		}
	}

	if len(p.Allergies) > 0 {
		fmt.Fprintf(&b, "Allergies: %s\n", strings.Join(p.Allergies, ", "))
	}

	if v := p.LatestVitals(); v != nil {
		fmt.Fprintf(&b, "Latest vitals (%s):", v.RecordedAt.Format("2006-01-02"))
		if v.HeartRate > 0 {
			fmt.Fprintf(&b, " heart rate %.0f bpm,", v.HeartRate)
		}
		if v.SystolicBP > 0 && v.DiastolicBP > 0 {
			fmt.Fprintf(&b, " blood pressure %.0f/%.0f,", v.SystolicBP, v.DiastolicBP)
		}
		if v.Temperature > 0 {
			fmt.Fprintf(&b, " temperature %.1f,", v.Temperature)
		}
		if v.OxygenSaturation > 0 {
			fmt.Fprintf(&b, " oxygen saturation %.0f%%,", v.OxygenSaturation)
		}
		b.WriteString("\n")
	}

	return b.String()
}
