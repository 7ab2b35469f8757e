package ai

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/medatlas/medatlas/internal/gateway/llm"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/internal/model"
	"github.com/medatlas/medatlas/pkg/apperrors"
)

// VitalTrend is the computed movement of one metric between the two most
// recent readings.
type VitalTrend struct {
	Metric    string  `json:"metric"`
	Previous  float64 `json:"previous"`
	Latest    float64 `json:"latest"`
	Delta     float64 `json:"delta"`
	Percent   float64 `json:"percent"`
	Direction string  `json:"direction"`
}

// HealthInsights pairs the computed trends with the LLM narrative.
type HealthInsights struct {
	Trends    []VitalTrend `json:"trends"`
	Narrative string       `json:"narrative"`
}

// GenerateHealthInsights compares the patient's two most recent vital-sign
// readings and narrates the movement. Requires at least two readings.
func (s *Service) GenerateHealthInsights(ctx context.Context, patientID string) (*HealthInsights, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		metrics.RecordAIGeneration("insights", "error")
		return nil, err
	}

	if len(patient.VitalSigns) < 2 {
		metrics.RecordAIGeneration("insights", "error")
		return nil, apperrors.InvalidInput("At least two vital sign readings are required for insights")
	}

	readings := make([]model.VitalSigns, len(patient.VitalSigns))
	copy(readings, patient.VitalSigns)
	sort.Slice(readings, func(i, j int) bool {
		return readings[i].RecordedAt.Before(readings[j].RecordedAt)
	})
	previous := readings[len(readings)-2]
	latest := readings[len(readings)-1]

	trends := computeTrends(previous, latest)

	var b strings.Builder
	fmt.Fprintf(&b, "Vital sign changes for %s %s between %s and %s:\n",
		patient.FirstName, patient.LastName,
		previous.RecordedAt.Format("2006-01-02"), latest.RecordedAt.Format("2006-01-02"))
	for _, t := range trends {
		fmt.Fprintf(&b, "- %s: %.1f -> %.1f (%+.1f%%, %s)\n", t.Metric, t.Previous, t.Latest, t.Percent, t.Direction)
	}

	narrative, err := s.llm.Chat(ctx, []llm.Message{
		llm.System("You explain vital sign trends in plain language for patients. No diagnosis; recommend consulting a clinician about concerning changes."),
		llm.User("Explain what these changes mean in plain language:\n\n" + b.String()),
	})
	if err != nil {
		metrics.RecordAIGeneration("insights", "error")
		return nil, err
	}

	metrics.RecordAIGeneration("insights", "success")
	return &HealthInsights{Trends: trends, Narrative: narrative}, nil
}

// computeTrends compares metrics present in both readings. Movement under one
// percent counts as stable.
func computeTrends(previous, latest model.VitalSigns) []VitalTrend {
	pairs := []struct {
		metric   string
		previous float64
		latest   float64
	}{
		{"heartRate", previous.HeartRate, latest.HeartRate},
		{"systolicBp", previous.SystolicBP, latest.SystolicBP},
		{"diastolicBp", previous.DiastolicBP, latest.DiastolicBP},
		{"temperature", previous.Temperature, latest.Temperature},
		{"respiratoryRate", previous.RespiratoryRate, latest.RespiratoryRate},
		{"oxygenSaturation", previous.OxygenSaturation, latest.OxygenSaturation},
		{"weightKg", previous.WeightKg, latest.WeightKg},
	}

	var trends []VitalTrend
	for _, p := range pairs {
		if p.previous <= 0 || p.latest <= 0 {
			continue
		}
		delta := p.latest - p.previous
		percent := delta / p.previous * 100
		direction := "stable"
		if math.Abs(percent) >= 1 {
			if delta > 0 {
				direction = "rising"
			} else {
				direction = "falling"
			}
		}
		trends = append(trends, VitalTrend{
			Metric:    p.metric,
			Previous:  p.previous,
			Latest:    p.latest,
			Delta:     math.Round(delta*10) / 10,
			Percent:   math.Round(percent*10) / 10,
			Direction: direction,
		})
	}
	return trends
}
