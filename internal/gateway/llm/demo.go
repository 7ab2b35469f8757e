package llm

import (
	"context"
	"strings"
)

// DemoClient is the deterministic fallback used whenever no provider
// credential is configured. Responses are keyword-triggered and always
// well-shaped: extraction prompts get valid JSON, free-text prompts get fixed
// prose. It never returns an error.
type DemoClient struct{}

// NewDemoClient creates the demo client.
func NewDemoClient() *DemoClient {
	return &DemoClient{}
}

const demoSummary = "Demo mode: this is a sample health summary. The patient's " +
	"recorded conditions and medications were reviewed. Overall status appears " +
	"stable based on the available records. Schedule a routine follow-up with " +
	"the primary care doctor and keep medication lists up to date. This is not " +
	"a medical diagnosis."

const demoExtraction = `{"riskFactors":["Limited recent vital sign data","Medication adherence not verified"],"recommendations":["Schedule a routine check-up","Review current medications with your doctor","Maintain a balanced diet and regular exercise"],"riskScore":35}`

const demoSymptoms = `{"specialties":[{"specialty":"General Medicine","priority":1},{"specialty":"Internal Medicine","priority":2}],"urgencyLevel":"routine","redFlags":[]}`

const demoInsights = "Demo mode: compared with the previous reading, the " +
	"tracked vital signs show no significant change. Trends look stable. " +
	"Continue regular monitoring and discuss any sudden changes with your doctor."

const demoChat = "Demo mode: I can help with general health information, " +
	"finding doctors, and understanding your records. I cannot provide a " +
	"diagnosis; please consult a healthcare professional for medical advice."

const demoJustification = "Demo mode: this doctor matches the requested specialty and has strong patient ratings."

// Chat picks a canned response from keywords in the last user message.
func (d *DemoClient) Chat(ctx context.Context, messages []Message) (string, error) {
	last := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == roleUser {
			last = strings.ToLower(messages[i].Content)
			break
		}
	}

	switch {
	case strings.Contains(last, "riskfactors") || strings.Contains(last, "risk factors"):
		return demoExtraction, nil
	case strings.Contains(last, "symptom"):
		return demoSymptoms, nil
	case strings.Contains(last, "justification") || strings.Contains(last, "why this doctor"):
		return demoJustification, nil
	case strings.Contains(last, "summary"):
		return demoSummary, nil
	case strings.Contains(last, "trend") || strings.Contains(last, "vital"):
		return demoInsights, nil
	default:
		return demoChat, nil
	}
}
