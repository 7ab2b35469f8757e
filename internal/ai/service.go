package ai

import (
	"context"

	"github.com/medatlas/medatlas/internal/dal"
	"github.com/medatlas/medatlas/internal/gateway/llm"
	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/internal/model"
)

// PatientRepository is the patient store surface the AI service needs.
type PatientRepository interface {
	Get(ctx context.Context, id string) (*model.Patient, error)
	Upsert(ctx context.Context, p *model.Patient) error
}

// DoctorRepository is the doctor store surface the AI service needs.
type DoctorRepository interface {
	List(ctx context.Context, f dal.DoctorFilter, limit, offset int) ([]*model.Doctor, error)
}

// HospitalRepository is the hospital store surface the AI service needs.
type HospitalRepository interface {
	Get(ctx context.Context, id string) (*model.Hospital, error)
}

// Service runs the LLM-backed operations: patient summaries, doctor
// suggestions, symptom analysis, health insights and chat.
type Service struct {
	patients  PatientRepository
	doctors   DoctorRepository
	hospitals HospitalRepository
	llm       llm.Client
}

// NewService builds the AI service.
func NewService(patients PatientRepository, doctors DoctorRepository, hospitals HospitalRepository, client llm.Client) *Service {
	return &Service{
		patients:  patients,
		doctors:   doctors,
		hospitals: hospitals,
		llm:       client,
	}
}

const chatSystemPrompt = "You are a helpful healthcare information assistant. " +
	"You provide general health information and help people navigate care options. " +
	"You do not diagnose conditions or prescribe treatment; always remind users that " +
	"your answers are not a medical diagnosis and that they should consult a qualified " +
	"clinician for medical decisions."

// ChatTurn is one message in a stateless chat exchange. The caller supplies
// the full prior conversation on every request.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat answers a conversational turn. No server-side history is kept.
func (s *Service) Chat(ctx context.Context, turns []ChatTurn) (string, error) {
	messages := make([]llm.Message, 0, len(turns)+1)
	messages = append(messages, llm.System(chatSystemPrompt))
	for _, t := range turns {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}

	reply, err := s.llm.Chat(ctx, messages)
	if err != nil {
		metrics.RecordAIGeneration("chat", "error")
		return "", err
	}
	metrics.RecordAIGeneration("chat", "success")
	return reply, nil
}
