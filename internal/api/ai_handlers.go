package api

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/medatlas/medatlas/internal/ai"
	"github.com/rs/zerolog/log"
)

// maxHistoryUploadBytes caps uploaded medical-history documents at 5 MB.
const maxHistoryUploadBytes = 5 << 20

// GenerateSummary runs the two-step patient summary generation.
func (h *Handlers) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.assistant.GeneratePatientSummary(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

// SuggestDoctors scores and returns doctor recommendations for a patient.
func (h *Handlers) SuggestDoctors(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.assistant.SuggestDoctors(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		writeError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []*ai.DoctorSuggestion{}
	}
	writeData(w, http.StatusOK, suggestions)
}

// AnalyzeSymptoms maps reported symptoms to specialties.
func (h *Handlers) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req ai.SymptomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	analysis, err := h.assistant.AnalyzeSymptoms(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, analysis)
}

// GenerateInsights narrates vital-sign trends for a patient.
func (h *Handlers) GenerateInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.assistant.GenerateHealthInsights(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, insights)
}

// Chat answers a stateless conversational exchange.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages []ai.ChatTurn `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.Messages) == 0 {
		writeMessage(w, http.StatusBadRequest, "messages is required")
		return
	}

	reply, err := h.assistant.Chat(r.Context(), req.Messages)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"reply": reply})
}

// SummarizeHistory accepts a multipart text file and summarizes it. The
// upload is staged in a temp file that is removed whether or not the
// summary succeeds.
func (h *Handlers) SummarizeHistory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxHistoryUploadBytes)
	if err := r.ParseMultipartForm(maxHistoryUploadBytes); err != nil {
		writeMessage(w, http.StatusBadRequest, "Expected a multipart upload of at most 5 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "A file field named 'file' is required")
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "history-*.txt")
	if err != nil {
		writeError(w, err)
		return
	}
	defer func() {
		tmp.Close()
		if removeErr := os.Remove(tmp.Name()); removeErr != nil {
			log.Warn().Err(removeErr).Str("path", tmp.Name()).Msg("Failed to remove upload temp file")
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		writeError(w, err)
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		writeError(w, err)
		return
	}
	content, err := io.ReadAll(tmp)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("filename", header.Filename).Int("bytes", len(content)).Msg("History document uploaded")

	summary, err := h.assistant.SummarizeHistoryText(r.Context(), string(content))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"summary": summary})
}
