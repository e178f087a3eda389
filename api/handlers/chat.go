package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/havenapp/haven-api/ai"
	"github.com/havenapp/haven-api/config"
)

// Chat serves the two assistant personas, both backed by the same
// local model endpoint.
type Chat struct {
	AI *ai.OllamaClient
}

type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type supportChatResponse struct {
	Reply         string `json:"reply"`
	DistressLevel string `json:"distressLevel"`
}

// SupportChatHandler returns an empathetic reply plus a distress
// reading of the incoming message. Model failures still yield a usable
// reply, the canned fallback, so the response is always 200.
func (c Chat) SupportChatHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Message == "" {
		config.ErrorStatus("message is required", http.StatusBadRequest, w, errInvalidInput)
		return
	}

	reply := c.AI.SupportReply(r.Context(), req.Message, req.Language)
	level := c.AI.DistressLevel(r.Context(), req.Message)

	_ = json.NewEncoder(w).Encode(supportChatResponse{Reply: reply, DistressLevel: level})
}

// LegalChatHandler answers a legal question in the requested language
func (c Chat) LegalChatHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Message == "" {
		config.ErrorStatus("message is required", http.StatusBadRequest, w, errInvalidInput)
		return
	}

	reply := c.AI.LegalReply(r.Context(), req.Message, req.Language)
	_ = json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}
