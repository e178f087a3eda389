package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/havenapp/haven-api/models"
)

// FallbackReply is returned whenever the generation endpoint cannot be
// reached or answers with garbage. Callers show it to the user instead
// of an error.
const FallbackReply = "I'm having trouble connecting to my brain right now. Please make sure Ollama is running locally."

const narrativePrompt = `
Generate a covert SOS narrative that appears innocent but contains encoded help signals.
Transform the abuse details into a seemingly casual social media post.
`

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// OllamaClient talks to a locally running Ollama generate endpoint. One
// endpoint serves every prompt type; requests differ only in prompt
// text.
type OllamaClient struct {
	URL        string
	Model      string
	HTTPClient *http.Client
}

// NewOllamaClient returns a client for the given endpoint and model
func NewOllamaClient(url, model string) *OllamaClient {
	return &OllamaClient{
		URL:        url,
		Model:      model,
		HTTPClient: http.DefaultClient,
	}
}

// Generate posts the prompt and returns the trimmed response text. Any
// failure resolves to FallbackReply; there is no retry.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) string {
	body, err := json.Marshal(generateRequest{Model: c.Model, Prompt: prompt, Stream: false})
	if err != nil {
		zap.S().With(err).Error("failed to marshal generate request")
		return FallbackReply
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		zap.S().With(err).Error("failed to build generate request")
		return FallbackReply
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		zap.S().With(err).Error("failed to reach generation endpoint")
		return FallbackReply
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.S().Errorw("generation endpoint returned non-200", "status", resp.StatusCode)
		return FallbackReply
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		zap.S().With(err).Error("failed to decode generate response")
		return FallbackReply
	}
	return strings.TrimSpace(out.Response)
}

// SupportReply produces an empathetic support-chat answer in the
// requested language.
func (c *OllamaClient) SupportReply(ctx context.Context, message, language string) string {
	prompt := fmt.Sprintf(`
You are a highly empathetic Personal Care Assistant for women's safety and support.
Your goal is to provide emotional support, validation, and a safe space for the user.
The user says: "%s"

Instructions:
1. Respond with warmth, empathy, and non-judgmental support.
2. Empower the user and acknowledge their courage.
3. Keep the response concise but deeply supportive.
4. Respond ONLY in %s.
5. If the user is in immediate danger, gently remind them of emergency resources but keep the primary focus on emotional support.

Response:`, message, languageName(language))
	return c.Generate(ctx, prompt)
}

// LegalReply answers a legal question about women's rights and safety
// in the requested language.
func (c *OllamaClient) LegalReply(ctx context.Context, question, language string) string {
	prompt := fmt.Sprintf(`
You are an expert Indian Legal Advisor specializing in women's rights and safety.
Your goal is to provide clear, accurate information about Indian laws such as the PWDVA (Domestic Violence Act), POCSO, POSH, and IPC sections like 498A.
The user asks: "%s"

Instructions:
1. Provide specific legal information relevant to the Indian context.
2. Use clear, accessible language.
3. Maintain a professional yet supportive tone.
4. Include a reminder that you are an AI advisor and for formal legal action, they should consult a lawyer or contact the DLSA.
5. Respond ONLY in %s.

Response:`, question, languageName(language))
	return c.Generate(ctx, prompt)
}

// DistressLevel classifies a chat message into Low, Medium or High.
// "High" anywhere in the model answer wins over "Medium"; anything else
// is Low.
func (c *OllamaClient) DistressLevel(ctx context.Context, message string) string {
	prompt := fmt.Sprintf(`
Analyze the following user message for emotional distress and risk level.
User message: "%s"

Categorize the distress level into exactly one of these three categories:
- Low: Normal conversation, mild stress, or routine check-in.
- Medium: Clear signs of distress, fear, anxiety, or mentions of ongoing difficult situations.
- High: Immediate danger, extreme terror, mentions of severe violence, or explicit cries for help.

Respond with ONLY one word: Low, Medium, or High.
Distress Level:`, message)

	level := c.Generate(ctx, prompt)
	if strings.Contains(level, "High") {
		return models.SeverityHigh
	}
	if strings.Contains(level, "Medium") {
		return models.SeverityMedium
	}
	return models.SeverityLow
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "English"
}

// OllamaGenerator implements Generator on top of the local model
// endpoint. Classification stays deterministic; only the narrative text
// comes from the model.
type OllamaGenerator struct {
	Client *OllamaClient
}

// NewOllamaGenerator returns a model-backed Generator
func NewOllamaGenerator(client *OllamaClient) *OllamaGenerator {
	return &OllamaGenerator{Client: client}
}

// Narrative asks the model for a covert post built from the form details
func (g *OllamaGenerator) Narrative(ctx context.Context, form FormData, language string) string {
	prompt := fmt.Sprintf("%s\nSituation: %s\nDuration: %s\nFrequency: %s\nCulprit: %s\nRespond ONLY in %s.",
		narrativePrompt, form.CurrentSituation, form.DurationOfAbuse, form.Frequency, form.CulpritDescription, languageName(language))
	return g.Client.Generate(ctx, prompt)
}

// Classify derives the severity triple from the form
func (g *OllamaGenerator) Classify(narrative string, form FormData) models.Classification {
	return Classify(narrative, form)
}
