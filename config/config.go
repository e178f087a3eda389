package config

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	JWTSecret    string
	OllamaURL    string
	OllamaModel  string
	// NarrativeSource selects how covert posts are produced: "template"
	// draws from the canned pools, "model" asks the Ollama endpoint.
	NarrativeSource string
	AlertEmailTo    string
	SendgridKey     string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:             os.Getenv("DB_URI"),
		DatabaseName:    os.Getenv("DB_NAME"),
		BaseURL:         os.Getenv("BASE_URL"),
		Port:            os.Getenv("PORT"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		OllamaURL:       getEnv("OLLAMA_API_URL", "http://localhost:11434/api/generate"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "mistral"),
		NarrativeSource: getEnv("NARRATIVE_SOURCE", "template"),
		AlertEmailTo:    os.Getenv("ALERT_EMAIL_TO"),
		SendgridKey:     os.Getenv("SENDGRID_API_KEY"),
	}

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
	return
}
