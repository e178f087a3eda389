// Package ai produces the covert SOS narrative for a report and the
// severity/nature/risk triple derived from it. Narrative text comes
// either from canned per-language template pools or from a local
// text-generation endpoint; classification is a pure scoring function
// either way.
package ai

import (
	"context"

	"github.com/havenapp/haven-api/models"
)

// FormData carries the victim-form fields the generator works from
type FormData struct {
	Name               string `json:"name"`
	CurrentSituation   string `json:"currentSituation"`
	DurationOfAbuse    string `json:"durationOfAbuse"`
	Frequency          string `json:"frequency"`
	CulpritDescription string `json:"culpritDescription"`
}

// Generator is the narrative collaborator injected into the case
// creation flow. Implementations must never propagate endpoint
// failures: Narrative degrades to a user-visible fallback string.
type Generator interface {
	Narrative(ctx context.Context, form FormData, language string) string
	Classify(narrative string, form FormData) models.Classification
}
