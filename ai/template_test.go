package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateGeneratorNarrative(t *testing.T) {
	g := &TemplateGenerator{pick: func(n int) int { return 0 }}

	got := g.Narrative(context.Background(), FormData{}, "en")
	assert.True(t, strings.HasPrefix(got, "Beautiful morning coffee"))

	g.pick = func(n int) int { return n - 1 }
	got = g.Narrative(context.Background(), FormData{}, "en")
	assert.True(t, strings.HasPrefix(got, "Coffee date with myself"))
}

func TestTemplateGeneratorLanguagePools(t *testing.T) {
	g := &TemplateGenerator{pick: func(n int) int { return 0 }}

	ta := g.Narrative(context.Background(), FormData{}, "ta")
	hi := g.Narrative(context.Background(), FormData{}, "hi")
	en := g.Narrative(context.Background(), FormData{}, "en")

	assert.NotEqual(t, en, ta)
	assert.NotEqual(t, en, hi)

	// unknown language falls back to the English pool
	unknown := g.Narrative(context.Background(), FormData{}, "fr")
	assert.Equal(t, en, unknown)
}

func TestTemplateGeneratorPickStaysInRange(t *testing.T) {
	g := NewTemplateGenerator()
	for i := 0; i < 50; i++ {
		got := g.Narrative(context.Background(), FormData{}, "ta")
		assert.NotEmpty(t, got)
	}
}
