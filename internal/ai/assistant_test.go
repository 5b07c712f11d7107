package ai_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gh0stlung/Agri-Store/internal/ai"
	"github.com/gh0stlung/Agri-Store/internal/errx"
)

func TestParseSuggestion(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		s, err := ai.ParseSuggestion(`{"category": "Fertilizer", "price": 1200, "unit": "bag"}`)
		assert.NoError(t, err)
		assert.Equal(t, "Fertilizer", s.Category)
		assert.Equal(t, int64(1200), s.Price)
		assert.Equal(t, "bag", s.Unit)
	})

	t.Run("code-fenced JSON", func(t *testing.T) {
		s, err := ai.ParseSuggestion("```json\n{\"category\": \"Seeds\", \"price\": 450, \"unit\": \"packet\"}\n```")
		assert.NoError(t, err)
		assert.Equal(t, "Seeds", s.Category)
		assert.Equal(t, "packet", s.Unit)
	})

	t.Run("JSON buried in prose", func(t *testing.T) {
		s, err := ai.ParseSuggestion(`Sure! Here is my suggestion: {"category": "Tools", "price": 900, "unit": "piece"} Hope that helps.`)
		assert.NoError(t, err)
		assert.Equal(t, "Tools", s.Category)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := ai.ParseSuggestion("I cannot help with that.")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, errx.Status(err))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ai.ParseSuggestion(`{"category": "Seeds", "price": }`)
		assert.Error(t, err)
	})
}

func TestUnconfiguredAssistant(t *testing.T) {
	assistant, err := ai.New(context.Background(), "", "gemini-3-flash-preview")
	assert.NoError(t, err)
	assert.False(t, assistant.Configured())

	_, err = assistant.Chat(context.Background(), nil, "namaste")
	assert.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, errx.Status(err))

	_, err = assistant.AutofillProduct(context.Background(), "Urea 50kg")
	assert.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, errx.Status(err))
}
