package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gh0stlung/Agri-Store/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, known := range models.Statuses {
		got, ok := models.ParseStatus(string(known))
		assert.True(t, ok)
		assert.Equal(t, known, got)
	}

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		got, ok := models.ParseStatus("  Confirmed ")
		assert.True(t, ok)
		assert.Equal(t, models.StatusConfirmed, got)
	})

	t.Run("unknown value rejected", func(t *testing.T) {
		_, ok := models.ParseStatus("archived")
		assert.False(t, ok)
	})
}

func TestStatusInfo(t *testing.T) {
	assert.Equal(t, "Confirmed", models.StatusConfirmed.Info().Label)
	assert.Equal(t, "truck", models.StatusShipped.Info().Icon)
	assert.Equal(t, "Order deliver ho gaya 🎉", models.StatusDelivered.Info().Text)

	t.Run("unknown or empty render as pending", func(t *testing.T) {
		assert.Equal(t, "Pending", models.OrderStatus("weird").Info().Label)
		assert.Equal(t, "Pending", models.OrderStatus("").Info().Label)
	})
}
