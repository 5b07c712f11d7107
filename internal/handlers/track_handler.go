package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gh0stlung/Agri-Store/internal/db"
	"github.com/gh0stlung/Agri-Store/internal/logx"
	"github.com/gh0stlung/Agri-Store/internal/models"
)

// TrackHandler is the read-only order lookup by phone number.
type TrackHandler struct {
	store *db.Client
}

func NewTrackHandler(store *db.Client) *TrackHandler {
	return &TrackHandler{store: store}
}

type trackedOrder struct {
	models.Order
	StatusInfo models.StatusInfo `json:"status_info"`
}

// TrackOrders handles GET /api/orders/track?phone=. Zero matches is the
// "no orders found" state; a failing store is an error, not an empty list.
func (h *TrackHandler) TrackOrders(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}

	if !h.store.Configured() {
		c.JSON(http.StatusOK, gin.H{"orders": []trackedOrder{}})
		return
	}

	var orders []models.Order
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("phone = ?", phone).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		logx.Error().Err(err).Msg("order lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch orders"})
		return
	}

	out := make([]trackedOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, trackedOrder{Order: o, StatusInfo: o.Status.Info()})
	}

	c.JSON(http.StatusOK, gin.H{"orders": out})
}
