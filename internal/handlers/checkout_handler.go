package handlers

import (
	"fmt"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gh0stlung/Agri-Store/internal/cart"
	"github.com/gh0stlung/Agri-Store/internal/db"
	"github.com/gh0stlung/Agri-Store/internal/logx"
	"github.com/gh0stlung/Agri-Store/internal/models"
	"github.com/gh0stlung/Agri-Store/internal/notifier"
)

// CheckoutHandler converts a cart into an order attempt. Persistence is
// at-most-effort: a failed insert is logged and the checkout proceeds on a
// locally fabricated reference, because the WhatsApp message (not the
// database row) is the actual order submission.
type CheckoutHandler struct {
	store    *db.Client
	carts    *cart.Store
	whatsapp notifier.WhatsApp
}

func NewCheckoutHandler(store *db.Client, carts *cart.Store, whatsapp notifier.WhatsApp) *CheckoutHandler {
	return &CheckoutHandler{store: store, carts: carts, whatsapp: whatsapp}
}

type checkoutRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// Checkout handles POST /api/checkout.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := cartID(c)
	snapshot := h.carts.Get(id)
	if len(snapshot.Lines) == 0 {
		// Nothing to submit: no persistence, no handoff.
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty", "redirect": "/catalog"})
		return
	}

	items := make([]models.OrderItem, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Unit:      line.Product.Unit,
		})
	}
	total := snapshot.Total()

	order := models.Order{
		CustomerName: req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		Items:        items,
		TotalPrice:   total,
		Status:       models.StatusPending,
	}

	ref := fallbackReference()
	persisted := false
	if h.store.Configured() {
		if err := h.store.DB().WithContext(c.Request.Context()).Create(&order).Error; err != nil {
			logx.Warn().Err(err).Msg("order insert failed, continuing with local reference")
		} else {
			ref = order.Reference()
			persisted = true
		}
	} else {
		logx.Warn().Msg("order store unconfigured, continuing with local reference")
	}

	// The handoff happens exactly once per checkout, after the
	// persistence attempt, regardless of its outcome.
	message := notifier.OrderMessage(ref, req.Name, req.Phone, req.Address, items, total)
	link := h.whatsapp.Link(message)

	h.carts.Clear(id)

	c.JSON(http.StatusCreated, gin.H{
		"order_ref":    ref,
		"persisted":    persisted,
		"message":      message,
		"whatsapp_url": link,
	})
}

// fallbackReference fabricates a client-visible order reference when the
// store cannot assign one.
func fallbackReference() string {
	return fmt.Sprintf("ORD-%d", 1000+rand.Intn(9000))
}
