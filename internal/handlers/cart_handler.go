package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gh0stlung/Agri-Store/internal/cart"
	"github.com/gh0stlung/Agri-Store/internal/db"
	"github.com/gh0stlung/Agri-Store/internal/logx"
	"github.com/gh0stlung/Agri-Store/internal/models"
)

const sessionCartKey = "cart_id"

// CartHandler exposes the session cart. Product snapshots are taken at
// add time, so cart lines keep the price the shopper saw.
type CartHandler struct {
	store *db.Client
	carts *cart.Store
}

func NewCartHandler(store *db.Client, carts *cart.Store) *CartHandler {
	return &CartHandler{store: store, carts: carts}
}

// cartID resolves the session's cart id, minting one on first use.
func cartID(c *gin.Context) string {
	sess := sessions.Default(c)
	if id, ok := sess.Get(sessionCartKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	sess.Set(sessionCartKey, id)
	_ = sess.Save()
	return id
}

func cartView(snapshot cart.Cart) gin.H {
	return gin.H{
		"items": snapshot.Lines,
		"total": snapshot.Total(),
		"count": snapshot.Count(),
	}
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(h.carts.Get(cartID(c))))
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddItem handles POST /api/cart/items: one unit of the product is added,
// incrementing the existing line if the product is already in the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id required"})
		return
	}

	if !h.store.Configured() {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var product models.Product
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("id = ? AND is_active = ?", req.ProductID, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		logx.Error().Err(err).Str("product_id", req.ProductID).Msg("product lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch product"})
		return
	}

	c.JSON(http.StatusOK, cartView(h.carts.Add(cartID(c), product)))
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateItem handles PUT /api/cart/items/:id. Quantity zero (or less)
// removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
		return
	}

	c.JSON(http.StatusOK, cartView(h.carts.SetQuantity(cartID(c), c.Param("id"), *req.Quantity)))
}

// RemoveItem handles DELETE /api/cart/items/:id. Removing an absent line
// is a no-op.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(h.carts.Remove(cartID(c), c.Param("id"))))
}

// ClearCart handles DELETE /api/cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.carts.Clear(cartID(c))
	c.JSON(http.StatusOK, cartView(cart.Cart{}))
}
