package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gh0stlung/Agri-Store/internal/ai"
	"github.com/gh0stlung/Agri-Store/internal/db"
	"github.com/gh0stlung/Agri-Store/internal/errx"
	"github.com/gh0stlung/Agri-Store/internal/logx"
	"github.com/gh0stlung/Agri-Store/internal/models"
	"github.com/gh0stlung/Agri-Store/internal/storage"
)

// AdminHandler backs the store-manager panel: product CRUD, order status
// updates, announcements, image upload and the AI autofill helper. Write
// failures surface the raw error so the admin can retry manually.
type AdminHandler struct {
	store     *db.Client
	cache     *redis.Client
	bucket    *storage.Bucket
	assistant *ai.Assistant
}

func NewAdminHandler(store *db.Client, cache *redis.Client, bucket *storage.Bucket, assistant *ai.Assistant) *AdminHandler {
	return &AdminHandler{store: store, cache: cache, bucket: bucket, assistant: assistant}
}

// ready rejects admin requests with a blocking notice when the backend
// store was never configured. Public views degrade silently; the admin
// panel does not.
func (h *AdminHandler) ready(c *gin.Context) bool {
	if h.store.Configured() {
		return true
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": "Backend not connected. Configure the POSTGRES_* environment variables to access the admin panel.",
	})
	return false
}

// invalidateCatalog drops the cached product list after any catalog write.
func (h *AdminHandler) invalidateCatalog() {
	if h.cache != nil {
		go h.cache.Del(context.Background(), ProductsCacheKey)
	}
}

// ── products ──

type productRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Price    int64  `json:"price" binding:"required,gt=0"`
	Stock    *int   `json:"stock" binding:"required,gte=0"`
	Unit     string `json:"unit" binding:"required"`
	ImageURL string `json:"image_url"`
	IsActive *bool  `json:"is_active"`
}

func (r *productRequest) validate() error {
	if !models.ValidCategory(r.Category) {
		return fmt.Errorf("unknown category: %s", r.Category)
	}
	if !models.ValidUnit(r.Unit) {
		return fmt.Errorf("unknown unit: %s", r.Unit)
	}
	return nil
}

// ListProducts handles GET /api/admin/products, inactive items included.
func (h *AdminHandler) ListProducts(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var products []models.Product
	err := h.store.DB().WithContext(c.Request.Context()).
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    *req.Stock,
		Unit:     req.Unit,
		ImageURL: req.ImageURL,
		IsActive: true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.store.DB().WithContext(c.Request.Context()).Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.invalidateCatalog()
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := h.store.DB().WithContext(c.Request.Context()).First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Price = req.Price
	product.Stock = *req.Stock
	product.Unit = req.Unit
	product.ImageURL = req.ImageURL
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.store.DB().WithContext(c.Request.Context()).Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.invalidateCatalog()
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/:id. Historical orders
// keep their snapshots; only the catalog row goes away.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	result := h.store.DB().WithContext(c.Request.Context()).
		Delete(&models.Product{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	h.invalidateCatalog()
	c.Status(http.StatusNoContent)
}

// ── orders ──

// ListOrders handles GET /api/admin/orders, newest first.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var orders []models.Order
	err := h.store.DB().WithContext(c.Request.Context()).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PATCH /api/admin/orders/:id/status. Any known
// status may be set from any other; there is no transition graph.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := models.ParseStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown status: %s", req.Status)})
		return
	}

	result := h.store.DB().WithContext(c.Request.Context()).
		Model(&models.Order{}).
		Where("id = ?", c.Param("id")).
		Update("status", status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": status})
}

// ── store updates ──

type updateRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListUpdates handles GET /api/admin/updates, uncapped.
func (h *AdminHandler) ListUpdates(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var updates []models.StoreUpdate
	err := h.store.DB().WithContext(c.Request.Context()).
		Order("created_at desc").
		Find(&updates).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updates})
}

// CreateUpdate handles POST /api/admin/updates.
func (h *AdminHandler) CreateUpdate(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	update := models.StoreUpdate{Content: content}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, update)
}

// DeleteUpdate handles DELETE /api/admin/updates/:id.
func (h *AdminHandler) DeleteUpdate(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	result := h.store.DB().WithContext(c.Request.Context()).
		Delete(&models.StoreUpdate{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "update not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ── image upload ──

// UploadImage handles POST /api/admin/products/image: a multipart blob is
// passed through to the storage bucket and the durable public URL comes
// back for the product form.
func (h *AdminHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	if !h.bucket.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage is not configured"})
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".png"
	}
	name := fmt.Sprintf("prod_%s%s", uuid.NewString(), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.bucket.Upload(c.Request.Context(), name, contentType, file)
	if err != nil {
		logx.Error().Err(err).Str("object", name).Msg("image upload failed")
		c.JSON(errx.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// ── AI autofill ──

type autofillRequest struct {
	Name string `json:"name" binding:"required"`
}

// Autofill handles POST /api/admin/products/autofill: suggest category,
// price and unit from a product name.
func (h *AdminHandler) Autofill(c *gin.Context) {
	var req autofillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if !h.assistant.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
		return
	}

	suggestion, err := h.assistant.AutofillProduct(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(errx.Status(err), gin.H{"error": "AI autofill failed"})
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
