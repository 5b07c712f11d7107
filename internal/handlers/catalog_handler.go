package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gh0stlung/Agri-Store/internal/db"
	"github.com/gh0stlung/Agri-Store/internal/logx"
	"github.com/gh0stlung/Agri-Store/internal/models"
)

const (
	// ProductsCacheKey caches the active-product list.
	ProductsCacheKey = "catalog:products"
	productsCacheTTL = 5 * time.Minute

	defaultUpdateLimit = 5
	maxUpdateLimit     = 50
)

// CatalogHandler serves the public product catalog and the announcement
// feed. An unconfigured store reads as an empty shop; a failing store is
// reported, never disguised as empty.
type CatalogHandler struct {
	store *db.Client
	cache *redis.Client
}

func NewCatalogHandler(store *db.Client, cache *redis.Client) *CatalogHandler {
	return &CatalogHandler{store: store, cache: cache}
}

// ListProducts handles GET /api/products with an optional category filter.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	if !h.store.Configured() {
		c.JSON(http.StatusOK, gin.H{"data": []models.Product{}})
		return
	}

	category := c.Query("category")
	if category != "" && category != "All" && !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	products, err := h.activeProducts(c.Request.Context())
	if err != nil {
		logx.Error().Err(err).Msg("catalog fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch products"})
		return
	}

	if category != "" && category != "All" {
		filtered := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// activeProducts returns the active catalog, newest first, via the Redis
// cache when one is attached.
func (h *CatalogHandler) activeProducts(ctx context.Context) ([]models.Product, error) {
	if h.cache != nil {
		cached, err := h.cache.Get(ctx, ProductsCacheKey).Result()
		if err == nil {
			var products []models.Product
			if json.Unmarshal([]byte(cached), &products) == nil {
				return products, nil
			}
		}
	}

	var products []models.Product
	err := h.store.DB().WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if payload, err := json.Marshal(products); err == nil {
			go h.cache.Set(context.Background(), ProductsCacheKey, payload, productsCacheTTL)
		}
	}

	return products, nil
}

// ListUpdates handles GET /api/updates, newest first, capped small for
// the home view.
func (h *CatalogHandler) ListUpdates(c *gin.Context) {
	if !h.store.Configured() {
		c.JSON(http.StatusOK, gin.H{"data": []models.StoreUpdate{}})
		return
	}

	limit := defaultUpdateLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if parsed > maxUpdateLimit {
			parsed = maxUpdateLimit
		}
		limit = parsed
	}

	var updates []models.StoreUpdate
	err := h.store.DB().WithContext(c.Request.Context()).
		Order("created_at desc").
		Limit(limit).
		Find(&updates).Error
	if err != nil {
		logx.Error().Err(err).Msg("updates fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch updates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updates})
}
