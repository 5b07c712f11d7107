package main

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	config "github.com/gh0stlung/Agri-Store/configs"
	"github.com/gh0stlung/Agri-Store/internal/ai"
	"github.com/gh0stlung/Agri-Store/internal/auth"
	"github.com/gh0stlung/Agri-Store/internal/cart"
	"github.com/gh0stlung/Agri-Store/internal/db"
	"github.com/gh0stlung/Agri-Store/internal/handlers"
	"github.com/gh0stlung/Agri-Store/internal/logx"
	"github.com/gh0stlung/Agri-Store/internal/notifier"
	"github.com/gh0stlung/Agri-Store/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("invalid configuration")
	}

	logx.Init(cfg.Env)

	// The storefront keeps serving without a backend: catalog and
	// track-order read as empty, checkout falls back to local
	// references, and only the admin panel blocks.
	store, err := db.Open(cfg.Database)
	if err != nil {
		logx.Error().Err(err).Msg("catalog store unavailable, running unconfigured")
		store = db.Unconfigured()
	} else if err := auth.EnsureAdmin(store.DB(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logx.Error().Err(err).Msg("failed to seed admin account")
	}

	var cache *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logx.Error().Err(err).Msg("invalid REDIS_URL, caching disabled")
		} else {
			cache = redis.NewClient(opts)
			if err := cache.Ping(ctx).Err(); err != nil {
				logx.Error().Err(err).Msg("redis unreachable, caching disabled")
				cache = nil
			}
		}
	}

	assistant, err := ai.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		logx.Error().Err(err).Msg("gemini client failed, assistant disabled")
		assistant = ai.Unconfigured()
	}

	bucket := storage.New(cfg.Storage.URL, cfg.Storage.Bucket, cfg.Storage.APIKey)
	carts := cart.NewStore()
	whatsapp := notifier.NewWhatsApp(cfg.WhatsApp.Number)

	authHandler := auth.NewHandler(store)
	catalog := handlers.NewCatalogHandler(store, cache)
	cartHandler := handlers.NewCartHandler(store, carts)
	checkout := handlers.NewCheckoutHandler(store, carts, whatsapp)
	track := handlers.NewTrackHandler(store)
	chat := handlers.NewChatHandler(assistant)
	admin := handlers.NewAdminHandler(store, cache, bucket, assistant)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// ── session store ──
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("agrisess", sessionStore))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.POST("/auth/login", auth.RateLimiter(cache), authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)
	r.GET("/auth/session", authHandler.Session)

	api := r.Group("/api")
	{
		api.GET("/products", catalog.ListProducts)
		api.GET("/updates", catalog.ListUpdates)

		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart/items", cartHandler.AddItem)
		api.PUT("/cart/items/:id", cartHandler.UpdateItem)
		api.DELETE("/cart/items/:id", cartHandler.RemoveItem)
		api.DELETE("/cart", cartHandler.ClearCart)

		api.POST("/checkout", checkout.Checkout)
		api.GET("/orders/track", track.TrackOrders)
		api.POST("/chat", chat.Chat)
	}

	// ── admin API ──
	adminAPI := r.Group("/api/admin")
	adminAPI.Use(authHandler.RequireAuth())
	{
		adminAPI.GET("/products", admin.ListProducts)
		adminAPI.POST("/products", admin.CreateProduct)
		adminAPI.PUT("/products/:id", admin.UpdateProduct)
		adminAPI.DELETE("/products/:id", admin.DeleteProduct)
		adminAPI.POST("/products/image", admin.UploadImage)
		adminAPI.POST("/products/autofill", admin.Autofill)

		adminAPI.GET("/orders", admin.ListOrders)
		adminAPI.PATCH("/orders/:id/status", admin.UpdateOrderStatus)

		adminAPI.GET("/updates", admin.ListUpdates)
		adminAPI.POST("/updates", admin.CreateUpdate)
		adminAPI.DELETE("/updates/:id", admin.DeleteUpdate)
	}

	logx.Info().Str("addr", cfg.Addr).Msg("starting Agri-Store")
	if err := r.Run(cfg.Addr); err != nil {
		logx.Fatal().Err(err).Msg("server exited")
	}
}
