package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gh0stlung/Agri-Store/internal/cart"
	"github.com/gh0stlung/Agri-Store/internal/db"
	"github.com/gh0stlung/Agri-Store/internal/handlers"
	"github.com/gh0stlung/Agri-Store/internal/models"
	"github.com/gh0stlung/Agri-Store/internal/notifier"
)

func setupCheckoutRouter(t *testing.T, store *db.Client) (*gin.Engine, *cart.Store) {
	carts := cart.NewStore()
	h := handlers.NewCheckoutHandler(store, carts, notifier.NewWhatsApp("919368340997"))

	r := sessionRouter()
	r.POST("/api/checkout", h.Checkout)
	return r, carts
}

func checkoutBody() map[string]string {
	return map[string]string{
		"name":    "Ramesh Kumar",
		"phone":   "9876543210",
		"address": "Village Rampur, near temple",
	}
}

func performCheckout(router *gin.Engine, cartID string, body interface{}) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/api/checkout", body)
	req.Header.Set("Cookie", sessionCookie("cart_id", cartID))
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCheckoutEmptyCart(t *testing.T) {
	testDB := newTestDB(t)
	router, _ := setupCheckoutRouter(t, db.FromGorm(testDB))

	recorder := performCheckout(router, "empty-cart", checkoutBody())

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp map[string]string
	json.Unmarshal(recorder.Body.Bytes(), &resp)
	assert.Equal(t, "cart is empty", resp["error"])
	assert.Equal(t, "/catalog", resp["redirect"])

	// Neither persistence nor the handoff may have run.
	var count int64
	testDB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.NotContains(t, recorder.Body.String(), "wa.me")
}

func TestCheckoutMissingContactFields(t *testing.T) {
	testDB := newTestDB(t)
	router, carts := setupCheckoutRouter(t, db.FromGorm(testDB))
	carts.Add("cart-1", models.Product{ID: "p1", Name: "Urea", Price: 266, Unit: "bag"})

	recorder := performCheckout(router, "cart-1", map[string]string{"name": "Ramesh"})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var count int64
	testDB.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutPersistsOrderAndHandsOff(t *testing.T) {
	testDB := newTestDB(t)
	router, carts := setupCheckoutRouter(t, db.FromGorm(testDB))

	urea := models.Product{ID: "p1", Name: "Urea", Price: 266, Unit: "bag"}
	carts.Add("cart-1", urea)
	carts.Add("cart-1", urea)

	recorder := performCheckout(router, "cart-1", checkoutBody())

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var resp struct {
		OrderRef    string `json:"order_ref"`
		Persisted   bool   `json:"persisted"`
		Message     string `json:"message"`
		WhatsAppURL string `json:"whatsapp_url"`
	}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	assert.True(t, resp.Persisted)
	assert.Contains(t, resp.Message, "Urea")
	assert.Contains(t, resp.Message, "532")
	assert.True(t, strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/919368340997?text="))

	// The reference is the first 8 characters of the stored order id.
	var stored models.Order
	assert.NoError(t, testDB.First(&stored).Error)
	assert.Equal(t, stored.ID[:8], resp.OrderRef)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Equal(t, int64(532), stored.TotalPrice)
	assert.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.Equal(t, "Ramesh Kumar", stored.CustomerName)

	// The cart is gone after checkout.
	assert.Empty(t, carts.Get("cart-1").Lines)
}

func TestCheckoutProceedsWhenPersistenceFails(t *testing.T) {
	testDB := newTestDB(t)
	router, carts := setupCheckoutRouter(t, db.FromGorm(testDB))

	carts.Add("cart-1", models.Product{ID: "p1", Name: "Urea", Price: 266, Unit: "bag"})
	carts.Add("cart-1", models.Product{ID: "p1", Name: "Urea", Price: 266, Unit: "bag"})

	// Break the insert path: the handoff must still happen.
	assert.NoError(t, testDB.Migrator().DropTable(&models.Order{}))

	recorder := performCheckout(router, "cart-1", checkoutBody())

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var resp struct {
		OrderRef    string `json:"order_ref"`
		Persisted   bool   `json:"persisted"`
		Message     string `json:"message"`
		WhatsAppURL string `json:"whatsapp_url"`
	}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	assert.False(t, resp.Persisted)
	assert.Regexp(t, `^ORD-\d{4}$`, resp.OrderRef)
	assert.Contains(t, resp.Message, "Urea")
	assert.Contains(t, resp.Message, "532")
	assert.NotEmpty(t, resp.WhatsAppURL)
	assert.Empty(t, carts.Get("cart-1").Lines)
}

func TestCheckoutUnconfiguredStore(t *testing.T) {
	router, carts := setupCheckoutRouter(t, db.Unconfigured())

	carts.Add("cart-1", models.Product{ID: "p1", Name: "Urea", Price: 266, Unit: "bag"})

	recorder := performCheckout(router, "cart-1", checkoutBody())

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var resp map[string]interface{}
	json.Unmarshal(recorder.Body.Bytes(), &resp)
	assert.Regexp(t, `^ORD-\d{4}$`, resp["order_ref"])
	assert.Equal(t, false, resp["persisted"])
}
