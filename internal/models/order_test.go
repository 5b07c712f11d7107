package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gh0stlung/Agri-Store/internal/models"
)

func newModelTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open("file:modeltest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}
	if err := testDB.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}
	t.Cleanup(func() {
		testDB.Exec("DELETE FROM orders")
		testDB.Exec("DELETE FROM products")
	})
	return testDB
}

func TestOrderReference(t *testing.T) {
	o := models.Order{ID: "abcdef12-3456-7890-abcd-ef1234567890"}
	assert.Equal(t, "abcdef12", o.Reference())

	short := models.Order{ID: "ab12"}
	assert.Equal(t, "ab12", short.Reference())
}

func TestOrderDefaultsOnCreate(t *testing.T) {
	testDB := newModelTestDB(t)

	order := models.Order{
		CustomerName: "Ramesh",
		Phone:        "9876543210",
		Address:      "Rampur",
		Items:        []models.OrderItem{{ProductID: "p1", Name: "Urea", Price: 266, Quantity: 2, Unit: "bag"}},
		TotalPrice:   532,
	}
	assert.NoError(t, testDB.Create(&order).Error)

	assert.Len(t, order.ID, 36)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestOrderItemsRoundTripThroughJSONColumn(t *testing.T) {
	testDB := newModelTestDB(t)

	order := models.Order{
		CustomerName: "Ramesh",
		Phone:        "9876543210",
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Urea", Price: 266, Quantity: 2, Unit: "bag"},
			{ProductID: "p2", Name: "Khurpi", Price: 80, Quantity: 1, Unit: "piece"},
		},
		TotalPrice: 612,
	}
	assert.NoError(t, testDB.Create(&order).Error)

	var stored models.Order
	assert.NoError(t, testDB.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, order.Items, stored.Items)
}
