package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gh0stlung/Agri-Store/internal/models"
)

const (
	testSessionName   = "agrisess"
	testSessionSecret = "test-secret-key"
)

// newTestDB opens a per-test in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	err = testDB.AutoMigrate(&models.Product{}, &models.Order{}, &models.StoreUpdate{}, &models.AdminUser{})
	if err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	return testDB
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// sessionCookie fabricates a session cookie carrying one key/value pair,
// the way the middleware itself would have written it.
func sessionCookie(key string, value interface{}) string {
	tempW := httptest.NewRecorder()
	tempC, _ := gin.CreateTestContext(tempW)
	tempC.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	store := cookie.NewStore([]byte(testSessionSecret))
	sessions.Sessions(testSessionName, store)(tempC)

	sess := sessions.Default(tempC)
	sess.Set(key, value)
	_ = sess.Save()

	return tempW.Header().Get("Set-Cookie")
}

// sessionRouter builds a bare router with recovery and the session
// middleware, matching the production stack.
func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	store := cookie.NewStore([]byte(testSessionSecret))
	r.Use(sessions.Sessions(testSessionName, store))
	return r
}

// multipartImageRequest builds a multipart form upload carrying one image
// part, the way the admin panel submits product photos.
func multipartImageRequest(t *testing.T, path, filename string, data []byte) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("failed to build multipart form: %v", err)
	}
	part.Write(data)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
