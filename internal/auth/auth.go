package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gh0stlung/Agri-Store/internal/db"
	"github.com/gh0stlung/Agri-Store/internal/logx"
	"github.com/gh0stlung/Agri-Store/internal/models"
)

const sessionUserKey = "admin_user_id"

// invalidCredentials is the one message shown for any sign-in failure, so
// the form never leaks whether the email exists.
const invalidCredentials = "Invalid credentials. Access denied."

// Handler owns admin sign-in, sign-out and the session gate for the admin
// API.
type Handler struct {
	store *db.Client
}

func NewHandler(store *db.Client) *Handler {
	return &Handler{store: store}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	if !h.store.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "backend is not configured"})
		return
	}

	var user models.AdminUser
	if err := h.store.DB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	sess := sessions.Default(c)
	sess.Set(sessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "email": user.Email})
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Delete(sessionUserKey)
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session handles GET /auth/session: who, if anyone, is signed in.
func (h *Handler) Session(c *gin.Context) {
	sess := sessions.Default(c)
	userID, ok := sess.Get(sessionUserKey).(uint)
	if !ok || userID == 0 {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	var user models.AdminUser
	if !h.store.Configured() || h.store.DB().First(&user, userID).Error != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true, "email": user.Email})
}

// RequireAuth gates the admin API: without a valid session the request is
// rejected, and the signed-in user is placed on the context for handlers.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID, ok := sess.Get(sessionUserKey).(uint)
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var user models.AdminUser
		if !h.store.Configured() || h.store.DB().First(&user, userID).Error != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("admin", &user)
		c.Next()
	}
}

// EnsureAdmin seeds the bootstrap admin account if it does not exist yet.
func EnsureAdmin(gdb *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing models.AdminUser
	if err := gdb.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.AdminUser{Email: email, PasswordHash: string(hash)}
	if err := gdb.Create(&user).Error; err != nil {
		return err
	}

	logx.Info().Str("email", email).Msg("seeded admin account")
	return nil
}
