package handlers

import (
	"net/http"
	"time"

	"retail_pos/internal/auth"
	"retail_pos/internal/middleware"
	"retail_pos/internal/models"
	"retail_pos/internal/redis"
	"retail_pos/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.UserService
	cache       *redis.Client
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthHandler(userService services.UserService, cache *redis.Client, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		cache:       cache,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.Phone,
		Role:        string(models.RoleStaff),
		IsActive:    true,
	}
	if err := h.userService.Register(user, req.Password); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID, user.Role, h.tokenTTL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.SetCookie(auth.CookieName, token, int(h.tokenTTL.Seconds()), "/", "", false, true)
	respondOK(c, http.StatusOK, gin.H{"user": user, "access_token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if tokenID := c.GetString("token_id"); tokenID != "" && h.cache != nil {
		_ = h.cache.RevokeToken(tokenID, h.tokenTTL)
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	respondMessage(c, http.StatusOK, "logged out")
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.userService.GetUserByID(middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	respondOK(c, http.StatusOK, user)
}
