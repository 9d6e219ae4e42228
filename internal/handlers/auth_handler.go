package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/response"
	"github.com/justsurfingit/govconnect/internal/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(a *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: a}
}

// Register is POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	token, user, err := h.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    dtos.NewUserView(user),
	})
}

// Login is POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, user, err := h.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    dtos.NewUserView(user),
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.AuthService.Profile(c.Request.Context(), viewer(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dtos.NewUserView(user)})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.AuthService.UpdateProfile(c.Request.Context(), viewer(c).UserID, &req.Profile)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": dtos.NewUserView(user)})
}
