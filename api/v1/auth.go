package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/issue-tracker/dto"
	"github.com/issue-tracker/middleware"
	"github.com/issue-tracker/services"
)

// AuthController handles account endpoints
type AuthController struct {
	authService  *services.AuthService
	secureCookie bool
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{authService: authService, secureCookie: secureCookie}
}

// Register handles user registration
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.authService.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"data":    user,
	})
}

// Login handles user authentication
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	authResponse, err := ac.authService.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}

	// Browser clients get the token as an HttpOnly cookie; API clients use the body
	maxAge := int(time.Until(authResponse.ExpiresAt).Seconds())
	c.SetCookie(middleware.TokenCookie, authResponse.Token, maxAge, "/", "", ac.secureCookie, true)

	respondOK(c, http.StatusOK, authResponse)
}

// Logout handles user logout
func (ac *AuthController) Logout(c *gin.Context) {
	// Clear the cookie by setting max-age to -1 (expired)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", ac.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the currently authenticated user's profile
func (ac *AuthController) GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not authenticated",
		})
		return
	}
	respondOK(c, http.StatusOK, user)
}
