package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/panchito04/BackHogEle/internal/api/middleware"
	"github.com/panchito04/BackHogEle/internal/service"
)

// UsersHandler handles registration, login and user lookups
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// RegisterPublicRoutes registers the routes that require no token
func (h *UsersHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/users/register", h.Register)
	rg.POST("/users/login", h.Login)
}

// RegisterRoutes registers the authenticated routes. adminOnly gates the
// user listing.
func (h *UsersHandler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.GET("/users/verify", h.Verify)
	rg.GET("/users/profile", h.Profile)
	rg.GET("/users", adminOnly, h.List)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  any    `json:"user"`
	Token string `json:"token"`
}

// Register creates an account and returns the user with a fresh token
func (h *UsersHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, authResponse{User: user, Token: token}, "user registered")
}

// Login checks credentials and issues a token
func (h *UsersHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, authResponse{User: user, Token: token})
}

// Verify echoes the claims of the presented token. Reaching this handler
// means the auth middleware already accepted it.
func (h *UsersHandler) Verify(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		respondError(c, &service.AuthError{Message: "missing token"})
		return
	}
	respondOK(c, gin.H{
		"id":    claims.UserID,
		"email": claims.Email,
		"name":  claims.Name,
		"role":  claims.Role,
	})
}

// Profile returns the full record of the authenticated user
func (h *UsersHandler) Profile(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		respondError(c, &service.AuthError{Message: "missing token"})
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

// List returns all users. Admin only.
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, users)
}
