package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carpool-service/internal/adapter/gin/middleware"
	domain "carpool-service/internal/domain/user"
	"carpool-service/internal/usecase/auth"
	pkgerrors "carpool-service/pkg/errors"
)

// AuthHandler handles HTTP requests for registration, login and profile
// retrieval.
type AuthHandler struct {
	uc  auth.Usecase
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc auth.Usecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// RegisterRequest represents the HTTP request body for registration.
// Field names follow the reference client contract.
type RegisterRequest struct {
	UID         string `json:"uid"`
	UserType    string `json:"user_type"`
	FirstName   string `json:"fname"`
	LastName    string `json:"lname"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
}

// LoginRequest represents the HTTP request body for login
type LoginRequest struct {
	UID      string `json:"uid"`
	Password string `json:"password"`
}

// UserResponse represents the HTTP response for a user's public profile
type UserResponse struct {
	UID         string   `json:"uid"`
	UserType    string   `json:"user_type"`
	FirstName   string   `json:"fname"`
	LastName    string   `json:"lname"`
	Email       string   `json:"email"`
	Designation string   `json:"designation"`
	Phone       string   `json:"phone"`
	Rating      *float64 `json:"rating,omitempty"`
}

func toUserResponse(p auth.UserProfile) UserResponse {
	return UserResponse{
		UID:         p.UID,
		UserType:    p.UserType,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Designation: p.Designation,
		Phone:       p.Phone,
		Rating:      p.Rating,
	}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid register request body", zap.Error(err))
		handleError(c, h.log, pkgerrors.NewValidationError("", "request body is not valid JSON"))
		return
	}

	_, err := h.uc.Register(c.Request.Context(), auth.RegisterRequest{
		UID:         req.UID,
		UserType:    req.UserType,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Designation: req.Designation,
		Phone:       req.Phone,
		Password:    req.Password,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully.",
	})
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request body", zap.Error(err))
		handleError(c, h.log, pkgerrors.NewValidationError("", "request body is not valid JSON"))
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		UID:      req.UID,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    toUserResponse(resp.User),
		"token":   resp.Token,
	})
}

// Dashboard handles GET /v1/users/me. The auth middleware has already
// verified the token and resolved the caller.
func (h *AuthHandler) Dashboard(c *gin.Context) {
	v, ok := c.Get(middleware.UserKey)
	if !ok {
		handleError(c, h.log, pkgerrors.NewUnauthorizedError("missing authenticated user"))
		return
	}

	u, ok := v.(*domain.User)
	if !ok {
		handleError(c, h.log, pkgerrors.NewInternalError("unexpected user type in context", nil))
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		UID:         u.UID,
		UserType:    u.UserType,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Designation: u.Designation,
		Phone:       u.Phone,
		Rating:      u.Rating,
	})
}

// GetUser handles GET /v1/users/:uid
func (h *AuthHandler) GetUser(c *gin.Context) {
	uid := c.Param("uid")

	profile, err := h.uc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*profile))
}
