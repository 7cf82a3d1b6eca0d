package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/pkg/response"
	"marketplace/internal/pkg/validator"
)

// Handler manages the public authentication endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/registration/", h.Registration)
	r.POST("/login/", h.Login)
}

// Registration creates a new account plus its profile and returns the opaque
// bearer token.
// @Summary		Register a new user
// @Tags		Authentication
// @Param		request	body	RegistrationRequest	true	"username, email, type (business|customer), password"
// @Success		201	{object}	RegistrationResponse
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Router		/registration/ [POST]
func (h *Handler) Registration(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data", details)
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data",
				gin.H{"username": "A user with that username already exists."})
		case errors.Is(err, ErrInvalidUserType):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration data",
				gin.H{"type": "Type must be 'business' or 'customer'."})
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		}
		return
	}

	c.JSON(http.StatusCreated, RegistrationResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Type:     string(user.Type),
		Token:    token,
	})
}

// Login authenticates a username/password pair and returns the user's token.
// Repeated logins return the same token.
// @Summary		Log in
// @Tags		Authentication
// @Param		request	body	LoginRequest	true	"username, password"
// @Success		200	{object}	LoginResponse
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		401	{object}	map[string]interface{} "Bad credentials or inactive account"
// @Router		/login/ [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Both fields (username, password) are required", details)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAccountInactive):
			response.Error(c, http.StatusUnauthorized, "ACCOUNT_INACTIVE", "User account is deactivated")
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Username or password is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
