package profile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/internal/middleware"
	"marketplace/internal/pkg/response"
	"marketplace/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/profile/:id/", h.Get)
	protected.PATCH("/profile/:id/", h.Update)
	protected.POST("/profile/:id/file/", h.UploadFile)
	protected.GET("/profiles/business/", h.ListBusiness)
	protected.GET("/profiles/customer/", h.ListCustomer)
}

// Get returns a single profile with the owning user's public fields.
// @Summary		Get profile
// @Tags		Profiles
// @Security	BearerAuth
// @Param		id	path	int	true	"Profile ID"
// @Success		200	{object}	ProfileResponse
// @Failure		404	{object}	map[string]interface{} "Profile not found"
// @Router		/profile/{id}/ [GET]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update edits the requester's own profile.
// @Summary		Update profile
// @Tags		Profiles
// @Security	BearerAuth
// @Param		id		path	int						true	"Profile ID"
// @Param		request	body	UpdateProfileRequest	true	"Fields to change"
// @Success		200	{object}	ProfileResponse
// @Failure		403	{object}	map[string]interface{} "Not the profile owner"
// @Router		/profile/{id}/ [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile data", details)
		return
	}

	actor := middleware.Actor(c)
	p, err := h.service.Update(c.Request.Context(), actor.ID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You may only edit your own profile")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		}
		return
	}
	c.JSON(http.StatusOK, p)
}

// UploadFile stores a profile picture (multipart field "file").
// @Summary		Upload profile picture
// @Tags		Profiles
// @Security	BearerAuth
// @Accept		multipart/form-data
// @Param		id		path		int		true	"Profile ID"
// @Param		file	formData	file	true	"Image file"
// @Success		200	{object}	map[string]interface{} "URL of the stored image"
// @Router		/profile/{id}/file/ [POST]
func (h *Handler) UploadFile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid profile ID")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", "Could not read uploaded file")
		return
	}
	defer f.Close()

	actor := middleware.Actor(c)
	url, err := h.service.SaveImage(c.Request.Context(), actor.ID, id, fh.Filename, f, fh.Size)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You may only edit your own profile")
		default:
			response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store file")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": url})
}

func (h *Handler) ListBusiness(c *gin.Context) { h.listByType(c, "business") }
func (h *Handler) ListCustomer(c *gin.Context) { h.listByType(c, "customer") }

func (h *Handler) listByType(c *gin.Context, t string) {
	profiles, err := h.service.ListByType(c.Request.Context(), t)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	c.JSON(http.StatusOK, profiles)
}
