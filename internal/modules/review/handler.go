package review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/internal/middleware"
	"marketplace/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/reviews/", h.List)
	protected.POST("/reviews/", h.Create)
	protected.GET("/reviews/:id/", h.Get)
	protected.PUT("/reviews/:id/", h.Update)
	protected.PATCH("/reviews/:id/", h.Update)
	protected.DELETE("/reviews/:id/", h.Delete)
}

// List returns all reviews, newest first.
// @Summary		List reviews
// @Tags		Reviews
// @Security	BearerAuth
// @Success		200	{array}	ReviewResponse
// @Router		/reviews/ [GET]
func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create stores a review about a business user (customer accounts only).
// @Summary		Create review
// @Tags		Reviews
// @Security	BearerAuth
// @Param		request	body	CreateReviewRequest	true	"Review payload"
// @Success		201	{object}	ReviewResponse
// @Failure		400	{object}	map[string]interface{} "Bad rating or unknown business user"
// @Failure		403	{object}	map[string]interface{} "Not a customer account"
// @Router		/reviews/ [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get retrieves a single review.
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.reviewID(c)
	if !ok {
		return
	}
	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update edits a review, original reviewer only.
// @Summary		Update review
// @Tags		Reviews
// @Security	BearerAuth
// @Param		id		path	int					true	"Review ID"
// @Param		request	body	UpdateReviewRequest	true	"Fields to change"
// @Success		200	{object}	ReviewResponse
// @Failure		403	{object}	map[string]interface{} "Not the reviewer"
// @Router		/reviews/{id}/ [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.reviewID(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), middleware.Actor(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a review, original reviewer only.
// @Summary		Delete review
// @Tags		Reviews
// @Security	BearerAuth
// @Param		id	path	int	true	"Review ID"
// @Success		204	"Deleted"
// @Router		/reviews/{id}/ [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.reviewID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) reviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review data", verr.Fields)
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You may only edit your own reviews")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
