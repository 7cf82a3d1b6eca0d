package order

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

// RegisterRoutes wires the order surface. Mutations by id run on the open
// group so a missing order reads as 404 before any auth failure.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/orders/", h.List)
	protected.POST("/orders/", h.Create)

	public.GET("/orders/:id/", h.Get)
	public.PUT("/orders/:id/", h.Update)
	public.PATCH("/orders/:id/", h.Update)
	public.DELETE("/orders/:id/", h.Delete)

	protected.GET("/order-count/:business_user_id/", h.CountInProgress)
	protected.GET("/completed-order-count/:business_user_id/", h.CountCompleted)
}

// Create places an order for an offer detail; all tier data is copied over.
// @Summary		Create order
// @Tags		Orders
// @Security	BearerAuth
// @Param		request	body	CreateOrderRequest	true	"Offer detail to order"
// @Success		201	{object}	OrderResponse
// @Failure		400	{object}	map[string]interface{} "Unknown offer detail"
// @Failure		403	{object}	map[string]interface{} "Not a customer account"
// @Router		/orders/ [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order data", details)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		if errors.Is(err, ErrInvalidDetail) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order data",
				gin.H{"offer_detail_id": "Offer detail not found."})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns the caller's orders, as customer or business side.
// @Summary		List own orders
// @Tags		Orders
// @Security	BearerAuth
// @Success		200	{array}	OrderResponse
// @Router		/orders/ [GET]
func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.ListForUser(c.Request.Context(), middleware.Actor(c).ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get retrieves a single order.
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.orderID(c)
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

// Update changes only the order status.
// @Summary		Update order status
// @Tags		Orders
// @Security	BearerAuth
// @Param		id		path	int					true	"Order ID"
// @Param		request	body	UpdateOrderRequest	true	"New status"
// @Success		200	{object}	OrderResponse
// @Failure		400	{object}	map[string]interface{} "Unknown status value"
// @Failure		404	{object}	map[string]interface{} "Order not found"
// @Router		/orders/{id}/ [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), middleware.Actor(c), id, req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order data",
				gin.H{"status": "Value must be one of: in_progress, completed, cancelled."})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes an order (staff only).
// @Summary		Delete order
// @Tags		Orders
// @Security	BearerAuth
// @Param		id	path	int	true	"Order ID"
// @Success		204	"Deleted"
// @Failure		403	{object}	map[string]interface{} "Staff only"
// @Router		/orders/{id}/ [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CountInProgress reports how many orders a business user currently runs.
// @Summary		In-progress order count
// @Tags		Orders
// @Security	BearerAuth
// @Param		business_user_id	path	int	true	"Business user ID"
// @Success		200	{object}	map[string]int64
// @Failure		404	{object}	map[string]interface{} "Business user not found"
// @Router		/order-count/{business_user_id}/ [GET]
func (h *Handler) CountInProgress(c *gin.Context) {
	id, ok := h.businessID(c)
	if !ok {
		return
	}
	n, err := h.service.CountInProgress(c.Request.Context(), id)
	if err != nil {
		h.writeCountError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_count": n})
}

// CountCompleted reports how many orders a business user has completed.
// @Summary		Completed order count
// @Tags		Orders
// @Security	BearerAuth
// @Param		business_user_id	path	int	true	"Business user ID"
// @Success		200	{object}	map[string]int64
// @Failure		404	{object}	map[string]interface{} "Business user not found"
// @Router		/completed-order-count/{business_user_id}/ [GET]
func (h *Handler) CountCompleted(c *gin.Context) {
	id, ok := h.businessID(c)
	if !ok {
		return
	}
	n, err := h.service.CountCompleted(c.Request.Context(), id)
	if err != nil {
		h.writeCountError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed_order_count": n})
}

func (h *Handler) orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) businessID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("business_user_id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business user ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeCountError(c *gin.Context, err error) {
	if errors.Is(err, ErrBusinessNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business user not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to do this")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
