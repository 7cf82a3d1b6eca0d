package offer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/internal/middleware"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/pkg/response"
	"marketplace/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes splits the surface: listing is public, creation checks the
// role itself, everything by id requires a login.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/offers/", h.List)
	public.POST("/offers/", h.Create)

	protected.GET("/offers/:id/", h.Get)
	protected.PUT("/offers/:id/", h.Update)
	protected.PATCH("/offers/:id/", h.Update)
	protected.DELETE("/offers/:id/", h.Delete)
	protected.POST("/offers/:id/image/", h.UploadImage)

	protected.GET("/offerdetails/", h.ListDetails)
	protected.GET("/offerdetails/:id/", h.GetDetail)
}

// List returns a filterable, paginated offer listing with derived min_price
// and min_delivery_time per offer.
// @Summary		List offers
// @Tags		Offers
// @Param		creator_id			query	int		false	"Filter by owning business user"
// @Param		search				query	string	false	"Free-text search over title and description"
// @Param		ordering			query	string	false	"created_at, updated_at or min_price; prefix with - for descending"
// @Param		max_delivery_time	query	int		false	"Only offers deliverable within N days"
// @Param		page				query	int		false	"Page number"
// @Param		page_size			query	int		false	"Page size (default 2, max 1000)"
// @Success		200	{object}	pagination.Page
// @Failure		400	{object}	map[string]interface{} "Bad filter value"
// @Router		/offers/ [GET]
func (h *Handler) List(c *gin.Context) {
	q := ListQuery{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}

	if v := c.Query("creator_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "`creator_id` must be an integer")
			return
		}
		q.CreatorID = &id
	}
	if v := c.Query("max_delivery_time"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "`max_delivery_time` must be an integer")
			return
		}
		q.MaxDeliveryTime = &days
	}

	p := pagination.FromQuery(c)
	q.Limit = p.Limit()
	q.Offset = p.Offset()

	offers, count, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(c, p, count, offers))
}

// Create adds an offer with its nested tier details (business users only).
// @Summary		Create offer
// @Tags		Offers
// @Security	BearerAuth
// @Param		request	body	CreateOfferRequest	true	"Offer with nested details"
// @Success		201	{object}	OfferResponse
// @Failure		400	{object}	map[string]interface{} "Per-index detail errors"
// @Failure		403	{object}	map[string]interface{} "Not a business account"
// @Router		/offers/ [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid offer data", details)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get retrieves one offer.
// @Summary		Get offer
// @Tags		Offers
// @Security	BearerAuth
// @Param		id	path	int	true	"Offer ID"
// @Success		200	{object}	OfferResponse
// @Failure		404	{object}	map[string]interface{} "Offer not found"
// @Router		/offers/{id}/ [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.offerID(c)
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

// Update edits an offer; a supplied details list replaces the full tier set.
// @Summary		Update offer
// @Tags		Offers
// @Security	BearerAuth
// @Param		id		path	int					true	"Offer ID"
// @Param		request	body	UpdateOfferRequest	true	"Fields to change"
// @Success		200	{object}	OfferResponse
// @Failure		404	{object}	map[string]interface{} "Offer not found (or not yours)"
// @Router		/offers/{id}/ [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.offerID(c)
	if !ok {
		return
	}

	var req UpdateOfferRequest
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

// Delete removes an offer together with its tiers.
// @Summary		Delete offer
// @Tags		Offers
// @Security	BearerAuth
// @Param		id	path	int	true	"Offer ID"
// @Success		204	"Deleted"
// @Router		/offers/{id}/ [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.offerID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.Actor(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage stores an offer image (multipart field "image"), owner only.
func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := h.offerID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
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

	url, err := h.service.SaveImage(c.Request.Context(), middleware.Actor(c), id, fh.Filename, f, fh.Size)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": url})
}

// ListDetails returns all offer details.
// @Summary		List offer details
// @Tags		Offers
// @Security	BearerAuth
// @Success		200	{array}	DetailResponse
// @Router		/offerdetails/ [GET]
func (h *Handler) ListDetails(c *gin.Context) {
	details, err := h.service.ListDetails(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetDetail returns one offer detail in full.
// @Summary		Get offer detail
// @Tags		Offers
// @Security	BearerAuth
// @Param		id	path	int	true	"OfferDetail ID"
// @Success		200	{object}	DetailResponse
// @Failure		404	{object}	map[string]interface{} "Detail not found"
// @Router		/offerdetails/{id}/ [GET]
func (h *Handler) GetDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid offer detail ID")
		return
	}
	resp, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer detail not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) offerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid offer ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *DetailValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid offer details", verr.Details)
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only business accounts may do this")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
