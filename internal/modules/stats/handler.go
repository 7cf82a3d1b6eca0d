package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/base-info/", h.BaseInfo)
}

// BaseInfo returns platform-wide aggregate numbers.
// @Summary		Platform statistics
// @Tags		Stats
// @Success		200	{object}	BaseInfo
// @Router		/base-info/ [GET]
func (h *Handler) BaseInfo(c *gin.Context) {
	info, err := h.service.BaseInfo(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	c.JSON(http.StatusOK, info)
}
