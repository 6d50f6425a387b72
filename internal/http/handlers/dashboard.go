package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/middleware"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/validation"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/dashboard"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/shared/apperr"
)

type DashboardHandler struct {
	svc *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Page serves the partner dashboard columns.
// GET /api/partner/dashboard?phone=...
func (h *DashboardHandler) Page(c *gin.Context) {
	page, err := h.svc.Page(c.Request.Context(), c.Query("phone"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type orderActionInput struct {
	Phone string `json:"phone_number" binding:"required,numeric,len=10"`
}

// Accept claims an unassigned order.
// POST /api/partner/orders/:id/accept
func (h *DashboardHandler) Accept(c *gin.Context) {
	var in orderActionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request is invalid.", validation.FromBindError(err, &in)))
		return
	}

	if err := h.svc.Accept(c.Request.Context(), c.Param("id"), in.Phone); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order accepted"})
}

// Delivered marks an assigned order as delivered.
// POST /api/partner/orders/:id/delivered
func (h *DashboardHandler) Delivered(c *gin.Context) {
	var in orderActionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Request is invalid.", validation.FromBindError(err, &in)))
		return
	}

	if err := h.svc.Delivered(c.Request.Context(), c.Param("id"), in.Phone); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order marked delivered"})
}
