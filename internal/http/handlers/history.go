package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/middleware"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/history"
)

type HistoryHandler struct {
	svc *history.Service
}

func NewHistoryHandler(svc *history.Service) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// List serves the customer's order history.
// GET /api/history?phone=...
func (h *HistoryHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), c.Query("phone"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": rows})
}
