package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/middleware"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/validation"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/tracking"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/shared/apperr"
	"github.com/MitaliChangani/Chai-Biscuit-website/pkg/view"
)

const maxAlerts = 50

// TrackingHandler is the presentation boundary of the sync engine: it holds
// the latest published snapshot and the recent cancellation alerts, and
// serves both to the tracking screen. Publish and Alert are handed to the
// controller as its output callbacks.
type TrackingHandler struct {
	engine *tracking.Controller

	mu     sync.RWMutex
	page   view.TrackingPage
	alerts []view.Alert
}

func NewTrackingHandler(engine *tracking.Controller) *TrackingHandler {
	return &TrackingHandler{engine: engine}
}

// Publish stores the engine's latest active-order snapshot.
func (h *TrackingHandler) Publish(s tracking.Snapshot) {
	page := view.TrackingPage{
		GeneratedAt: s.GeneratedAt.Format(time.RFC3339),
		Orders:      make([]view.TrackedOrder, 0, len(s.Orders)),
	}
	for _, o := range s.Orders {
		page.Orders = append(page.Orders, view.TrackedOrderFrom(o))
	}

	h.mu.Lock()
	h.page = page
	h.mu.Unlock()
}

// Alert records a one-time cancellation notice.
func (h *TrackingHandler) Alert(orderID string) {
	a := view.Alert{
		OrderID: orderID,
		Message: "Your order " + orderID + " has been cancelled.",
		At:      time.Now().Format(time.RFC3339),
	}

	h.mu.Lock()
	h.alerts = append(h.alerts, a)
	if len(h.alerts) > maxAlerts {
		h.alerts = h.alerts[len(h.alerts)-maxAlerts:]
	}
	h.mu.Unlock()
}

// Active serves the current tracking snapshot.
// GET /api/track
func (h *TrackingHandler) Active(c *gin.Context) {
	h.mu.RLock()
	page := h.page
	h.mu.RUnlock()

	if page.Orders == nil {
		page.Orders = []view.TrackedOrder{}
	}
	c.JSON(http.StatusOK, page)
}

// Alerts serves recent cancellation alerts, newest first.
// GET /api/track/alerts
func (h *TrackingHandler) Alerts(c *gin.Context) {
	h.mu.RLock()
	out := make([]view.Alert, 0, len(h.alerts))
	for i := len(h.alerts) - 1; i >= 0; i-- {
		out = append(out, h.alerts[i])
	}
	h.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"alerts": out})
}

type watchOrderInput struct {
	OrderID      string  `json:"order_id" binding:"required"`
	PlacedAt     string  `json:"placed_at"`
	DeliveryTime string  `json:"delivery_time"`
	Status       string  `json:"status"`
	Total        float64 `json:"total"`
}

// Watch seeds a freshly placed order into the cache so it shows up before
// the first poll or push update arrives.
// POST /api/track/orders
func (h *TrackingHandler) Watch(c *gin.Context) {
	var in watchOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Order payload is invalid.", validation.FromBindError(err, &in)))
		return
	}

	status := in.Status
	if status == "" {
		status = tracking.StatusPlaced
	}

	p := tracking.Partial{ID: in.OrderID, Status: &status}
	if in.PlacedAt != "" {
		p.PlacedAt = &in.PlacedAt
	}
	if in.DeliveryTime != "" {
		p.DeliveryTime = &in.DeliveryTime
	}
	if in.Total > 0 {
		p.Total = &in.Total
	}

	if _, tracked := h.engine.Cache().UpsertMerge(p); !tracked {
		middleware.Fail(c, apperr.InvalidErr("This order has already completed.", nil))
		return
	}
	if err := h.engine.Cache().Save(c.Request.Context()); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"watch_id": uuid.NewString(),
		"order_id": in.OrderID,
	})
}
