package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/middleware"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/validation"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/addresses"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/shared/apperr"
)

type AddressesHandler struct {
	svc *addresses.Service
}

func NewAddressesHandler(svc *addresses.Service) *AddressesHandler {
	return &AddressesHandler{svc: svc}
}

// List serves the address book for a customer.
// GET /api/addresses?phone=...
func (h *AddressesHandler) List(c *gin.Context) {
	book, err := h.svc.Book(c.Request.Context(), c.Query("phone"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

type updateAddressInput struct {
	Phone   string `json:"phone_number" binding:"required,numeric,len=10"`
	Address string `json:"address" binding:"required,min=5"`
}

// Update rewrites the customer's delivery address.
// PUT /api/addresses
func (h *AddressesHandler) Update(c *gin.Context) {
	var in updateAddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Address is invalid.", validation.FromBindError(err, &in)))
		return
	}

	if err := h.svc.Update(c.Request.Context(), in.Phone, in.Address); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully"})
}
