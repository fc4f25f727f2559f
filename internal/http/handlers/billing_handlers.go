package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/identitysvc/domain"
	"github.com/you/identitysvc/internal/http/middleware"
)

// BillingHandlers serves order creation, capture and purchase history.
type BillingHandlers struct {
	billingSvc domain.BillingService
}

func NewBillingHandlers(billingSvc domain.BillingService) *BillingHandlers {
	return &BillingHandlers{billingSvc: billingSvc}
}

type CartItem struct {
	ID    string  `json:"id" binding:"required"`
	Value float64 `json:"value" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Cart []CartItem `json:"cart" binding:"required,min=1,dive"`
}

type CaptureOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

var billingLabels = map[string]string{
	"Cart":    "Cart",
	"ID":      "Cart",
	"Value":   "Cart",
	"OrderID": "Order id",
}

// CreateOrder registers an order with the payment provider. Orders carry a
// single cart item; the provider response is passed through to the client.
func (h *BillingHandlers) CreateOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	var req CreateOrderRequest
	if !bindJSON(c, &req, billingLabels) {
		return
	}

	item := req.Cart[0]
	order, err := h.billingSvc.CreateOrder(c.Request.Context(), user, item.ID, item.Value)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			respondFieldError(c, "Cart", domain.ErrProductNotFound.Error())
		case errors.Is(err, domain.ErrPaymentProvider):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Unexpected error."})
		default:
			log.Printf("order creation failed: %v", err)
			respondUnexpected(c)
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// CaptureOrder asks the provider to capture the order and settles the
// balance when the capture completes.
func (h *BillingHandlers) CaptureOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	var req CaptureOrderRequest
	if !bindJSON(c, &req, billingLabels) {
		return
	}

	if err := h.billingSvc.CaptureOrder(c.Request.Context(), user, req.OrderID); err != nil {
		if errors.Is(err, domain.ErrPaymentProvider) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Unexpected error."})
			return
		}
		log.Printf("order capture failed: %v", err)
		respondUnexpected(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPurchases returns the caller's settled purchases, newest first.
func (h *BillingHandlers) ListPurchases(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	purchases, err := h.billingSvc.ListPurchases(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("purchase listing failed: %v", err)
		respondUnexpected(c)
		return
	}

	out := make([]gin.H, 0, len(purchases))
	for _, p := range purchases {
		entry := gin.H{
			"price":          p.Price,
			"purchased_date": p.PurchasedDate,
		}
		if p.Product != nil {
			entry["product"] = gin.H{
				"name":        p.Product.Name,
				"description": p.Product.Description,
			}
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"purchases": out})
}
