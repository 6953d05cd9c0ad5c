// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/checkout"
	"github.com/your-org/storefront-api/internal/gateway"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-api/internal/pkg/email"
)

// CheckoutHandler drives the linear checkout flow. The flow itself lives in
// Redis between requests; every response echoes the flow state plus the
// totals computed from the caller's cart.
type CheckoutHandler struct {
	sessions     *checkout.SessionStore
	cartManager  *cart.Manager
	gateway      *gateway.Gateway
	emailService *email.Service
	logger       *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(sessions *checkout.SessionStore, cartManager *cart.Manager, gw *gateway.Gateway, emailService *email.Service, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:     sessions,
		cartManager:  cartManager,
		gateway:      gw,
		emailService: emailService,
		logger:       logger,
	}
}

// flowState is the response body shared by every checkout endpoint
func (h *CheckoutHandler) flowState(flow *checkout.Flow, cartStore *cart.Store) gin.H {
	subtotal := cartStore.Total()
	return gin.H{
		"flow": flow,
		"totals": gin.H{
			"subtotal": subtotal,
			"shipping": flow.ShippingCost(),
			"tax":      checkout.Tax(subtotal),
			"total":    flow.Total(subtotal),
		},
	}
}

// transitionStatus maps flow errors to HTTP status codes
func transitionStatus(err error) int {
	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrFlowFinished), errors.Is(err, checkout.ErrWrongStep):
		return http.StatusConflict
	case errors.Is(err, gateway.ErrLoginRequired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func transitionBody(err error) gin.H {
	body := gin.H{"error": err.Error()}
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		body["field"] = verr.Field
	}
	return body
}

// GetCheckout handles GET /checkout
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	flow, err := h.sessions.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load checkout session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout retrieved successfully",
		"data":    h.flowState(flow, h.cartManager.For(userID)),
	})
}

// BeginCheckout handles POST /checkout/begin
func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	cartStore := h.cartManager.For(userID)

	if cartStore.ItemCount() == 0 {
		if err := cartStore.Fetch(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to retrieve cart",
			})
			return
		}
	}
	if cartStore.ItemCount() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cannot begin checkout with an empty cart",
		})
		return
	}

	flow, err := h.sessions.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load checkout session",
		})
		return
	}

	if err := flow.Begin(); err != nil {
		c.JSON(transitionStatus(err), transitionBody(err))
		return
	}

	if err := h.sessions.Save(c.Request.Context(), userID, flow); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save checkout session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout started successfully",
		"data":    h.flowState(flow, cartStore),
	})
}

// SubmitShipping handles POST /checkout/shipping
func (h *CheckoutHandler) SubmitShipping(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req struct {
		Shipping       checkout.ShippingForm `json:"shipping"`
		ShippingMethod string                `json:"shippingMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if req.ShippingMethod == "" {
		req.ShippingMethod = "standard"
	}

	flow, err := h.sessions.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load checkout session",
		})
		return
	}

	if err := flow.SubmitShipping(req.Shipping, req.ShippingMethod); err != nil {
		c.JSON(transitionStatus(err), transitionBody(err))
		return
	}

	if err := h.sessions.Save(c.Request.Context(), userID, flow); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save checkout session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping information saved successfully",
		"data":    h.flowState(flow, h.cartManager.For(userID)),
	})
}

// Back handles POST /checkout/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	flow, err := h.sessions.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load checkout session",
		})
		return
	}

	if err := flow.Back(); err != nil {
		c.JSON(transitionStatus(err), transitionBody(err))
		return
	}

	if err := h.sessions.Save(c.Request.Context(), userID, flow); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save checkout session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Moved back successfully",
		"data":    h.flowState(flow, h.cartManager.For(userID)),
	})
}

// PlaceOrder handles POST /checkout/place-order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	cartStore := h.cartManager.For(userID)

	// The body is optional; an absent payment method keeps the one already
	// selected on the flow
	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	_ = c.ShouldBindJSON(&req)

	flow, err := h.sessions.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load checkout session",
		})
		return
	}

	placed, err := flow.PlaceOrder(c.Request.Context(), h.gateway, userID, cartStore, req.PaymentMethod)
	if err != nil {
		// The flow stays on the payment step; persist it so the retry
		// resumes from there.
		if serr := h.sessions.Save(c.Request.Context(), userID, flow); serr != nil {
			h.logger.WithError(serr).Warn("Failed to save checkout session after failed order")
		}
		c.JSON(transitionStatus(err), transitionBody(err))
		return
	}

	if err := h.sessions.Save(c.Request.Context(), userID, flow); err != nil {
		h.logger.WithError(err).Warn("Failed to save checkout session after order placement")
	}

	// Confirmation email failures never fail the order
	if placed.Customer != nil {
		if err := h.emailService.SendOrderConfirmation(placed.Customer.Email, placed); err != nil {
			h.logger.WithError(err).WithField("order_number", placed.OrderNumber).Warn("Failed to send order confirmation")
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data": gin.H{
			"flow":  flow,
			"order": placed,
		},
	})
}

// ResetCheckout handles DELETE /checkout
func (h *CheckoutHandler) ResetCheckout(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.sessions.Delete(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset checkout",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout reset successfully",
	})
}
