package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"domainhost/internal/cart"
	"domainhost/internal/domain"
)

type cartDomainRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *handlers) cartSetDomain(c *gin.Context) {
	var req cartDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	order, err := h.deps.CheckoutSvc.SetDomainItem(c.Request.Context(), sessionID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

type cartPlanRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *handlers) cartSetPlan(c *gin.Context) {
	var req cartPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	order, err := h.deps.CheckoutSvc.SetProductItem(c.Request.Context(), sessionID(c), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

type cartOptionsRequest struct {
	Period          *int  `json:"period"`
	WHOISProtection *bool `json:"whoisProtection"`
}

func (h *handlers) cartUpdateOptions(c *gin.Context) {
	var req cartOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	order, err := h.deps.CheckoutSvc.UpdateOptions(c.Request.Context(), sessionID(c), cart.OptionsPatch{
		Period:          req.Period,
		WHOISProtection: req.WHOISProtection,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *handlers) checkoutSummary(c *gin.Context) {
	order, err := h.deps.CheckoutSvc.Prepare(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type voucherRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *handlers) applyVoucher(c *gin.Context) {
	var req voucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	order, err := h.deps.CheckoutSvc.ApplyVoucher(c.Request.Context(), sessionID(c), req.Code)
	if err != nil {
		var rej *domain.VoucherRejection
		if errors.As(err, &rej) {
			// A bad code is a normal outcome: the order keeps its baseline
			// pricing and the UI shows the reason.
			c.JSON(http.StatusOK, gin.H{"applied": false, "reason": rej.Reason, "order": order})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": true, "order": order})
}

func (h *handlers) createPaymentIntent(c *gin.Context) {
	intent, err := h.deps.CheckoutSvc.CreatePaymentIntent(c.Request.Context(), sessionID(c), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

type finalizeRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	TxnRef  string `json:"txnRef"`
}

func (h *handlers) finalizeOrder(c *gin.Context) {
	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	result, err := h.deps.FulfillmentSvc.Finalize(c.Request.Context(), sessionID(c), currentUser(c), req.OrderID, req.TxnRef)
	if err != nil {
		respondError(c, err)
		return
	}
	// provision_failed still returns 200: the payment succeeded, the body
	// carries the support message.
	c.JSON(http.StatusOK, result)
}

func (h *handlers) orderStatus(c *gin.Context) {
	result, err := h.deps.FulfillmentSvc.Status(c.Request.Context(), currentUser(c), c.Param("orderID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
