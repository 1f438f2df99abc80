package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogsvc "domainhost/internal/service/catalog"
	vouchersvc "domainhost/internal/service/voucher"
)

func (h *handlers) adminListVouchers(c *gin.Context) {
	vouchers, err := h.deps.VoucherSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": vouchers})
}

func (h *handlers) adminCreateVoucher(c *gin.Context) {
	var req vouchersvc.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	v, err := h.deps.VoucherSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondInputError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"voucher": v})
}

type voucherActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *handlers) adminSetVoucherActive(c *gin.Context) {
	var req voucherActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	if err := h.deps.VoucherSvc.SetActive(c.Request.Context(), c.Param("id"), *req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminDeleteVoucher(c *gin.Context) {
	if err := h.deps.VoucherSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminListPromos(c *gin.Context) {
	promos, err := h.deps.CatalogSvc.ListPromos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"promos": promos})
}

func (h *handlers) adminCreatePromo(c *gin.Context) {
	var req catalogsvc.PromoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	p, err := h.deps.CatalogSvc.CreatePromo(c.Request.Context(), req)
	if err != nil {
		respondInputError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"promo": p})
}

func (h *handlers) adminDeletePromo(c *gin.Context) {
	if err := h.deps.CatalogSvc.DeletePromo(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminCreateProduct(c *gin.Context) {
	var req catalogsvc.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	p, err := h.deps.CatalogSvc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondInputError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *handlers) adminUpdateProduct(c *gin.Context) {
	var req catalogsvc.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	p, err := h.deps.CatalogSvc.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondInputError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *handlers) adminDeleteProduct(c *gin.Context) {
	if err := h.deps.CatalogSvc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminListSettings(c *gin.Context) {
	settings, err := h.deps.CatalogSvc.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type settingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value int64  `json:"value" binding:"required"`
}

func (h *handlers) adminSetPrice(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	if err := h.deps.CatalogSvc.SetPrice(c.Request.Context(), req.Key, req.Value); err != nil {
		respondInputError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type broadcastRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

func (h *handlers) adminBroadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	count, err := h.deps.NotifySvc.Broadcast(c.Request.Context(), req.Title, req.Message, req.Link)
	if err != nil {
		respondInputError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"delivered": count})
}

func (h *handlers) adminFailedFulfillments(c *gin.Context) {
	failed, err := h.deps.FulfillmentSvc.ListProvisionFailed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fulfillments": failed})
}

type suspendRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *handlers) adminSuspendDomain(c *gin.Context) {
	var req suspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	if err := h.deps.DomainsSvc.Suspend(c.Request.Context(), currentUser(c), c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "suspended"})
}

func (h *handlers) adminUnsuspendDomain(c *gin.Context) {
	if err := h.deps.DomainsSvc.Unsuspend(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "active"})
}
