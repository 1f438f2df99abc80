package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"domainhost/internal/gateway/registrar"
	domainssvc "domainhost/internal/service/domains"
)

type checkRequest struct {
	Keyword string `json:"keyword" binding:"required"`
}

func (h *handlers) checkAvailability(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	results, err := h.deps.DomainsSvc.Check(c.Request.Context(), req.Keyword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *handlers) listDomains(c *gin.Context) {
	domains, err := h.deps.DomainsSvc.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"domains": domains})
}

func (h *handlers) showDomain(c *gin.Context) {
	d, err := h.deps.DomainsSvc.Show(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"domain": d})
}

func (h *handlers) transferDomain(c *gin.Context) {
	var req domainssvc.TransferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	d, err := h.deps.DomainsSvc.Transfer(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"domain": d})
}

func (h *handlers) resendVerification(c *gin.Context) {
	if err := h.deps.DomainsSvc.ResendVerification(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification email sent"})
}

type lockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

func (h *handlers) setDomainLock(c *gin.Context) {
	var req lockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	if err := h.deps.DomainsSvc.SetLock(c.Request.Context(), currentUser(c), c.Param("id"), *req.Locked); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locked": *req.Locked})
}

func (h *handlers) listDNSRecords(c *gin.Context) {
	records, err := h.deps.DomainsSvc.DNSRecords(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *handlers) createDNSRecord(c *gin.Context) {
	var rec registrar.DNSRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondInputError(c, err)
		return
	}
	if err := h.deps.DomainsSvc.CreateDNSRecord(c.Request.Context(), currentUser(c), c.Param("id"), rec); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *handlers) deleteDNSRecord(c *gin.Context) {
	var rec registrar.DNSRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondInputError(c, err)
		return
	}
	if err := h.deps.DomainsSvc.DeleteDNSRecord(c.Request.Context(), currentUser(c), c.Param("id"), rec); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
