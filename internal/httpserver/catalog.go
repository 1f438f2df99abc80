package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	featured := c.Query("featured") == "true"
	products, err := h.deps.CatalogSvc.ListProducts(c.Request.Context(), c.Query("category"), featured)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) landing(c *gin.Context) {
	landing, err := h.deps.CatalogSvc.Landing(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, landing)
}
