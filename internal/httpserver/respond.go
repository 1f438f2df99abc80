package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"domainhost/internal/domain"
	"domainhost/internal/gateway/payment"
	"domainhost/internal/gateway/registrar"
	accountsvc "domainhost/internal/service/account"
)

// respondError maps service errors onto HTTP statuses. Unknown errors are
// treated as internal. Voucher rejections never reach here; the voucher
// handler reports them as a 200.
func respondError(c *gin.Context, err error) {
	respond(c, err, http.StatusInternalServerError, "internal error")
}

// respondInputError is for endpoints taking user-submitted forms, where an
// unmapped service error is a validation failure, not a server fault.
func respondInputError(c *gin.Context, err error) {
	respond(c, err, http.StatusBadRequest, err.Error())
}

func respond(c *gin.Context, err error, fallbackStatus int, fallbackMsg string) {
	var perr *payment.Error
	var rerr *registrar.Error
	switch {
	case errors.Is(err, domain.ErrNoActiveCart):
		c.JSON(http.StatusConflict, gin.H{"error": "no active cart", "redirect": "/catalog"})
	case errors.Is(err, domain.ErrInvalidSession), errors.Is(err, accountsvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, accountsvc.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &perr):
		c.JSON(http.StatusBadGateway, gin.H{"error": perr.Message})
	case errors.As(err, &rerr):
		c.JSON(http.StatusBadGateway, gin.H{"error": rerr.Message})
	default:
		c.JSON(fallbackStatus, gin.H{"error": fallbackMsg})
	}
}
