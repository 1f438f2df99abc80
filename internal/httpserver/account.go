package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountsvc "domainhost/internal/service/account"
)

func (h *handlers) register(c *gin.Context) {
	var req accountsvc.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	u, err := h.deps.AccountSvc.Register(c.Request.Context(), req)
	if err != nil {
		respondInputError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	u, token, err := h.deps.AccountSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(tokenCookie, token, int(h.deps.AccountSvc.SessionTTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

func (h *handlers) logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		token, _ = c.Cookie(tokenCookie)
	}
	if err := h.deps.AccountSvc.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

func (h *handlers) updateProfile(c *gin.Context) {
	var req accountsvc.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInputError(c, err)
		return
	}
	u, err := h.deps.AccountSvc.UpdateProfile(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondInputError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *handlers) notifications(c *gin.Context) {
	items, unread, err := h.deps.NotifySvc.Inbox(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items, "unread": unread})
}

func (h *handlers) markNotificationRead(c *gin.Context) {
	if err := h.deps.NotifySvc.MarkRead(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
