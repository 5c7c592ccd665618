package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AccountGet(c *gin.Context) {
	usage, err := h.AccountSvc.GetUsage(c.Request.Context(), c.Param("provider"), c.Param("owner"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccount(usage))
}

func (h *Handler) AccountSetAutoActivate(c *gin.Context) {
	var body struct {
		AutoActivate *bool `json:"auto_activate"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.AutoActivate == nil {
		h.badRequest(c, "auto_activate is required")
		return
	}

	provider, owner := c.Param("provider"), c.Param("owner")

	caller, err := h.caller(c, provider, owner)
	if err != nil {
		h.writeError(c, err)
		return
	}

	usage, err := h.AccountSvc.SetAutoActivate(c.Request.Context(), caller, provider, owner, *body.AutoActivate)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccount(usage))
}
