package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seatservice/internal/domain/params"
)

func (h *Handler) UsersList(c *gin.Context) {
	provider, owner := c.Param("provider"), c.Param("owner")
	p := params.Parse(c.Request.URL.Query())

	page, err := h.UserSvc.List(c.Request.Context(), provider, owner, p)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserPage(c.Request.URL, p, page))
}
