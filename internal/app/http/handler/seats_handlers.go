package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"seatservice/internal/app/auth"
	"seatservice/internal/app/dto"
	"seatservice/internal/domain"
	"seatservice/internal/domain/admission"
	"seatservice/internal/domain/params"
	"seatservice/internal/domain/user"
)

func (h *Handler) SeatsOverview(c *gin.Context) {
	p := params.Parse(c.Request.URL.Query())

	ov, err := h.SeatsSvc.Overview(c.Request.Context(), c.Param("provider"), c.Param("owner"), p)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Seats{
		Users:   toUserPage(c.Request.URL, p, ov.Users),
		Account: toAccount(ov.Account),
	})
}

func (h *Handler) SeatsToggle(c *gin.Context) {
	provider, owner := c.Param("provider"), c.Param("owner")

	ownerid, err := strconv.ParseInt(c.Param("ownerid"), 10, 64)
	if err != nil || ownerid <= 0 {
		h.badRequest(c, "ownerid must be a positive integer")
		return
	}

	caller, err := h.caller(c, provider, owner)
	if err != nil {
		h.writeError(c, err)
		return
	}

	res, err := h.SeatsSvc.Toggle(c.Request.Context(), caller, provider, owner, ownerid)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.ToggleResponse{Action: res.Kind.String()}
	if res.Kind == admission.ShowUpsell {
		resp.Upsell = &dto.Upsell{
			Open:       res.Upsell.IsOpen(),
			Title:      res.Upsell.Title,
			Body:       res.Upsell.Body,
			UpgradeURL: res.Upsell.UpgradeURL,
			SalesURL:   res.Upsell.SalesURL,
		}
	} else {
		u := toUser(res.User)
		resp.User = &u
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) caller(c *gin.Context, provider, owner string) (user.Caller, error) {
	claims, ok := auth.ClaimsFromContext(c.Request.Context())
	if !ok {
		return user.Caller{}, &domain.DomainError{
			Code:       domain.ErrorCodeUnauthorized,
			Message:    "authentication required",
			HTTPStatus: http.StatusUnauthorized,
		}
	}
	if claims.Local {
		return user.Caller{Username: claims.Subject, IsAdmin: true}, nil
	}
	return h.UserSvc.Caller(c.Request.Context(), provider, owner, claims.Subject)
}
