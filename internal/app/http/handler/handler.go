package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seatservice/internal/domain/account"
	"seatservice/internal/domain/seats"
	"seatservice/internal/domain/user"
)

type Handler struct {
	UserSvc    user.Service
	AccountSvc account.Service
	SeatsSvc   seats.Service
	Log        *zap.Logger
}

func New(
	userSvc user.Service,
	accountSvc account.Service,
	seatsSvc seats.Service,
	log *zap.Logger,
) *Handler {
	return &Handler{
		UserSvc:    userSvc,
		AccountSvc: accountSvc,
		SeatsSvc:   seatsSvc,
		Log:        log,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
