package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seatservice/internal/app/auth"
	"seatservice/internal/app/http/handler"
	"seatservice/internal/app/http/middleware"
)

type RouterConfig struct {
	AllowOrigins []string
	// Verifier may be nil, which runs every request as a local admin.
	Verifier *auth.Verifier
}

func NewRouter(h *handler.Handler, cfg RouterConfig, log *zap.Logger) *gin.Engine {
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
		cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	r.GET("/health", h.Health)

	api := r.Group("/:provider/:owner", middleware.Auth(cfg.Verifier, log))

	api.GET("/users", h.UsersList)
	api.GET("/account", h.AccountGet)
	api.PATCH("/account/autoActivate", h.AccountSetAutoActivate)
	api.GET("/seats", h.SeatsOverview)
	api.POST("/users/:ownerid/toggle", h.SeatsToggle)

	return r
}
