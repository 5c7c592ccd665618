package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seatservice/internal/app/auth"
	"seatservice/internal/app/config"
	httpapi "seatservice/internal/app/http"
	"seatservice/internal/app/http/handler"
	"seatservice/internal/domain/account"
	"seatservice/internal/domain/admission"
	"seatservice/internal/domain/seats"
	"seatservice/internal/domain/upsell"
	"seatservice/internal/domain/user"
	"seatservice/internal/infrastructure/async"
	"seatservice/internal/infrastructure/db/pg"
	"seatservice/internal/infrastructure/logging"
)

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")

	return cmd
}

func serve(skipMigrations bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database unavailable", zap.Error(err))
		return err
	}
	defer db.Close()

	if !skipMigrations {
		if err := setupGoose(log); err != nil {
			return err
		}
		if err := goose.Up(db, "."); err != nil {
			log.Error("goose up error", zap.Error(err))
			return err
		}
	}

	var verifier *auth.Verifier
	if cfg.Auth.Disabled {
		log.Warn("auth disabled, every request runs as a local admin")
	} else {
		verifier, err = auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer)
		if err != nil {
			return err
		}
	}

	uow := pg.NewTxManager(db)

	eventBus := async.NewAsyncEventBus(ctx, cfg.EventWorkers, log)
	defer eventBus.Close()

	userRepo := pg.NewUserRepository(db)
	accountRepo := pg.NewAccountRepository(db)

	userSvc := user.NewService(userRepo, eventBus)
	accountSvc := account.NewService(uow, accountRepo, account.NewCatalog(cfg.Admission.FreePlans), eventBus)
	seatsSvc := seats.NewService(
		uow,
		userRepo,
		accountSvc,
		admission.Policy{MaxFreeActivatedUsers: cfg.Admission.MaxFreeActivatedUsers},
		upsell.Links{UpgradeURL: cfg.Links.UpgradeURL, SalesURL: cfg.Links.SalesURL},
		eventBus,
	)

	gin.SetMode(gin.ReleaseMode)
	h := handler.New(userSvc, accountSvc, seatsSvc, log)
	router := httpapi.NewRouter(h, httpapi.RouterConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
		Verifier:     verifier,
	}, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
		return err
	}

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	return nil
}
