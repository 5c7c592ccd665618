package main

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"seatservice/internal/app/config"
	"seatservice/internal/infrastructure/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logging.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := openDB(context.Background(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := setupGoose(log); err != nil {
				return err
			}

			switch direction {
			case "up":
				return goose.Up(db, ".")
			case "down":
				return goose.Down(db, ".")
			case "status":
				return goose.Status(db, ".")
			default:
				return fmt.Errorf("unknown direction %q", direction)
			}
		},
	}
}
