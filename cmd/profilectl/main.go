package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"robo-advisor/internal/config"
	"robo-advisor/internal/db"
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "profilectl",
	Short: "Maintenance and offline scoring for the robo-advisor",
	Long:  "Applies database migrations, seeds the questionnaire catalogue and scores answer files without a running server.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		l, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

// openPool carga la configuracion y abre el pool de Postgres.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, eris.Wrap(err, "load config")
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "db connect")
	}
	return pool, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
