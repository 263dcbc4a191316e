package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"robo-advisor/internal/db"
	"robo-advisor/internal/repository"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply embedded schema migrations",
	Long:  "Applies all pending SQL migrations in lexicographic order inside one transaction guarded by a Postgres advisory lock.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool, logger); err != nil {
			return eris.Wrap(err, "migrate")
		}
		logger.Info("all migrations applied successfully")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the embedded questionnaire catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		catalog, err := db.LoadCatalog()
		if err != nil {
			return eris.Wrap(err, "load catalog")
		}

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := repository.SeedQuestions(ctx, repository.NewPgQuestionRepository(pool), catalog); err != nil {
			return eris.Wrap(err, "seed")
		}
		logger.Info("catalog seeded", zap.Int("questions", len(catalog)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
