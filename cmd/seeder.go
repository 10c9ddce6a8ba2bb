package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/identity-service/internal/core/database"
	"github.com/frahmantamala/identity-service/internal/credential"
	"github.com/frahmantamala/identity-service/internal/seed"
	"github.com/frahmantamala/identity-service/internal/user"
	userPostgres "github.com/frahmantamala/identity-service/internal/user/postgres"
	"github.com/frahmantamala/identity-service/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the demo users and companies used in development.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
		lg := logger.L().With("command", "seed")
		ctx = logger.Into(ctx, lg)

		db, gdb, err := database.Open(cfg.Database, cfg.Observability.Logging.Level)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if err := seed.Clear(ctx, db); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			lg.Info("cleared users and user_company")
		}

		hasher, err := credential.New(cfg.Security.PasswordHasher, cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to build password hasher: %v", err)
		}

		service := user.NewService(userPostgres.NewStore(gdb), hasher, nil, lg)
		n, err := seed.Run(ctx, service, seed.DemoUsers(), lg)
		if err != nil {
			log.Fatalf("seeded %d users before failing: %v", n, err)
		}

		lg.Info("demo data seeded", "users", n)
	},
}
