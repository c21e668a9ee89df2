package cmd

import (
	"context"
	"fmt"

	"github.com/promptdeck/promptdeck-backend/repositories"
	"github.com/promptdeck/promptdeck-backend/utils"
)

func RunMigrations() error {
	pgConfig := pgConfigFromEnv()
	common := commonConfigFromEnv()

	logger := utils.NewLogger(common.loggingFormat, utils.ParseLogLevel(common.loggingLevel))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	migrater := repositories.NewMigrater(pgConfig)
	if err := migrater.Run(ctx); err != nil {
		logger.ErrorContext(ctx, fmt.Sprintf("error running migrations: %v", err))
		return err
	}

	return nil
}
