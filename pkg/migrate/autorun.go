package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/catalog-pricing/pkg/config"
	"github.com/angelmondragon/catalog-pricing/pkg/db"
	"github.com/angelmondragon/catalog-pricing/pkg/db/models"
	"github.com/angelmondragon/catalog-pricing/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	meta := map[string]any{"env": cfg.App.Env, "driver": client.Driver()}
	ctx = logg.WithFields(ctx, meta)

	if client.Driver() == config.DBDriverSQLite {
		logg.Info(ctx, "auto-migrating sqlite schema (dev auto-run)")
		if err := AutoMigrate(ctx, client); err != nil {
			return err
		}
		logg.Info(ctx, "sqlite schema ready")
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg.Info(ctx, "running Goose migrations (dev auto-run)")
	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}

// AutoMigrate creates the catalog schema from the gorm models.
func AutoMigrate(ctx context.Context, client *db.Client) error {
	if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrating catalog models: %w", err)
	}
	return nil
}
