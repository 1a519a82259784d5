package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/Bbmxzz/see2hear/internal/media"
	"github.com/Bbmxzz/see2hear/internal/scan"
	"github.com/Bbmxzz/see2hear/internal/user"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideUserStore(db *gorm.DB) *user.Store {
	return user.NewStore(db)
}

func ProvideTokenStore(redisClient *redis.Client) user.TokenStore {
	return user.NewRedisTokenStore(redisClient)
}

func ProvideMediaStore(redisClient *redis.Client, cfg *Config) *media.Store {
	return media.NewStore(redisClient, cfg.MediaDir, cfg.MediaTTL)
}

func ProvideScanStore(redisClient *redis.Client, cfg *Config) *scan.Store {
	return scan.NewStore(redisClient, cfg.ScanTTL)
}

func RunMigrations(userStore *user.Store) error {
	return userStore.Migrate()
}

// RunMediaSweeper clears expired disk copies on the media TTL cadence.
// Redis expiry only drops the keys; the files need their own janitor.
func RunMediaSweeper(lc fx.Lifecycle, store *media.Store, logger *slog.Logger) {
	log := logger.With("component", "media_sweeper")
	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(store.TTL())
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						removed, err := store.Sweep(context.Background())
						if err != nil {
							log.Warn("media sweep failed", "error", err)
						} else if removed > 0 {
							log.Info("removed expired media files", "count", removed)
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideUserStore,
		ProvideTokenStore,
		ProvideMediaStore,
		ProvideScanStore,
	),
	fx.Invoke(RunMigrations),
	fx.Invoke(RunMediaSweeper),
)
