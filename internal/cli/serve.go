package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/archlens/archlens/internal/config"
	"github.com/archlens/archlens/internal/server"
	"github.com/archlens/archlens/pkg/cache"
	"github.com/archlens/archlens/pkg/engine"
)

// newServeCmd creates the serve command.
func newServeCmd(cfgPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			responseCache, err := newResponseCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer responseCache.Close()

			eng := engine.New(cfg.LayoutOptions(), logger)
			srv := server.New(cfg, eng, responseCache, logger)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.ShutdownTimeout.Std())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

// newResponseCache builds the response cache backend selected in the
// config.
func newResponseCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	case "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return cache.NewMemoryCache(cfg.Cache.MaxEntries, cfg.Cache.TTL.Std()), nil
	}
}
