package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lbehrens/powerset/internal/api"
	"github.com/lbehrens/powerset/pkg/cache"
	"github.com/lbehrens/powerset/pkg/pipeline"
	"github.com/lbehrens/powerset/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	mongoURI  string // MongoDB connection string ("" = in-memory store)
	redisAddr string // Redis address ("" = no result cache)
}

// newServeCmd creates the serve command for running the HTTP API.
// Without --mongo the server stores machines in memory; without --redis it
// recomputes every request instead of caching results.
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr: ":8080",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the determinization HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for machine storage (default: in-memory)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for result caching (default: none)")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	st, err := openStore(ctx, opts.mongoURI)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	c, err := openServerCache(ctx, opts.redisAddr)
	if err != nil {
		return err
	}
	defer c.Close()

	server := api.NewServer(pipeline.NewRunner(c, nil, logger), st, logger)
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func openStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
	if err != nil {
		return nil, fmt.Errorf("open mongo store: %w", err)
	}
	return st, nil
}

func openServerCache(ctx context.Context, redisAddr string) (cache.Cache, error) {
	if redisAddr == "" {
		return cache.NewNullCache(), nil
	}
	c, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	if err != nil {
		return nil, fmt.Errorf("open redis cache: %w", err)
	}
	return c, nil
}
