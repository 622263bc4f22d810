package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/larsmk/crystalgraph/internal/api"
	"github.com/larsmk/crystalgraph/pkg/config"
)

// newServeCmd creates the "serve" command.
func newServeCmd(configPath *string) *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes graph construction over HTTP: POST /graphs builds a graph
from an uploaded crystal or molecule record, GET /graphs/{id} returns it.
The server runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(resolveConfigPath(*configPath))
			if err != nil {
				return err
			}
			builder, err := newBuilder(cfg, noCache)
			if err != nil {
				return err
			}
			defer builder.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(builder, logger).Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the construction cache")

	return cmd
}
