package cli

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pht-ctoi/ctoistatus/internal/server"
	"github.com/pht-ctoi/ctoistatus/internal/statusstore"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the saved status table over HTTP",
		Long: `Serve the status table written by the last build as JSON and CSV:

  GET /version
  GET /statuses[?sector=N&disposition=D]
  GET /statuses/{ctoi}
  GET /statuses.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := GetConfig()
			if port == "" {
				port = c.Server.Port
			}
			s, err := server.CreateNewServer(statusstore.New(c.DataDir), server.Options{
				HandleCORS:    c.Server.HandleCORS,
				ServerVersion: Version,
			})
			if err != nil {
				return err
			}
			s.MountHandlers()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx = log.Logger.WithContext(ctx)
			if err := s.ListenAndServe(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from config)")
	return cmd
}
