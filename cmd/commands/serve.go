package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"khadija-recipes/cmd/config"
	"khadija-recipes/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			app, err := config.NewApp(db)
			if err != nil {
				return err
			}

			if port == "" {
				port = utils.GetConfig("APP_PORT")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Infof("listening on :%s", port)
				errCh <- app.Listen(":" + port)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default APP_PORT)")
	return cmd
}
