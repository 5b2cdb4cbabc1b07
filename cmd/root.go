package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	cmdfactory "github.com/elijahthis/extract-api/internal/cmdFactory"
	"github.com/elijahthis/extract-api/internal/server"
	"github.com/rs/zerolog/log"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

var cfg cmdfactory.Config

func newCmdRootTextAPI() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textapi [flags]",
		Short: "Text Extraction API",
		Long:  `Serve the text extraction HTTP API from the command line.`,
		Example: heredoc.Doc(`
			$ textapi --addr ":8000"
			$ API_TOKEN=s3cret textapi --metrics-port 9190
		`),
		Annotations: map[string]string{
			"versionInfo": server.Version,
		},
		RunE: func(c *cobra.Command, args []string) error {
			f := cmdfactory.TextAPINew(&cfg)
			return runServer(f.Server)
		},
	}

	cmd.Flags().StringVar(&cfg.TextAddr, "addr", ":8000", "Listen address for the API server")
	cmd.Flags().IntVar(&cfg.TextMetricsPort, "metrics-port", 9190, "Port for Metrics server")

	cmd.PersistentFlags().Bool("help", false, "Show help for textapi command")
	return cmd
}

func newCmdRootSheetsAPI() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheetsapi [flags]",
		Short: "Google Sheets URL Extraction API",
		Long:  `Serve the Google Sheets URL extraction HTTP API from the command line.`,
		Example: heredoc.Doc(`
			$ sheetsapi --addr ":8001"
			$ API_TOKEN=s3cret sheetsapi --metrics-port 9191
		`),
		Annotations: map[string]string{
			"versionInfo": server.Version,
		},
		RunE: func(c *cobra.Command, args []string) error {
			f := cmdfactory.SheetsAPINew(&cfg)
			return runServer(f.Server)
		},
	}

	cmd.Flags().StringVar(&cfg.SheetsAddr, "addr", ":8001", "Listen address for the API server")
	cmd.Flags().IntVar(&cfg.SheetsMetricsPort, "metrics-port", 9191, "Port for Metrics server")

	cmd.PersistentFlags().Bool("help", false, "Show help for sheetsapi command")
	return cmd
}

var cmdTextAPI = newCmdRootTextAPI()
var cmdSheetsAPI = newCmdRootSheetsAPI()

// runServer blocks until the server fails or the process is told to stop,
// then drains in-flight requests before returning.
func runServer(s *server.Service) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}

func ExecuteTextAPI() {
	if err := cmdTextAPI.Execute(); err != nil {
		log.Fatal().Msg("Error while executing textapi")
	}
}

func ExecuteSheetsAPI() {
	if err := cmdSheetsAPI.Execute(); err != nil {
		log.Fatal().Msg("Error while executing sheetsapi")
	}
}
