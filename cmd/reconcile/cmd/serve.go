package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jayjaychukwu/reconcilation/internal/server"
	"github.com/jayjaychukwu/reconcilation/internal/store"
	"github.com/jayjaychukwu/reconcilation/internal/worker"
	"github.com/jayjaychukwu/reconcilation/pkg/constants"
	"github.com/jayjaychukwu/reconcilation/pkg/logging"
)

var (
	serveHost    string
	servePort    int
	serveDataDir string
	serveDBPath  string
	serveWorkers int
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reconciliation HTTP service",
	Long: `Serve starts the HTTP API together with the background worker pool
that processes uploaded reconciliation jobs, and a scheduled sweep that
removes expired job records and their uploaded files.`,
	Example: `  reconcile serve
  reconcile serve --port 9090 --workers 8`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind address (default from HOST env)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from PORT env)")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "", "directory for uploaded files")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "path to the job database")
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 0, "number of reconciliation workers")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.Default()

	host := stringOr(serveHost, viper.GetString("host"))
	port := intOr(servePort, viper.GetInt("port"))
	dataDir := stringOr(serveDataDir, viper.GetString("data_dir"))
	dbPath := stringOr(serveDBPath, viper.GetString("database_path"))
	workers := intOr(serveWorkers, viper.GetInt("workers"))
	retention := viper.GetDuration("job_retention")
	if retention <= 0 {
		retention = constants.DefaultJobRetention
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening job store: %w", err)
	}
	defer s.Close()

	files, err := store.NewFiles(dataDir)
	if err != nil {
		return fmt.Errorf("preparing upload directories: %w", err)
	}

	pool := worker.New(s, files, workers, logger)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	pool.Start(workerCtx)

	cleaner := store.NewCleaner(s, files, retention, logger)
	if err := cleaner.Start(); err != nil {
		stopWorkers()
		return fmt.Errorf("starting retention sweep: %w", err)
	}

	cfg := server.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	if origins := viper.GetString("cors_origins"); origins != "" {
		cfg.CORSOrigins = splitOrigins(origins)
	}

	srv := server.New(s, files, pool, logger, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info().
		Str("addr", srv.Addr()).
		Int("workers", workers).
		Msg("reconciliation service started")

	select {
	case err := <-errCh:
		stopWorkers()
		cleaner.Stop()
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)

	cleaner.Stop()
	stopWorkers()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(constants.ShutdownTimeout):
		logger.Warn().Msg("workers did not stop in time")
	}

	return shutdownErr
}

func stringOr(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

func intOr(flag, fallback int) int {
	if flag != 0 {
		return flag
	}
	return fallback
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
