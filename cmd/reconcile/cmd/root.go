package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jayjaychukwu/reconcilation/pkg/constants"
	"github.com/jayjaychukwu/reconcilation/pkg/logging"
)

var (
	configFile string
	verbose    bool
	quiet      bool
	logFormat  string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "CSV reconciliation service",
	Long: `Reconcile compares two CSV datasets and reports records missing from
either side along with field level discrepancies between matched records.

It can run as a one-shot command against two local files, or as an HTTP
service that accepts uploads and processes them asynchronously.`,
	PersistentPreRun: setupCommand,
	SilenceUsage:     true,
	SilenceErrors:    true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date, builtBy string) {
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.reconcilation.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug level logging)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output (warnings and errors only)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console, json")
}

// initConfig loads configuration from .env files and the environment.
func initConfig() {
	// .env.local overrides .env
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".reconcilation")
	}
	// Config file is optional.
	_ = viper.ReadInConfig()

	viper.SetDefault("host", "localhost")
	viper.SetDefault("port", 8080)
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("database_path", "data/reconcile.db")
	viper.SetDefault("workers", constants.DefaultWorkerCount)
	viper.SetDefault("job_retention", constants.DefaultJobRetention)
	viper.SetDefault("cors_origins", "")
}

// setupCommand configures logging before any command runs.
func setupCommand(_ *cobra.Command, _ []string) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	if quiet {
		level = "warn"
	}
	if verbose {
		level = "debug"
	}

	format := logFormat
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}

	logging.Configure(level, format)
}
