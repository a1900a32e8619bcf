package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"skorpik-value/app"
	"skorpik-value/config"
	"skorpik-value/logger"
)

var (
	cfgFile string
	envFile string

	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "skorpik-value",
	Short: "Trade value calculator for the Skorpik item catalog.",
	Long:  "Browse the Skorpik item catalog, compare both sides of a trade and export the trade as an image.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envLoaded, envErr := loadEnv(envFile)

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		log, err = logger.New(cfg.Log)
		if err != nil {
			return err
		}

		if envErr != nil {
			log.Debug("LoadEnv: .env not loaded, using system environment variables", zap.String("path", envFile), zap.Error(envErr))
		} else if envLoaded {
			log.Debug("LoadEnv: environment loaded", zap.String("path", envFile))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	SilenceUsage: true,
}

// loadEnv reads path into the environment outside production.
// Values in the file override variables already set.
func loadEnv(path string) (bool, error) {
	if os.Getenv("ENV") == "production" || path == "" {
		return false, nil
	}
	if err := godotenv.Overload(path); err != nil {
		return false, err
	}
	return true, nil
}

// initApp wires the application for a command
func initApp(ctx context.Context) (*app.App, error) {
	return app.Initialize(ctx, cfg, log)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded outside production")
}
