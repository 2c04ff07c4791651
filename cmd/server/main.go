package main

import (
	"context"
	"fmt"
	"os"

	"github.com/agenthands/codecleaner/internal/assistant"
	"github.com/agenthands/codecleaner/internal/config"
	"github.com/agenthands/codecleaner/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath  string
	secretsPath string
	port        string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "codecleaner",
	Short: "Clean Code AI web app",
	Long: `Serves a browser UI that uploads a source file, asks an LLM to clean,
format and optimize it, and shows the result next to the original.

The API key is read from the secrets file (gemini_api_key), then from the
config file, then from GEMINI_API_KEY.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config/config.toml", "path to the TOML config file")
	rootCmd.Flags().StringVar(&secretsPath, "secrets", "", "path to the secrets file (overrides [server].secrets_path)")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT and [server].port)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if secretsPath != "" {
		cfg.Server.SecretsPath = secretsPath
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if err := cfg.ResolveAPIKey(); err != nil {
		return err
	}

	a, err := assistant.NewFromConfig(context.Background(), cfg.LLM, cfg.Prompts, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("Failed to close LLM client", zap.Error(err))
		}
	}()

	srv := server.NewServer(cfg, a, logger)
	r := srv.SetupRouter()

	logger.Info("Starting server",
		zap.String("port", cfg.Server.Port),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))
	return r.Run(":" + cfg.Server.Port)
}
