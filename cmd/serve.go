package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/logger"
	"github.com/careerup/careerup/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resume analysis HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (default is PORT or 5000)")
	serveCmd.Flags().String("upload-dir", "", "directory for temporary uploads (default is UPLOAD_DIR or uploads)")

	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("upload-dir", serveCmd.Flags().Lookup("upload-dir"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the careerup backend", zap.String("version", version))

	// Secrets are never printed.
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	srv := server.New(server.Config{
		Addr:         fmt.Sprintf(":%d", config.Port),
		UploadDir:    config.UploadDir,
		BodyLimit:    config.MaxUploadSize,
		AllowOrigins: config.CORSOrigins,
	}, svc, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "got shutdown signal"))
}

func redacted(config *Config) Config {
	c := *config
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}

	c.Gemini.APIKey = mask(c.Gemini.APIKey)
	c.Adzuna.AppKey = mask(c.Adzuna.AppKey)
	c.JSearch.APIKey = mask(c.JSearch.APIKey)

	return c
}
