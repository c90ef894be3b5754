package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/SergeyKozhin/jtx-board/internal/config"
	"github.com/spf13/cobra"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = &cobra.Command{
	Use:   "jtxboard",
	Short: "Journals, notes and tasks board backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
	SilenceUsage: true,
}

func main() {
	defer closer.Close()

	rootCmd.AddCommand(serveCmd, migrateCmd, reconcileCmd, tokenCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closer.Exit(1)
	}
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}

func mustLogger() *zap.SugaredLogger {
	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}
	return logger
}
