// Package cmd holds the tradetracker command line
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sljivkov/tradetracker/apis"
	"github.com/sljivkov/tradetracker/config"
	"github.com/sljivkov/tradetracker/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:          "tradetracker",
	Short:        "Track crypto trades against live CoinGecko prices",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this .env file first")

	rootCmd.AddCommand(priceCmd, iconsCmd, openCmd, portfolioCmd)
}

// Execute runs the command line with ctx as the base context of every command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// session is what one command invocation works with. The CoinGecko client
// lives exactly as long as the command.
type session struct {
	cfg   *config.Config
	log   *zap.Logger
	gecko *apis.CoinGecko
}

func newSession() (*session, error) {
	var opts []config.Option
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	cfg, err := config.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:   cfg,
		log:   log,
		gecko: apis.NewCoinGecko(*cfg, apis.WithLogger(log)),
	}, nil
}

func (s *session) Close() {
	s.gecko.Close()
	_ = s.log.Sync()
}
