package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ElBenerDev/asistenteAltamirano/config"
	"github.com/ElBenerDev/asistenteAltamirano/internal/logging"
)

type options struct {
	endpoint   string
	baseOrigin string
	logLevel   string

	cfg    *config.Config
	logger *logrus.Logger
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "asistente",
		Short:         "Chat with the Altamirano property assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if opts.endpoint != "" {
				cfg.Chat.Endpoint = opts.endpoint
			}
			if opts.baseOrigin != "" {
				cfg.Listings.BaseOrigin = opts.baseOrigin
			}

			opts.logger = newLogger(opts.logLevel, cfg, cmd.ErrOrStderr())
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "chat endpoint URL (default $CHAT_ENDPOINT)")
	cmd.PersistentFlags().StringVar(&opts.baseOrigin, "base-origin", "", "origin for short detail links (default $LISTING_BASE_ORIGIN)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (default $LOG_LEVEL)")

	cmd.AddCommand(newChatCommand(opts))
	cmd.AddCommand(newParseCommand(opts))

	return cmd
}

// newLogger builds the CLI logger. The flag level wins over LOG_LEVEL; logs
// go to w so they never mix with replies or parse output.
func newLogger(flagLevel string, cfg *config.Config, w io.Writer) *logrus.Logger {
	level := flagLevel
	if level == "" {
		level = cfg.LogLevel
	}
	logger := logging.New(level, cfg.LogFormat)
	logger.SetOutput(w)
	return logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
