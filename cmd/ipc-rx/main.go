// ipc-rx creates the message queue, prints every Record it receives, and
// removes the queue on exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jedlimke/ipc"
	"github.com/jedlimke/ipc/channel"
	"github.com/jedlimke/ipc/config"
	"github.com/jedlimke/ipc/internal/logging"
	"github.com/jedlimke/ipc/relay"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var logLevel string

	fs := pflag.NewFlagSet("ipc-rx", pflag.ContinueOnError)
	fs.StringVar(&logLevel, "log-level", "info", "log level")
	flags := config.BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := flags.Resolve()
	if err != nil {
		return err
	}

	logger := logging.New(logLevel)
	defer func() { _ = logger.Sync() }()

	codec, err := cfg.Codec()
	if err != nil {
		return err
	}

	// A queue left behind by a crashed receiver may have other attributes.
	if err := channel.Unlink(cfg.Queue.Name); err != nil {
		return fmt.Errorf("remove stale queue %s: %w", cfg.Queue.Name, err)
	}

	q, err := channel.OpenQueue(cfg.Queue.Name, channel.QueueOptions{
		Create:         true,
		Read:           true,
		Capacity:       cfg.Queue.Capacity,
		MaxMessageSize: cfg.Queue.MaxMessageSize,
	})
	if err != nil {
		return fmt.Errorf("open queue %s: %w", cfg.Queue.Name, err)
	}
	defer func() {
		_ = q.Close()
		if err := channel.Unlink(cfg.Queue.Name); err != nil {
			logger.Warn("remove queue", zap.String("queue", cfg.Queue.Name), zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("waiting for messages",
		zap.String("queue", cfg.Queue.Name),
		zap.String("content_type", codec.ContentType()),
		zap.Duration("poll_interval", cfg.PollInterval),
	)

	consumer := relay.NewConsumer(q, codec,
		relay.WithPollInterval(cfg.PollInterval),
		relay.WithDecodeErrorPolicy(cfg.DecodeErrorPolicy()),
		relay.WithSkipHook(func(_ context.Context, err error) {
			logger.Warn("dropped undecodable message", zap.Error(err))
		}),
	)

	err = consumer.Run(ctx, func(_ context.Context, rec ipc.Record) error {
		fmt.Print("Received Message:\n", rec.String())
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("receive loop stopped", zap.Error(err))
		return err
	}
	logger.Info("shutting down", zap.String("queue", cfg.Queue.Name))
	return nil
}
