// ipc-tx encodes a Record from command line flags and sends it on the
// message queue. Fields whose flag is not given are sent as absent.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	var (
		intValue   int32
		floatValue float32
		textValue  string
		kindValue  int32
		count      int
		interval   time.Duration
		create     bool
		logLevel   string
	)

	fs := pflag.NewFlagSet("ipc-tx", pflag.ContinueOnError)
	fs.Int32Var(&intValue, "int", 0, "integer field")
	fs.Float32Var(&floatValue, "float", 0, "float field")
	fs.StringVar(&textValue, "text", "", "string field")
	fs.Int32Var(&kindValue, "kind", 0, "type field: 0, 1 or 2")
	fs.IntVar(&count, "count", 1, "number of messages to send")
	fs.DurationVar(&interval, "interval", time.Second, "pause between messages")
	fs.BoolVar(&create, "create", false, "create the queue if it does not exist")
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

	rec := ipc.Record{}
	if fs.Changed("int") {
		rec.Int = ipc.Some(intValue)
	}
	if fs.Changed("float") {
		rec.Float = ipc.Some(floatValue)
	}
	if fs.Changed("text") {
		rec.Text = ipc.Some(textValue)
	}
	if fs.Changed("kind") {
		rec.Kind = ipc.Some(ipc.Kind(kindValue))
	}

	codec, err := cfg.Codec()
	if err != nil {
		return err
	}

	q, err := channel.OpenQueue(cfg.Queue.Name, channel.QueueOptions{
		Create:         create,
		Write:          true,
		Capacity:       cfg.Queue.Capacity,
		MaxMessageSize: cfg.Queue.MaxMessageSize,
	})
	if err != nil {
		return fmt.Errorf("open queue %s: %w", cfg.Queue.Name, err)
	}
	defer func() { _ = q.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer := relay.NewProducer(q, codec)
	for i := 0; i < count; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(interval):
			}
		}
		if err := producer.Send(ctx, rec); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Error("send failed", zap.String("queue", cfg.Queue.Name), zap.Error(err))
			return err
		}
		logger.Info("message sent",
			zap.String("queue", cfg.Queue.Name),
			zap.String("content_type", codec.ContentType()),
			zap.Int("seq", i+1),
		)
	}
	fmt.Print("Sent Message:\n", rec.String())
	return nil
}
