// Package relay moves Records across a channel.Channel.
//
// A Producer encodes and enqueues; a Consumer polls the non-blocking
// receive with a bounded sleep between attempts and decodes what arrives.
// Cancellation is a context.Context passed into the loop.
package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedlimke/ipc"
	"github.com/jedlimke/ipc/channel"
)

// DefaultPollInterval is the sleep between empty receive attempts.
const DefaultPollInterval = 100 * time.Millisecond

// Producer encodes Records and sends them on a channel.
type Producer struct {
	ch      channel.Sender
	codec   ipc.Codec
	maxSize int
}

// NewProducer returns a Producer sending on ch with codec.
func NewProducer(ch channel.Channel, codec ipc.Codec) *Producer {
	return &Producer{ch: ch, codec: codec, maxSize: ch.MaxMessageSize()}
}

// Send encodes r and enqueues it. Payloads larger than the channel's
// maximum message size fail with channel.ErrTooLarge before sending; a
// full channel fails with channel.ErrFull.
func (p *Producer) Send(ctx context.Context, r ipc.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	data, err := p.codec.Encode(r)
	if err != nil {
		emitSendFailed(ctx, p.codec.ContentType(), 0, err)
		return err
	}

	if len(data) > p.maxSize {
		err := fmt.Errorf("%w: %d bytes, limit %d", channel.ErrTooLarge, len(data), p.maxSize)
		emitSendFailed(ctx, p.codec.ContentType(), len(data), err)
		return err
	}

	if err := p.ch.Send(data); err != nil {
		emitSendFailed(ctx, p.codec.ContentType(), len(data), err)
		return err
	}

	emitSendComplete(ctx, p.codec.ContentType(), len(data), time.Since(start))
	return nil
}

// DecodeErrorPolicy decides what Run does with a message that fails to decode.
type DecodeErrorPolicy int

const (
	// Skip reports the failure through SignalDecodeFailed and keeps polling.
	Skip DecodeErrorPolicy = iota

	// Stop returns the decode error from Run.
	Stop
)

// Handler processes one decoded Record.
// Returning an error stops Run with that error.
type Handler func(ctx context.Context, r ipc.Record) error

// Option configures a Consumer.
type Option func(*Consumer)

// WithPollInterval sets the sleep between empty receive attempts.
// Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(c *Consumer) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithDecodeErrorPolicy sets how Run handles undecodable messages.
func WithDecodeErrorPolicy(p DecodeErrorPolicy) Option {
	return func(c *Consumer) {
		c.policy = p
	}
}

// WithSkipHook sets a function called with each decode error that Run
// skips under the Skip policy.
func WithSkipHook(fn func(ctx context.Context, err error)) Option {
	return func(c *Consumer) {
		c.onSkip = fn
	}
}

// Consumer receives and decodes Records from a channel.
type Consumer struct {
	ch       channel.Receiver
	codec    ipc.Codec
	interval time.Duration
	policy   DecodeErrorPolicy
	onSkip   func(ctx context.Context, err error)
}

// NewConsumer returns a Consumer polling ch and decoding with codec.
func NewConsumer(ch channel.Receiver, codec ipc.Codec, opts ...Option) *Consumer {
	c := &Consumer{
		ch:       ch,
		codec:    codec,
		interval: DefaultPollInterval,
		policy:   Skip,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Next polls until a message arrives and returns its decoded Record.
// A message that fails to decode is returned as its *ipc.DecodeError.
// Next returns ctx.Err() on cancellation and channel.ErrClosed when the
// channel is closed and drained.
func (c *Consumer) Next(ctx context.Context) (ipc.Record, error) {
	start := time.Now()
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for polls := 1; ; polls++ {
		if err := ctx.Err(); err != nil {
			return ipc.Record{}, err
		}

		data, err := c.ch.TryReceive()
		switch {
		case err == nil:
			rec, err := c.codec.Decode(data)
			if err != nil {
				emitDecodeFailed(ctx, c.codec.ContentType(), len(data), err)
				return ipc.Record{}, err
			}
			emitReceiveComplete(ctx, c.codec.ContentType(), len(data), polls, time.Since(start))
			return rec, nil
		case !errors.Is(err, channel.ErrWouldBlock):
			return ipc.Record{}, err
		}

		if timer == nil {
			timer = time.NewTimer(c.interval)
		} else {
			timer.Reset(c.interval)
		}
		select {
		case <-ctx.Done():
			return ipc.Record{}, ctx.Err()
		case <-timer.C:
		}
	}
}

// Run calls h for every decoded Record until ctx is cancelled, the channel
// is closed, or h fails. A closed channel ends Run with a nil error.
func (c *Consumer) Run(ctx context.Context, h Handler) (err error) {
	defer func() {
		emitPollStopped(context.WithoutCancel(ctx), c.codec.ContentType(), err)
	}()

	for {
		rec, nextErr := c.Next(ctx)
		if nextErr != nil {
			var decodeErr *ipc.DecodeError
			switch {
			case errors.As(nextErr, &decodeErr) && c.policy == Skip:
				if c.onSkip != nil {
					c.onSkip(ctx, nextErr)
				}
				continue
			case errors.Is(nextErr, channel.ErrClosed):
				return nil
			default:
				return nextErr
			}
		}

		if herr := h(ctx, rec); herr != nil {
			return herr
		}
	}
}
