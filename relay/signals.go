package relay

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for relay events.
var (
	SignalSendComplete    = capitan.NewSignal("ipc.send.complete", "Record encoded and enqueued")
	SignalSendFailed      = capitan.NewSignal("ipc.send.failed", "Record could not be encoded or enqueued")
	SignalReceiveComplete = capitan.NewSignal("ipc.receive.complete", "Message dequeued and decoded")
	SignalDecodeFailed    = capitan.NewSignal("ipc.decode.failed", "Message dequeued but failed to decode")
	SignalPollStopped     = capitan.NewSignal("ipc.poll.stopped", "Consumer poll loop exited")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
	KeyPolls       = capitan.NewIntKey("polls")
)

// emitSendComplete emits an event when a record is enqueued.
func emitSendComplete(ctx context.Context, contentType string, size int, duration time.Duration) {
	capitan.Emit(ctx, SignalSendComplete,
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	)
}

// emitSendFailed emits an event when encode or enqueue fails.
func emitSendFailed(ctx context.Context, contentType string, size int, err error) {
	capitan.Error(ctx, SignalSendFailed,
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyError.Field(err),
	)
}

// emitReceiveComplete emits an event when a message is decoded.
func emitReceiveComplete(ctx context.Context, contentType string, size, polls int, duration time.Duration) {
	capitan.Emit(ctx, SignalReceiveComplete,
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyPolls.Field(polls),
		KeyDuration.Field(duration),
	)
}

// emitDecodeFailed emits an event when a dequeued message does not decode.
func emitDecodeFailed(ctx context.Context, contentType string, size int, err error) {
	capitan.Error(ctx, SignalDecodeFailed,
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyError.Field(err),
	)
}

// emitPollStopped emits an event when the consumer loop exits.
func emitPollStopped(ctx context.Context, contentType string, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalPollStopped, fields...)
	} else {
		capitan.Emit(ctx, SignalPollStopped, fields...)
	}
}
