// Package notify delivers outbound SMS notifications. Delivery is
// best-effort and asynchronous: a turn hands a message off and never waits
// for, or learns about, the outcome. Failures are logged for operators.
package notify

import (
	"context"
	"log/slog"
	"time"
)

// Message is one rendered notification addressed to a caller.
type Message struct {
	To   string
	Text string
}

// Sender performs the actual delivery to the provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher is the interface terminal actions depend on.
type Dispatcher interface {
	Dispatch(msg Message)
}

const sendTimeout = 10 * time.Second

// AsyncDispatcher queues messages to a single worker goroutine. A full
// queue drops the message with a logged error rather than blocking a turn.
type AsyncDispatcher struct {
	sender Sender
	queue  chan Message
	done   chan struct{}
}

// NewAsyncDispatcher starts the worker.
func NewAsyncDispatcher(sender Sender, queueSize int) *AsyncDispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}
	d := &AsyncDispatcher{
		sender: sender,
		queue:  make(chan Message, queueSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *AsyncDispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sender.Send(ctx, msg)
		cancel()
		if err != nil {
			slog.Error("notification delivery failed", "to", msg.To, "error", err)
			continue
		}
		slog.Debug("notification delivered", "to", msg.To)
	}
}

// Dispatch implements Dispatcher.
func (d *AsyncDispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		slog.Error("notification queue full, dropping message", "to", msg.To)
	}
}

// Close stops accepting messages and drains the queue.
func (d *AsyncDispatcher) Close() {
	close(d.queue)
	<-d.done
}
