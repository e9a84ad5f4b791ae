// Package notify renders templated messages and delivers them to actors and operators.
package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/LootCrates_Go/internal/logger"
)

// Message is one rendered notification. Broadcast messages are meant for everyone,
// not only ActorID.
type Message struct {
	ActorID   string
	Key       string
	Text      string
	Broadcast bool
	Tier      string
}

// Sink delivers rendered messages
type Sink interface {
	Notify(ctx context.Context, msg Message) error
}

// SinkFunc adapts a function into a Sink
type SinkFunc func(ctx context.Context, msg Message) error

// Notify implements Sink
func (f SinkFunc) Notify(ctx context.Context, msg Message) error { return f(ctx, msg) }

// LogSink writes every message to the structured log
type LogSink struct{}

// Notify implements Sink
func (LogSink) Notify(ctx context.Context, msg Message) error {
	logger.FromContext(ctx).Info(LogMsgNotification,
		LogFieldActor, msg.ActorID,
		LogFieldKey, msg.Key,
		LogFieldText, StripColors(msg.Text))
	return nil
}

// FanOut delivers to every sink and joins their errors
type FanOut []Sink

// Notify implements Sink
func (f FanOut) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, s := range f {
		if err := s.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps delivered messages in memory
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify implements Sink
func (r *Recorder) Notify(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

// Messages returns a copy of everything recorded so far
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Keys lists the recorded message keys in order
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	for i, m := range r.messages {
		out[i] = m.Key
	}
	return out
}

// Notifier renders catalog keys and hands them to a sink.
// Delivery failures are logged, never returned: a lost message must not fail an open.
type Notifier struct {
	catalog *Catalog
	sink    Sink
}

// NewNotifier creates a notifier; a nil sink logs only
func NewNotifier(catalog *Catalog, sink Sink) *Notifier {
	if sink == nil {
		sink = LogSink{}
	}
	return &Notifier{catalog: catalog, sink: sink}
}

// Catalog exposes the notifier's message catalog
func (n *Notifier) Catalog() *Catalog {
	return n.catalog
}

// Send renders key with the chat prefix and delivers it to one actor
func (n *Notifier) Send(ctx context.Context, actorID, key string, placeholders map[string]string) {
	n.deliver(ctx, Message{
		ActorID: actorID,
		Key:     key,
		Text:    n.catalog.WithPrefix(key, placeholders),
	})
}

// Broadcast renders key without the prefix and delivers it to everyone
func (n *Notifier) Broadcast(ctx context.Context, key, tier string, placeholders map[string]string) {
	n.deliver(ctx, Message{
		Key:       key,
		Text:      n.catalog.Render(key, placeholders),
		Broadcast: true,
		Tier:      tier,
	})
}

func (n *Notifier) deliver(ctx context.Context, msg Message) {
	if !n.catalog.Has(msg.Key) {
		logger.FromContext(ctx).Warn(LogMsgMissingMessage, LogFieldKey, msg.Key)
	}
	if err := n.sink.Notify(ctx, msg); err != nil {
		logger.FromContext(ctx).Warn(LogMsgNotifyFailed, LogFieldKey, msg.Key, LogFieldActor, msg.ActorID, LogFieldError, err)
	}
}
