package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Reserved metadata keys carrying Message fields across the watermill boundary.
const (
	headerActor = "actor"
	headerTopic = "topic"
)

// WatermillBridge is the in-process change-event bus. Scripts and models
// handlers publish on it after a successful write and the API cache listens
// to drop stale entries.
type WatermillBridge struct {
	channel *gochannel.GoChannel
}

var (
	_ Publisher  = (*WatermillBridge)(nil)
	_ Subscriber = (*WatermillBridge)(nil)
)

// NewWatermillBridge returns a bus backed by watermill's GoChannel.
func NewWatermillBridge() *WatermillBridge {
	return &WatermillBridge{
		channel: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NewStdLogger(false, false),
		),
	}
}

func encode(ctx context.Context, msg Message) *message.Message {
	out := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		out.Metadata.Set(k, v)
	}
	out.Metadata.Set(headerTopic, msg.Topic)
	if msg.UserID != "" {
		out.Metadata.Set(headerActor, msg.UserID)
	}
	out.SetContext(ctx)
	return out
}

func decode(in *message.Message) Message {
	msg := Message{
		Topic:    in.Metadata.Get(headerTopic),
		UserID:   in.Metadata.Get(headerActor),
		Payload:  in.Payload,
		Metadata: make(map[string]string, len(in.Metadata)),
	}
	for k, v := range in.Metadata {
		if k == headerTopic || k == headerActor {
			continue
		}
		msg.Metadata[k] = v
	}
	return msg
}

// Publish sends msg to every subscriber of msg.Topic.
func (b *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	return b.channel.Publish(msg.Topic, encode(ctx, msg))
}

// Subscribe runs handler for each message on topic until ctx is done.
// Handler errors are logged and the message is acked regardless, since
// GoChannel would otherwise redeliver it in a tight loop.
func (b *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := b.channel.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for in := range messages {
			if err := handler(ctx, decode(in)); err != nil {
				slog.Error("change event handler failed", "topic", topic, "event_id", in.UUID, "error", err)
			}
			in.Ack()
		}
		slog.Debug("change event subscription closed", "topic", topic)
	}()
	return nil
}

// Close stops all subscriptions.
func (b *WatermillBridge) Close() error {
	return b.channel.Close()
}
