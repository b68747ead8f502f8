package pubsub

import (
	"context"
	"io"
)

type PubSubClient interface {
	SendMessage(ctx context.Context, topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	// DecodePush reads a push envelope from body and decodes its payload into returnValue.
	DecodePush(body io.Reader, returnValue any) error
	Close() error
}
