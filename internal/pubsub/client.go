package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrEmptyMessage = errors.New("push message has no data")

// New creates a Pub/Sub client for projectID. With an empty projectID events are
// logged and dropped.
func New(ctx context.Context, projectID string) (PubSubClient, error) {
	if projectID == "" {
		log.Warn("GCP_PROJECT not set, events will not be published")
		return disabled{}, nil
	}
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	teardown := func() {
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		teardown: teardown,
	}, nil
}

func (c *client) SendMessage(ctx context.Context, topic EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"event": string(topic)},
	}
	result := c.client.Topic(string(topic)).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (c *client) DecodePush(body io.Reader, returnValue any) error {
	data, err := pushData(body)
	if err != nil {
		return err
	}
	return c.ProcessMessage(data, returnValue)
}

func (c *client) Close() error {
	c.teardown()
	return nil
}

func (disabled) SendMessage(ctx context.Context, topic EventType, data any) error {
	log.Debug("Dropping event, pubsub disabled", "topic", topic)
	return nil
}

func (disabled) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (d disabled) DecodePush(body io.Reader, returnValue any) error {
	data, err := pushData(body)
	if err != nil {
		return err
	}
	return d.ProcessMessage(data, returnValue)
}

func (disabled) Close() error { return nil }

func decode(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// pushData unwraps {"message":{"data":"<base64>"}}; encoding/json decodes base64 into []byte.
func pushData(body io.Reader) ([]byte, error) {
	var req PushRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid push request: %w", err)
	}
	if len(req.Message.Data) == 0 {
		return nil, ErrEmptyMessage
	}
	return req.Message.Data, nil
}
