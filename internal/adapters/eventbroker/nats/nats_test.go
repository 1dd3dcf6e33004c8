package nats_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	nats2 "github.com/MyagmarsurenMike/e-proof/internal/adapters/eventbroker/nats"
	"github.com/MyagmarsurenMike/e-proof/internal/config"
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type mockHandler struct {
	messages [][]byte
	received chan struct{}
	err      error
	mu       sync.Mutex
}

func (m *mockHandler) HandleMessage(ctx context.Context, data []byte) error {
	m.mu.Lock()
	m.messages = append(m.messages, data)
	m.mu.Unlock()

	if m.received != nil {
		m.received <- struct{}{}
	}
	return m.err
}

func setupNATSContainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "nats:2.10-alpine",
		ExposedPorts: []string{"4222/tcp"},
		Cmd:          []string{"-js"},
		WaitingFor:   wait.ForLog("Server is ready"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return "nats://" + host + ":" + port.Port(), cleanup
}

func testNATSConfig(natsURL, stream, subject, consumer string) config.NATSConfig {
	return config.NATSConfig{
		URL:          natsURL,
		StreamName:   stream,
		Subject:      subject,
		ConsumerName: consumer,
	}
}

func TestPublisherConsumer_RoundTrip(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testNATSConfig(natsURL, "DOCS-RT", "docs.rt", "rt-worker")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher, err := nats2.NewNATSPublisher(ctx, cfg, logger)
	require.NoError(t, err)
	defer publisher.Close()

	consumer, err := nats2.NewNATSConsumer(cfg, logger)
	require.NoError(t, err)
	defer consumer.Close()

	handler := &mockHandler{received: make(chan struct{}, 1)}
	require.NoError(t, consumer.Subscribe(ctx, handler))

	event := domain.DocumentEvent{
		DocumentID:  uuid.New(),
		Status:      domain.StatusPending,
		ContentHash: "abc123",
		OccurredAt:  time.Now().UTC(),
	}

	// Act
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case <-handler.received:
	case <-time.After(3 * time.Second):
		t.Fatal("event not received")
	}

	// Assert
	require.Len(t, handler.messages, 1)
	var got domain.DocumentEvent
	require.NoError(t, json.Unmarshal(handler.messages[0], &got))
	assert.Equal(t, event.DocumentID, got.DocumentID)
	assert.Equal(t, event.Status, got.Status)
	assert.Equal(t, event.ContentHash, got.ContentHash)
}

func TestConsumer_HandlerErrorTriggersRedelivery(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testNATSConfig(natsURL, "DOCS-ERR", "docs.err", "err-worker")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher, err := nats2.NewNATSPublisher(ctx, cfg, logger)
	require.NoError(t, err)
	defer publisher.Close()

	consumer, err := nats2.NewNATSConsumer(cfg, logger)
	require.NoError(t, err)
	defer consumer.Close()

	handler := &mockHandler{received: make(chan struct{}, 2), err: assert.AnError}
	require.NoError(t, consumer.Subscribe(ctx, handler))

	// Act
	require.NoError(t, publisher.Publish(ctx, domain.DocumentEvent{DocumentID: uuid.New(), Status: domain.StatusPending}))

	for i := 0; i < 2; i++ {
		select {
		case <-handler.received:
		case <-time.After(3 * time.Second):
			t.Fatal("expected redelivery")
		}
	}

	// Assert
	assert.GreaterOrEqual(t, len(handler.messages), 2)
}

func TestConsumer_GracefulShutdown(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := testNATSConfig(natsURL, "DOCS-SD", "docs.sd", "sd-worker")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher, err := nats2.NewNATSPublisher(ctx, cfg, logger)
	require.NoError(t, err)
	defer publisher.Close()

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()

	handler := &mockHandler{received: make(chan struct{}, 1)}
	consumer, err := nats2.NewNATSConsumer(cfg, logger)
	require.NoError(t, err)

	// Act
	require.NoError(t, consumer.Subscribe(ctx, handler))
	require.NoError(t, consumer.Close())
	_ = nc.Publish(cfg.Subject, []byte("late-data"))

	// Assert
	select {
	case <-handler.received:
		t.Fatal("message should not be processed after Close")
	case <-time.After(500 * time.Millisecond):
	}
}
