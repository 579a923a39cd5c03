//go:build e2e

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"meeting-room-booking/internal/usecase/notify"
	"meeting-room-booking/internal/usecase/queries"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRabbitMQ(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start rabbitmq container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

func TestAMQPPublisher_RoutesByEventType(t *testing.T) {
	url := startRabbitMQ(t)
	const exchange = "reservations-test"

	publisher, err := NewAMQPPublisher(url, exchange)
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	ch, err := conn.Channel()
	require.NoError(t, err)

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, string(notify.ReservationCreated), exchange, false, nil))
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	rv := &queries.ReservationView{ID: uuid.New(), RoomID: uuid.New(), Status: "confirmed"}
	ctx := context.Background()
	require.NoError(t, publisher.Publish(ctx, notify.Event{Type: notify.ReservationUpdated, Reservation: rv, OccurredAt: time.Now().UTC()}))
	require.NoError(t, publisher.Publish(ctx, notify.Event{Type: notify.ReservationCreated, Reservation: rv, OccurredAt: time.Now().UTC()}))

	select {
	case d := <-deliveries:
		assert.Equal(t, "application/json", d.ContentType)
		assert.Equal(t, string(notify.ReservationCreated), d.RoutingKey)

		var got notify.Event
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, notify.ReservationCreated, got.Type)
		assert.Equal(t, rv.ID, got.Reservation.ID)
	case <-time.After(10 * time.Second):
		t.Fatal("no message delivered")
	}

	select {
	case d := <-deliveries:
		t.Fatalf("unexpected delivery with routing key %q", d.RoutingKey)
	case <-time.After(500 * time.Millisecond):
	}
}
