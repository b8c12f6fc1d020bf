package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/apnmt/payment/internal/domain/events"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	pubsubmemory "github.com/apnmt/payment/internal/pubsub/memory"
	"github.com/apnmt/payment/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLogger() *logger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return &logger.Logger{SugaredLogger: zapLogger.Sugar()}
}

func TestActivationPublisher_RoundTrip(t *testing.T) {
	ctx := context.Background()
	log := newTestLogger()
	ps := pubsubmemory.NewPubSub(log)
	defer ps.Close()

	messages, err := ps.Subscribe(ctx, types.TopicOrganizationActivationChanged)
	require.NoError(t, err)

	pub := NewActivationPublisher(ps, log)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	event := events.NewOrganizationActivationEvent(42, false, now)

	require.NoError(t, pub.Publish(ctx, types.TopicOrganizationActivationChanged, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, string(types.EventTypeOrganizationActivationChanged), msg.Metadata.Get("event_type"))

		// The wire shape is consumed by other services; the inner keys are
		// camelCase and must stay that way.
		var decoded map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Contains(t, decoded, "timestamp")
		assert.Contains(t, decoded, "type")
		assert.Contains(t, decoded, "value")

		var value map[string]interface{}
		require.NoError(t, json.Unmarshal(decoded["value"], &value))
		assert.Equal(t, float64(42), value["organizationId"])
		assert.Equal(t, false, value["active"])
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for published message")
	}
}

func TestActivationPublisher_EmptyTopic(t *testing.T) {
	log := newTestLogger()
	ps := pubsubmemory.NewPubSub(log)
	defer ps.Close()

	pub := NewActivationPublisher(ps, log)
	event := events.NewOrganizationActivationEvent(1, true, time.Now().UTC())

	err := pub.Publish(context.Background(), "", event)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
