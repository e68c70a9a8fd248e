// Package dispatch hands provisioning requests to the external deployment
// pipeline over NATS JetStream. Delivery beyond the publish attempt (retry,
// ordering, dead-lettering) is owned by the pipeline, not this package.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/opentre/opentre/internal/metrics"
	"github.com/opentre/opentre/pkg/types"
)

// ErrDispatchUnavailable means the provisioning pipeline could not accept the
// message. A workspace record persisted before the failing publish is NOT
// retracted; callers must treat the operation as uncertain, not retryable.
var ErrDispatchUnavailable = errors.New("provisioning dispatch unavailable")

// Dispatcher publishes provisioning requests to the processing pipeline.
type Dispatcher interface {
	Publish(ctx context.Context, msg types.ProvisioningMessage) error
}

// NATSDispatcher publishes provisioning messages to a NATS JetStream stream.
type NATSDispatcher struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

// NewNATSDispatcher connects to NATS and ensures the provisioning stream
// exists.
func NewNATSDispatcher(natsURL string) (*NATSDispatcher, error) {
	nc, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     "PROVISIONING",
		Subjects: []string{"provisioning.>"},
		MaxAge:   7 * 24 * time.Hour,
	})
	if err != nil {
		// Stream may already exist, that's OK
		log.Printf("dispatch: stream setup: %v", err)
	}

	return &NATSDispatcher{nc: nc, js: js}, nil
}

// Close closes the NATS connection.
func (d *NATSDispatcher) Close() {
	d.nc.Close()
}

// Publish sends one provisioning message to the pipeline. A single blocking
// attempt with no retry; failures are reported as ErrDispatchUnavailable.
func (d *NATSDispatcher) Publish(ctx context.Context, msg types.ProvisioningMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal provisioning message: %w", err)
	}

	subject := fmt.Sprintf("provisioning.requests.%s", msg.Template.ResourceType)
	if _, err := d.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		log.Printf("dispatch: publish error for workspace %s: %v", msg.WorkspaceID, err)
		metrics.DispatchFailuresTotal.Inc()
		return fmt.Errorf("%w: %v", ErrDispatchUnavailable, err)
	}
	return nil
}
