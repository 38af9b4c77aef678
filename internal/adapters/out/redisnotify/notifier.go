// Package redisnotify publishes job lifecycle events to Redis pub/sub channels.
// Subscribers (dispatcher dashboards, carrier apps) receive JSON payloads on a
// per-event channel. Publishing is best effort; the command handlers that call
// the notifier log failures and carry on.
package redisnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	// ChannelJobRequested carries claim announcements.
	ChannelJobRequested = "jobs.requested"
	// ChannelJobStatusChanged carries every lifecycle transition.
	ChannelJobStatusChanged = "jobs.status_changed"
)

// NewClient parses redisURL and verifies connectivity.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// jobRequestedEvent is the payload published on ChannelJobRequested.
type jobRequestedEvent struct {
	JobID      string    `json:"jobId"`
	Title      string    `json:"title"`
	CarrierID  string    `json:"carrierId"`
	PayAmount  float64   `json:"payAmount"`
	OccurredAt time.Time `json:"occurredAt"`
}

// statusChangedEvent is the payload published on ChannelJobStatusChanged.
type statusChangedEvent struct {
	JobID      string    `json:"jobId"`
	Title      string    `json:"title"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	CarrierID  string    `json:"carrierId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RedisNotifier implements Notifier over Redis pub/sub.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier publishing through the given client.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// NotifyJobRequested announces that a carrier has claimed a job.
func (n *RedisNotifier) NotifyJobRequested(
	ctx context.Context,
	aggregate *job.Job,
	carrierID kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := jobRequestedEvent{
		JobID:      aggregate.ID().String(),
		Title:      aggregate.Title(),
		CarrierID:  carrierID.String(),
		PayAmount:  aggregate.PayAmount(),
		OccurredAt: time.Now().UTC(),
	}

	return n.publish(ctx, ChannelJobRequested, event)
}

// NotifyStatusChanged announces a job status transition.
func (n *RedisNotifier) NotifyStatusChanged(
	ctx context.Context,
	aggregate *job.Job,
	from job.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := statusChangedEvent{
		JobID:      aggregate.ID().String(),
		Title:      aggregate.Title(),
		From:       from.String(),
		To:         aggregate.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	if aggregate.AssignedTo() != nil {
		event.CarrierID = aggregate.AssignedTo().String()
	}

	return n.publish(ctx, ChannelJobStatusChanged, event)
}

func (n *RedisNotifier) publish(ctx context.Context, channel string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", channel, err)
	}

	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}

	return nil
}
