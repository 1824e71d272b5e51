package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// StatusChangeStream Redis Streams name consumed by downstream services
// (reporting, sync jobs).
const StatusChangeStream = "zoweh:person-status-changes"

// StreamPublisher publishes status changes to Redis Streams so other
// services can consume them. Publish errors are logged, not propagated:
// the persisted write already happened.
type StreamPublisher struct {
	client *redis.Client
	logger *zap.Logger
}

func NewStreamPublisher(client *redis.Client, logger *zap.Logger) *StreamPublisher {
	return &StreamPublisher{client: client, logger: logger}
}

var _ StatusListener = (*StreamPublisher)(nil)

func (p *StreamPublisher) OnStatusChange(ctx context.Context, change StatusChange) {
	payload, err := json.Marshal(change)
	if err != nil {
		p.logger.Error("Failed to encode status change", zap.Error(err))
		return
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StatusChangeStream,
		Values: map[string]interface{}{
			"data":      string(payload),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
	if err != nil {
		p.logger.Error("Failed to publish status change",
			zap.String("person_id", change.PersonID),
			zap.Error(err),
		)
	}
}
