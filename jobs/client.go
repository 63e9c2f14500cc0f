package jobs

import (
	"context"

	"github.com/hibiken/asynq"
)

// Client submits invalidation jobs to the queue. It satisfies
// identity.TaskQueue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueInvalidate schedules an invalidation for one principal.
func (c *Client) EnqueueInvalidate(ctx context.Context, principalID string) error {
	task, err := NewInvalidateTask(principalID)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// EnqueueInvalidateAll schedules a full cache flush.
func (c *Client) EnqueueInvalidateAll(ctx context.Context) error {
	task, err := NewInvalidateAllTask()
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
