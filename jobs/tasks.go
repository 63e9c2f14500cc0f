// Package jobs carries the asynchronous invalidation work triggered by bulk
// role changes.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian/internal/authz"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAuthzInvalidate is the task type for role cache invalidation.
	TaskAuthzInvalidate = "authz:invalidate"
)

// InvalidatePayload names the invalidation target. An empty PrincipalID with
// All set flushes every entry.
type InvalidatePayload struct {
	PrincipalID string `json:"principal_id"`
	All         bool   `json:"all"`
}

// NewInvalidateTask constructs an Asynq task for one principal.
func NewInvalidateTask(principalID string) (*asynq.Task, error) {
	return newInvalidateTask(InvalidatePayload{PrincipalID: principalID})
}

// NewInvalidateAllTask constructs an Asynq task for a full flush.
func NewInvalidateAllTask() (*asynq.Task, error) {
	return newInvalidateTask(InvalidatePayload{All: true})
}

func newInvalidateTask(payload InvalidatePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuthzInvalidate, data), nil
}

// NewInvalidateHandler returns the handler processing TaskAuthzInvalidate
// tasks by broadcasting the invalidation to every process.
func NewInvalidateHandler(bus *authz.Broadcaster, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload InvalidatePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		var err error
		if payload.All {
			err = bus.InvalidateAll(ctx)
		} else if payload.PrincipalID != "" {
			err = bus.Invalidate(ctx, payload.PrincipalID)
		} else {
			return asynq.SkipRetry
		}
		if err != nil && logger != nil {
			logger.Error("broadcast invalidation",
				slog.String("principal", payload.PrincipalID),
				slog.Bool("all", payload.All),
				slog.Any("error", err))
		}
		return err
	}
}
