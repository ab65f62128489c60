package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"thriven-backend/internal/infrastructure/metrics"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
)

// Enqueuer is satisfied by *asynq.Client
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier turns domain events into notification:create tasks
type Notifier struct {
	client Enqueuer
}

func NewNotifier(client Enqueuer) *Notifier {
	return &Notifier{client: client}
}

var _ shared.Notifier = (*Notifier)(nil)

func (n *Notifier) Notify(ctx context.Context, accountID uuid.UUID, postID *uuid.UUID, message string) error {
	payload := shared.CreateNotificationPayload{
		AccountID: accountID.String(),
		Message:   message,
	}
	if postID != nil {
		id := postID.String()
		payload.PostID = &id
	}

	task, err := utils.NewTask(shared.TypeCreateNotification, payload)
	if err != nil {
		metrics.NotificationsEnqueued.WithLabelValues(metrics.OutcomeFailed).Inc()
		return err
	}

	_, err = n.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		metrics.NotificationsEnqueued.WithLabelValues(metrics.OutcomeFailed).Inc()
		return fmt.Errorf("enqueue notification: %w", err)
	}

	metrics.NotificationsEnqueued.WithLabelValues(metrics.OutcomeCreated).Inc()
	return nil
}
