package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"thriven-backend/internal/config"
	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
	"thriven-backend/pkg/logger"
)

type Scheduler struct {
	scheduler    *asynq.Scheduler
	workerConfig config.WorkerConfig
}

func NewScheduler(redis asynq.RedisClientOpt, workerConfig config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redis,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:    scheduler,
		workerConfig: workerConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerCleanupOldNotificationsJob()
}

// ================================================
// Cleanup Old Read Notifications (NOTIFICATION_CLEANUP_CRON, daily at 3 AM by default)
// ================================================
func (s *Scheduler) registerCleanupOldNotificationsJob() error {
	task, err := utils.NewTask(shared.TypeCleanupNotifications, shared.CleanupNotificationsPayload{
		RetentionDays: s.workerConfig.NotificationRetentionDays,
	})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Register(
		s.workerConfig.CleanupCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupOldNotifications job", err)
		return err
	}

	logger.Info("Registered CleanupOldNotifications", map[string]interface{}{
		"cron":           s.workerConfig.CleanupCron,
		"retention_days": s.workerConfig.NotificationRetentionDays,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
