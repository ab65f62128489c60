package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
	"thriven-backend/pkg/logger"
)

// ObjectStore is the subset of MinIOStorage the media store needs
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	RemoveFolder(ctx context.Context, prefix string) (int, error)
}

// TaskEnqueuer is satisfied by *asynq.Client
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// MediaStore uploads originals synchronously and leaves resizing and deletion to the worker
type MediaStore struct {
	objects   ObjectStore
	processor *ImageProcessor
	queue     TaskEnqueuer
}

func NewMediaStore(objects ObjectStore, processor *ImageProcessor, queue TaskEnqueuer) *MediaStore {
	return &MediaStore{objects: objects, processor: processor, queue: queue}
}

var _ shared.MediaStore = (*MediaStore)(nil)

// SaveImage stores the original as <prefix>/<uuid>/original.<ext> and queues variant generation
func (m *MediaStore) SaveImage(ctx context.Context, prefix string, data []byte) (string, error) {
	format, err := m.processor.ValidateImage(data)
	if err != nil {
		return "", err
	}

	ext, contentType := "jpg", "image/jpeg"
	if format == "png" {
		ext, contentType = "png", "image/png"
	}
	key := path.Join(prefix, uuid.NewString(), "original."+ext)

	if err := m.objects.Upload(ctx, key, data, contentType); err != nil {
		return "", err
	}

	task, err := utils.NewTask(shared.TypeProcessImage, shared.ProcessImagePayload{ObjectKey: key})
	if err != nil {
		return "", err
	}
	if _, err := m.queue.EnqueueContext(ctx, task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(3)); err != nil {
		// the original is usable without variants
		logger.Error("Failed to enqueue image processing", err)
	}

	return key, nil
}

// RemoveImages queues deletion of everything under prefix
func (m *MediaStore) RemoveImages(ctx context.Context, prefix string) error {
	task, err := utils.NewTask(shared.TypeDeleteImages, shared.DeleteImagesPayload{Prefix: folder(prefix)})
	if err != nil {
		return err
	}
	if _, err := m.queue.EnqueueContext(ctx, task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue image deletion: %w", err)
	}
	return nil
}

// GenerateVariants writes large/medium/thumbnail JPEGs next to the original
func (m *MediaStore) GenerateVariants(ctx context.Context, key string) (int, error) {
	data, err := m.objects.Download(ctx, key)
	if err != nil {
		return 0, err
	}

	variants, err := m.processor.ProcessImage(data)
	if err != nil {
		return 0, err
	}

	dir := path.Dir(key)
	for name, b := range variants {
		if err := m.objects.Upload(ctx, path.Join(dir, name+".jpg"), b, "image/jpeg"); err != nil {
			return 0, err
		}
	}
	return len(variants), nil
}

// DeleteFolder removes everything under prefix right away
func (m *MediaStore) DeleteFolder(ctx context.Context, prefix string) (int, error) {
	return m.objects.RemoveFolder(ctx, folder(prefix))
}

// folder makes "profile_pics/<id>" match only that id, not "profile_pics/<id>x"
func folder(prefix string) string {
	return strings.TrimSuffix(prefix, "/") + "/"
}
