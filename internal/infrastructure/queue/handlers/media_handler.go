package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"thriven-backend/internal/shared"
	"thriven-backend/internal/shared/utils"
	"thriven-backend/pkg/logger"
)

// MediaProcessor is implemented by *storage.MediaStore
type MediaProcessor interface {
	GenerateVariants(ctx context.Context, key string) (int, error)
	DeleteFolder(ctx context.Context, prefix string) (int, error)
}

// ProcessImageHandler builds the resized variants of an uploaded image
func ProcessImageHandler(media MediaProcessor) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p shared.ProcessImagePayload
		if err := utils.UnmarshalTask(t, &p); err != nil || p.ObjectKey == "" {
			return fmt.Errorf("bad process image payload: %w", asynq.SkipRetry)
		}

		n, err := media.GenerateVariants(ctx, p.ObjectKey)
		if errors.Is(err, shared.ErrNotFound) {
			// owner deleted the post or account before the task ran
			logger.Warn("Original image gone, skipping variants", map[string]interface{}{"object_key": p.ObjectKey})
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err != nil {
			return err
		}

		logger.Info("Image variants generated", map[string]interface{}{
			"object_key": p.ObjectKey,
			"variants":   n,
		})
		return nil
	}
}

// DeleteImagesHandler removes every object under the payload prefix
func DeleteImagesHandler(media MediaProcessor) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p shared.DeleteImagesPayload
		if err := utils.UnmarshalTask(t, &p); err != nil || p.Prefix == "" || p.Prefix == "/" {
			return fmt.Errorf("bad delete images payload: %w", asynq.SkipRetry)
		}

		n, err := media.DeleteFolder(ctx, p.Prefix)
		if err != nil {
			return err
		}

		logger.Info("Images deleted", map[string]interface{}{
			"prefix":  p.Prefix,
			"deleted": n,
		})
		return nil
	}
}
