package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"sync"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thriven-backend/internal/shared"
)

type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string][]byte{}}
}

func (m *memObjects) Upload(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memObjects) Download(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[key], nil
}

func (m *memObjects) RemoveFolder(_ context.Context, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			delete(m.objects, k)
			n++
		}
	}
	return n, nil
}

type recordingQueue struct {
	tasks []*asynq.Task
}

func (q *recordingQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveImage_StoresOriginalAndQueuesProcessing(t *testing.T) {
	objects, queue := newMemObjects(), &recordingQueue{}
	store := NewMediaStore(objects, NewImageProcessor(5<<20), queue)

	key, err := store.SaveImage(context.Background(), "profile_pics/abc", pngBytes(t, 40, 20))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "profile_pics/abc/"))
	assert.True(t, strings.HasSuffix(key, "/original.png"))
	assert.Contains(t, objects.objects, key)

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, shared.TypeProcessImage, queue.tasks[0].Type())
	var payload shared.ProcessImagePayload
	require.NoError(t, json.Unmarshal(queue.tasks[0].Payload(), &payload))
	assert.Equal(t, key, payload.ObjectKey)
}

func TestSaveImage_RejectsBadUploads(t *testing.T) {
	store := NewMediaStore(newMemObjects(), NewImageProcessor(100), &recordingQueue{})

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black}), nil))

	for name, data := range map[string][]byte{
		"empty":     nil,
		"not image": []byte("hello"),
		"gif":       buf.Bytes(),
		"too large": pngBytes(t, 400, 400),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := store.SaveImage(context.Background(), "book_images/a/b", data)
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, "image")
		})
	}
}

func TestGenerateVariants(t *testing.T) {
	objects := newMemObjects()
	store := NewMediaStore(objects, NewImageProcessor(5<<20), &recordingQueue{})
	objects.objects["book_images/a/b/x/original.png"] = pngBytes(t, 64, 32)

	n, err := store.GenerateVariants(context.Background(), "book_images/a/b/x/original.png")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	for _, name := range []string{"large", "medium", "thumbnail"} {
		assert.Contains(t, objects.objects, "book_images/a/b/x/"+name+".jpg")
	}
}

func TestRemoveImages_QueuesFolderDeletion(t *testing.T) {
	objects, queue := newMemObjects(), &recordingQueue{}
	store := NewMediaStore(objects, NewImageProcessor(5<<20), queue)

	require.NoError(t, store.RemoveImages(context.Background(), "profile_pics/abc"))
	require.Len(t, queue.tasks, 1)
	var payload shared.DeleteImagesPayload
	require.NoError(t, json.Unmarshal(queue.tasks[0].Payload(), &payload))
	assert.Equal(t, "profile_pics/abc/", payload.Prefix)

	objects.objects["profile_pics/abc/1/original.png"] = []byte{1}
	objects.objects["profile_pics/abcd/1/original.png"] = []byte{1}
	n, err := store.DeleteFolder(context.Background(), payload.Prefix)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, objects.objects, "profile_pics/abcd/1/original.png")
}
