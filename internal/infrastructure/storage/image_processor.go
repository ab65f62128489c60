package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Variant sizes generated for every upload, longest edge in pixels
var variantSizes = map[string]int{
	"large":     1200,
	"medium":    600,
	"thumbnail": 300,
}

type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	return &ImageProcessor{MaxSize: maxSize}
}

// ValidateImage accepts JPEG or PNG no larger than MaxSize and returns the detected format.
// Failures are reported as field errors on "image".
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", imageError("validation_image_empty", "image is empty")
	}
	if int64(len(data)) > p.MaxSize {
		return "", imageError("validation_image_size", fmt.Sprintf("image exceeds %dMB", p.MaxSize/(1024*1024)))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", imageError("validation_image_format", "not a valid image")
	}
	switch format {
	case "jpeg", "png":
		return format, nil
	default:
		return "", imageError("validation_image_format", fmt.Sprintf("image format %s not allowed (only jpeg/png)", format))
	}
}

func imageError(code, msg string) error {
	return validation.Errors{"image": validation.NewError(code, msg)}
}

// ProcessImage resizes data into every variant, encoded as JPEG quality 90
func (p *ImageProcessor) ProcessImage(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	variants := make(map[string][]byte, len(variantSizes))
	for name, size := range variantSizes {
		resized := imaging.Fit(img, size, size, imaging.Lanczos)
		b := new(bytes.Buffer)
		if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		variants[name] = b.Bytes()
	}
	return variants, nil
}
