package post

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/wailsapp/mimetype"
	"github.com/yatube/backend/logger"
)

const DefaultMaxImageWidth = 960

// maxImagePixels caps width*height before a full decode.
const maxImagePixels = 40_000_000

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

type processedImage struct {
	content     []byte
	contentType string
	ext         string
}

// processImage checks that content is a supported image and downscales it
// to maxWidth keeping the aspect ratio. Narrow images are kept as uploaded.
func processImage(content []byte, maxWidth uint) (*processedImage, error) {
	mType := mimetype.Detect(content)
	if mType == nil {
		return nil, newErrInvalidImage()
	}
	contentType := mType.String()
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, newErrInvalidImage().SetDebug(
			fmt.Errorf("unsupported image format: %s", contentType))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return nil, newErrInvalidImage().SetDebug(fmt.Errorf("failed to read image header: %w", err))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, newErrInvalidImage().SetDebug(
			fmt.Errorf("image dimensions %dx%d exceed %d pixels", cfg.Width, cfg.Height, maxImagePixels))
	}

	var img image.Image
	switch contentType {
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(content))
	case "image/png":
		img, err = png.Decode(bytes.NewReader(content))
	case "image/gif":
		img, err = gif.Decode(bytes.NewReader(content))
	}
	if err != nil {
		return nil, newErrInvalidImage().SetDebug(fmt.Errorf("failed to decode image: %w", err))
	}

	res := &processedImage{content: content, contentType: contentType, ext: ext}
	if maxWidth == 0 || uint(img.Bounds().Dx()) <= maxWidth {
		return res, nil
	}

	resized := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	switch contentType {
	case "image/jpeg":
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	case "image/png":
		err = png.Encode(&buf, resized)
	case "image/gif":
		err = gif.Encode(&buf, resized, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	res.content = buf.Bytes()
	return res, nil
}

func newImageKey(ext string) string {
	return fmt.Sprintf("posts/%s.%s", uuid.New().String(), ext)
}

func (s *PostSrvc) storeImage(ctx context.Context, content []byte) (string, error) {
	if s.images == nil {
		return "", newErrInternalSE().SetDebug(fmt.Errorf("image store is not configured"))
	}
	img, err := processImage(content, s.maxImageWidth)
	if err != nil {
		return "", err
	}
	url, err := s.images.PutImage(ctx, newImageKey(img.ext), img.contentType, img.content)
	if err != nil {
		return "", newErrInternalSE().SetDebug(fmt.Errorf("failed to store image: %w", err))
	}
	return url, nil
}

// logOrphanedImage reports an uploaded image whose post was not saved.
// ImageStore has no delete, so the object is left for manual cleanup.
func logOrphanedImage(ctx context.Context, imageURL string, err error) {
	logger.FromContext(ctx).Warn("image stored for a post that was not saved",
		"image_url", imageURL, "error", err)
}
