package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/shivangi00/e-business-card-generator/internal/models"
)

var (
	ErrImageNotFound = errors.New("image not found")
	ErrInvalidImage  = errors.New("invalid image file")
)

// Default bounding box for card photos and logos.
const (
	DefaultMaxImageWidth  = 800
	DefaultMaxImageHeight = 800

	jpegQuality = 85
)

type ImageService struct {
	mu        sync.RWMutex
	uploadDir string
	images    map[string]*imageRecord // imageID -> image info
}

type imageRecord struct {
	ID       string
	Filename string
	Path     string
	UserID   string
}

func NewImageService(uploadDir string) *ImageService {
	// Create upload directory if it doesn't exist
	os.MkdirAll(uploadDir, 0755)

	return &ImageService{
		uploadDir: uploadDir,
		images:    make(map[string]*imageRecord),
	}
}

// EncodeBounded decodes an uploaded image, scales it down to fit within
// maxWidth x maxHeight preserving aspect ratio, and returns a JPEG data URI.
// An undecodable file is an explicit error, never passed through oversized.
func EncodeBounded(file io.Reader, maxWidth, maxHeight int) (string, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxImageWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultMaxImageHeight
	}

	src, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, boundToBox(src, maxWidth, maxHeight), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Upload re-encodes the file within the default bounding box and writes it to
// the upload directory under a generated name.
func (s *ImageService) Upload(userID string, filename string, file io.Reader) (*models.ImageUploadResponse, error) {
	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Generate unique ID for the image
	imageID := uuid.New().String()
	newFilename := imageID + ".jpg"
	filePath := filepath.Join(s.uploadDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	bounded := boundToBox(src, DefaultMaxImageWidth, DefaultMaxImageHeight)
	if err := jpeg.Encode(dst, bounded, &jpeg.Options{Quality: jpegQuality}); err != nil {
		os.Remove(filePath) // Clean up on error
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	record := &imageRecord{
		ID:       imageID,
		Filename: newFilename,
		Path:     filePath,
		UserID:   userID,
	}
	s.images[imageID] = record

	return &models.ImageUploadResponse{
		ID:       imageID,
		URL:      "/uploads/" + newFilename,
		Filename: newFilename,
	}, nil
}

func (s *ImageService) Delete(userID, imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.images[imageID]
	if !exists {
		return ErrImageNotFound
	}

	// Only allow the owner to delete
	if record.UserID != userID {
		return ErrUnauthorized
	}

	if err := os.Remove(record.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	delete(s.images, imageID)
	return nil
}

func boundToBox(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth && h <= maxHeight {
		return src
	}
	ratioW := float64(maxWidth) / float64(w)
	ratioH := float64(maxHeight) / float64(h)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	nw, nh := int(float64(w)*ratio), int(float64(h)*ratio)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
