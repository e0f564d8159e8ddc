package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
)

var ErrInvalidImage = errors.New("invalid image")

var allowedImageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// DecodeBase64Image accepts the payload produced by a browser FileReader, with
// or without the "data:image/...;base64," prefix.
func DecodeBase64Image(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if i := strings.Index(payload, ";base64,"); strings.HasPrefix(payload, "data:") && i >= 0 {
		payload = payload[i+len(";base64,"):]
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
	}
	return data, nil
}

// PrepareImage detects the MIME type and shrinks JPEG and PNG images so that
// neither side exceeds maxDimension. Other allowed formats pass through.
func PrepareImage(data []byte, maxDimension int) (*InlineImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrInvalidImage)
	}
	mimeType := http.DetectContentType(data)
	if !allowedImageMIMETypes[mimeType] {
		return nil, fmt.Errorf("%w: unsupported file type %s", ErrInvalidImage, mimeType)
	}

	var format imaging.Format
	switch mimeType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return &InlineImage{MIMEType: mimeType, Data: data}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", ErrInvalidImage, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension {
		return &InlineImage{MIMEType: mimeType, Data: data}, nil
	}

	resized := imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return &InlineImage{MIMEType: mimeType, Data: buf.Bytes()}, nil
}
