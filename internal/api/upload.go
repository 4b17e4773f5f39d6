package api

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/digidesa/desa-cms/internal/assets"
	"github.com/digidesa/desa-cms/internal/content"
	"github.com/labstack/echo/v4"
)

// maxUploadBytes bounds a single uploaded image.
const maxUploadBytes = 10 << 20

var errNotAnImage = errors.New("uploaded file is not a supported image")

// stagedUpload reads the optional multipart file from the given form field,
// verifies it decodes as an image, and pairs it with a generated target name.
// Returns nil when the field is absent.
func stagedUpload(c echo.Context, field string) (*content.Upload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Both a non-multipart body and a missing field mean "no upload".
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read multipart form: %w", err)
	}
	if fileHeader.Size > maxUploadBytes {
		return nil, fmt.Errorf("uploaded file exceeds %d bytes", int64(maxUploadBytes))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("uploaded file exceeds %d bytes", int64(maxUploadBytes))
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, errNotAnImage
	}

	name, err := assets.GenerateFilename(fileHeader.Filename)
	if err != nil {
		return nil, fmt.Errorf("generate upload name: %w", err)
	}

	return &content.Upload{Filename: name, Content: data}, nil
}
