package shapeapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// ProcessImage uploads an image file and returns the detected objects.
func (c *Client) ProcessImage(ctx context.Context, filePath string) (*ProcessImageResponse, error) {
	file, err := os.Open(filePath) //nolint:gosec // user-provided file path for upload
	if err != nil {
		return nil, fmt.Errorf("could not open image: %w", err)
	}
	defer file.Close()

	return c.ProcessImageReader(ctx, filepath.Base(filePath), file)
}

// ProcessImageReader uploads image data from a reader under the given file name.
func (c *Client) ProcessImageReader(ctx context.Context, fileName string, data io.Reader) (*ProcessImageResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		return nil, fmt.Errorf("could not create form file: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("could not copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL("images", "process"), &body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image processing failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	result, err := decodeJSON[ProcessImageResponse](resp.Body)
	if err != nil {
		return nil, err
	}
	if result.FileName == "" {
		result.FileName = fileName
	}
	return result, nil
}
