package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"alfredoptarigan/cv-warehouse/internal/models"
)

// Analyze uploads a single file as the "file" part of a multipart body.
func (c *Client) Analyze(ctx context.Context, filename string, content io.Reader) (*models.AnalysisResponse, error) {
	body, contentType := multipartBody(filename, content)

	req, err := c.newRequest(ctx, http.MethodPost, "/analyze", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var out models.AnalysisResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out.IsCV && out.CVData == nil {
		return nil, fmt.Errorf("%w: cv_data missing for accepted document", ErrMalformedPayload)
	}
	if out.CVData != nil {
		out.CVData.Normalize()
	}
	return &out, nil
}

// multipartBody streams the file through a pipe so large uploads are never
// buffered whole.
func multipartBody(filename string, content io.Reader) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(fmt.Errorf("failed to copy upload: %w", err))
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	return pr, mw.FormDataContentType()
}
