package cosmic

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// UploadParams describes a file destined for the bucket's media library.
type UploadParams struct {
	Filename    string
	ContentType string
	Folder      string // Optional media folder
	Data        []byte
}

// UploadMedia uploads a file to the bucket's media library and returns the
// stored media entry, including the CDN URL used for display and analysis.
func (c *Client) UploadMedia(ctx context.Context, params UploadParams) (*Media, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename=%q`, params.Filename))
	if params.ContentType != "" {
		header.Set("Content-Type", params.ContentType)
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(params.Data); err != nil {
		return nil, fmt.Errorf("write form part: %w", err)
	}

	if params.Folder != "" {
		if err := writer.WriteField("folder", params.Folder); err != nil {
			return nil, fmt.Errorf("write folder field: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	c.logger.Debug("cosmic media upload",
		"filename", params.Filename,
		"size", len(params.Data),
		"folder", params.Folder,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.mediaURL(), &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.WriteKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var decoded mediaResponse
	if err := json.UnmarshalRead(resp.Body, &decoded); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &decoded.Media, nil
}
